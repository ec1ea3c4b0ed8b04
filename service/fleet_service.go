package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"salestrend/models"
)

// ErrInvalidInput wraps every validation failure of the fleet service.
var ErrInvalidInput = errors.New("invalid input")

const (
	maxNameLength = 100
	maxRoleLength = 50
)

// FleetStore is the persistence the fleet service needs.
type FleetStore interface {
	Employees(ctx context.Context, role string) ([]models.EmployeeWithDevices, error)
	Employee(ctx context.Context, id string) (models.Employee, error)
	CreateEmployee(ctx context.Context, name, role string) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, name, role *string) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	Devices(ctx context.Context, filter models.DeviceFilter) ([]models.DeviceWithEmployee, error)
	Device(ctx context.Context, id string) (models.DeviceWithEmployee, error)
	CreateDevice(ctx context.Context, name, deviceType string, employeeID *string) (models.Device, error)
	UpdateDevice(ctx context.Context, id string, u models.DeviceUpdate) (models.Device, error)
	DeleteDevice(ctx context.Context, id string) error
}

// FleetService validates and applies changes to employees and their devices.
type FleetService struct {
	store FleetStore
}

func NewFleetService(store FleetStore) *FleetService {
	return &FleetService{store: store}
}

func requiredText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", fmt.Errorf("%w: %s is too long", ErrInvalidInput, field)
	}
	return value, nil
}

func optionalText(field string, value *string, maxLen int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v, err := requiredText(field, *value, maxLen)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func deviceType(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !models.IsValidDeviceType(value) {
		return "", fmt.Errorf("%w: type must be one of %s", ErrInvalidInput, strings.Join(models.DeviceTypes, ", "))
	}
	return value, nil
}

// holderID trims an employee id; a blank id means no holder.
func holderID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}

// Employees lists employees with their device counts. A blank role lists all.
func (s *FleetService) Employees(ctx context.Context, role string) ([]models.EmployeeWithDevices, error) {
	return s.store.Employees(ctx, strings.TrimSpace(role))
}

func (s *FleetService) Employee(ctx context.Context, id string) (models.Employee, error) {
	return s.store.Employee(ctx, id)
}

func (s *FleetService) CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error) {
	name, err := requiredText("name", req.Name, maxNameLength)
	if err != nil {
		return models.Employee{}, err
	}
	role, err := requiredText("role", req.Role, maxRoleLength)
	if err != nil {
		return models.Employee{}, err
	}
	return s.store.CreateEmployee(ctx, name, role)
}

func (s *FleetService) UpdateEmployee(ctx context.Context, id string, req models.UpdateEmployeeRequest) (models.Employee, error) {
	name, err := optionalText("name", req.Name, maxNameLength)
	if err != nil {
		return models.Employee{}, err
	}
	role, err := optionalText("role", req.Role, maxRoleLength)
	if err != nil {
		return models.Employee{}, err
	}
	return s.store.UpdateEmployee(ctx, id, name, role)
}

func (s *FleetService) DeleteEmployee(ctx context.Context, id string) error {
	return s.store.DeleteEmployee(ctx, id)
}

func (s *FleetService) Devices(ctx context.Context, filter models.DeviceFilter) ([]models.DeviceWithEmployee, error) {
	filter.Type = strings.TrimSpace(filter.Type)
	filter.EmployeeID = strings.TrimSpace(filter.EmployeeID)
	return s.store.Devices(ctx, filter)
}

func (s *FleetService) Device(ctx context.Context, id string) (models.DeviceWithEmployee, error) {
	return s.store.Device(ctx, id)
}

func (s *FleetService) CreateDevice(ctx context.Context, req models.CreateDeviceRequest) (models.Device, error) {
	name, err := requiredText("name", req.Name, maxNameLength)
	if err != nil {
		return models.Device{}, err
	}
	typ, err := deviceType(req.Type)
	if err != nil {
		return models.Device{}, err
	}
	return s.store.CreateDevice(ctx, name, typ, holderID(req.EmployeeID))
}

func (s *FleetService) UpdateDevice(ctx context.Context, id string, req models.UpdateDeviceRequest) (models.Device, error) {
	var u models.DeviceUpdate
	var err error
	if u.Name, err = optionalText("name", req.Name, maxNameLength); err != nil {
		return models.Device{}, err
	}
	if req.Type != nil {
		typ, err := deviceType(*req.Type)
		if err != nil {
			return models.Device{}, err
		}
		u.Type = &typ
	}
	if req.EmployeeID.Set {
		u.EmployeeID = models.NullableID{Set: true, Value: holderID(req.EmployeeID.Value)}
	}
	return s.store.UpdateDevice(ctx, id, u)
}

// AssignDevice hands a device to an employee, replacing any current holder.
func (s *FleetService) AssignDevice(ctx context.Context, deviceID, employeeID string) (models.Device, error) {
	holder := holderID(&employeeID)
	if holder == nil {
		return models.Device{}, fmt.Errorf("%w: employee_id is required", ErrInvalidInput)
	}
	return s.store.UpdateDevice(ctx, deviceID, models.DeviceUpdate{EmployeeID: models.NullableID{Set: true, Value: holder}})
}

func (s *FleetService) UnassignDevice(ctx context.Context, deviceID string) (models.Device, error) {
	return s.store.UpdateDevice(ctx, deviceID, models.DeviceUpdate{EmployeeID: models.NullableID{Set: true}})
}

func (s *FleetService) DeleteDevice(ctx context.Context, id string) error {
	return s.store.DeleteDevice(ctx, id)
}
