package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"salestrend/models"
	"salestrend/repository"
	"salestrend/service"

	"github.com/gofiber/fiber/v2"
)

// Fleet manages employees and the devices assigned to them.
type Fleet interface {
	Employees(ctx context.Context, role string) ([]models.EmployeeWithDevices, error)
	Employee(ctx context.Context, id string) (models.Employee, error)
	CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, req models.UpdateEmployeeRequest) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	Devices(ctx context.Context, filter models.DeviceFilter) ([]models.DeviceWithEmployee, error)
	Device(ctx context.Context, id string) (models.DeviceWithEmployee, error)
	CreateDevice(ctx context.Context, req models.CreateDeviceRequest) (models.Device, error)
	UpdateDevice(ctx context.Context, id string, req models.UpdateDeviceRequest) (models.Device, error)
	AssignDevice(ctx context.Context, deviceID, employeeID string) (models.Device, error)
	UnassignDevice(ctx context.Context, deviceID string) (models.Device, error)
	DeleteDevice(ctx context.Context, id string) error
}

type FleetHandlers struct {
	Fleet Fleet
}

// AssignDeviceRequest is the body of POST /api/v1/devices/:id/assign.
type AssignDeviceRequest struct {
	EmployeeID string `json:"employee_id"`
}

func fleetError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, repository.ErrEmployeeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Employee not found"})
	case errors.Is(err, repository.ErrDeviceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Device not found"})
	}
	log.Printf("❌ [FLEET] Error trying to %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to " + action})
}

// HandleListEmployees returns employees with their device counts.
// GET /api/v1/employees?role=dev
func (h *FleetHandlers) HandleListEmployees(c *fiber.Ctx) error {
	employees, err := h.Fleet.Employees(c.UserContext(), c.Query("role"))
	if err != nil {
		return fleetError(c, err, "fetch employees")
	}
	return c.JSON(fiber.Map{"success": true, "data": employees})
}

// GET /api/v1/employees/:id
func (h *FleetHandlers) HandleGetEmployee(c *fiber.Ctx) error {
	employee, err := h.Fleet.Employee(c.UserContext(), c.Params("id"))
	if err != nil {
		return fleetError(c, err, "fetch employee")
	}
	return c.JSON(fiber.Map{"success": true, "data": employee})
}

// POST /api/v1/employees
func (h *FleetHandlers) HandleCreateEmployee(c *fiber.Ctx) error {
	var req models.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	employee, err := h.Fleet.CreateEmployee(c.UserContext(), req)
	if err != nil {
		return fleetError(c, err, "create employee")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": employee})
}

// PUT /api/v1/employees/:id
func (h *FleetHandlers) HandleUpdateEmployee(c *fiber.Ctx) error {
	var req models.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	employee, err := h.Fleet.UpdateEmployee(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fleetError(c, err, "update employee")
	}
	return c.JSON(fiber.Map{"success": true, "data": employee})
}

// HandleDeleteEmployee removes an employee; their devices become unassigned.
// DELETE /api/v1/employees/:id
func (h *FleetHandlers) HandleDeleteEmployee(c *fiber.Ctx) error {
	if err := h.Fleet.DeleteEmployee(c.UserContext(), c.Params("id")); err != nil {
		return fleetError(c, err, "delete employee")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Employee deleted successfully"})
}

// HandleListDevices returns devices with their holders. unassigned=true takes
// precedence over employeeId, which takes precedence over type.
// GET /api/v1/devices?type=laptop&employeeId=...&unassigned=true
func (h *FleetHandlers) HandleListDevices(c *fiber.Ctx) error {
	filter := models.DeviceFilter{
		Type:       c.Query("type"),
		EmployeeID: c.Query("employeeId"),
		Unassigned: strings.EqualFold(c.Query("unassigned"), "true"),
	}
	devices, err := h.Fleet.Devices(c.UserContext(), filter)
	if err != nil {
		return fleetError(c, err, "fetch devices")
	}
	return c.JSON(fiber.Map{"success": true, "data": devices})
}

// GET /api/v1/devices/:id
func (h *FleetHandlers) HandleGetDevice(c *fiber.Ctx) error {
	device, err := h.Fleet.Device(c.UserContext(), c.Params("id"))
	if err != nil {
		return fleetError(c, err, "fetch device")
	}
	return c.JSON(fiber.Map{"success": true, "data": device})
}

// POST /api/v1/devices
func (h *FleetHandlers) HandleCreateDevice(c *fiber.Ctx) error {
	var req models.CreateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	device, err := h.Fleet.CreateDevice(c.UserContext(), req)
	if err != nil {
		return fleetError(c, err, "create device")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": device})
}

// PUT /api/v1/devices/:id
func (h *FleetHandlers) HandleUpdateDevice(c *fiber.Ctx) error {
	var req models.UpdateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	device, err := h.Fleet.UpdateDevice(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fleetError(c, err, "update device")
	}
	return c.JSON(fiber.Map{"success": true, "data": device})
}

// POST /api/v1/devices/:id/assign
func (h *FleetHandlers) HandleAssignDevice(c *fiber.Ctx) error {
	var req AssignDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	device, err := h.Fleet.AssignDevice(c.UserContext(), c.Params("id"), req.EmployeeID)
	if err != nil {
		return fleetError(c, err, "assign device")
	}
	return c.JSON(fiber.Map{"success": true, "data": device})
}

// POST /api/v1/devices/:id/unassign
func (h *FleetHandlers) HandleUnassignDevice(c *fiber.Ctx) error {
	device, err := h.Fleet.UnassignDevice(c.UserContext(), c.Params("id"))
	if err != nil {
		return fleetError(c, err, "unassign device")
	}
	return c.JSON(fiber.Map{"success": true, "data": device})
}

// DELETE /api/v1/devices/:id
func (h *FleetHandlers) HandleDeleteDevice(c *fiber.Ctx) error {
	if err := h.Fleet.DeleteDevice(c.UserContext(), c.Params("id")); err != nil {
		return fleetError(c, err, "delete device")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Device deleted successfully"})
}
