package repository

import (
	"context"
	"errors"
	"fmt"

	"salestrend/database"
	"salestrend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDeviceNotFound   = errors.New("device not found")
)

// FleetRepository stores employees and the devices assigned to them.
type FleetRepository struct {
	db database.DBTX
}

func NewFleetRepository(db database.DBTX) *FleetRepository {
	return &FleetRepository{db: db}
}

const employeeColumns = "id, name, role, created_at, updated_at"

// Employees returns employees with their device counts, newest first. A
// non-empty role keeps only employees whose role contains it, ignoring case.
func (r *FleetRepository) Employees(ctx context.Context, role string) ([]models.EmployeeWithDevices, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.name, e.role, e.created_at, e.updated_at, COUNT(d.id) AS devices_count
		FROM employees e
		LEFT JOIN devices d ON d.employee_id = e.id
		WHERE $1::text = '' OR e.role ILIKE '%' || $1::text || '%'
		GROUP BY e.id
		ORDER BY e.created_at DESC`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.EmployeeWithDevices, 0)
	for rows.Next() {
		var e models.EmployeeWithDevices
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.CreatedAt, &e.UpdatedAt, &e.DevicesCount); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, ErrEmployeeNotFound
	}
	return e, err
}

func (r *FleetRepository) Employee(ctx context.Context, id string) (models.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id))
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return models.Employee{}, fmt.Errorf("failed to load employee: %w", err)
	}
	return e, err
}

func (r *FleetRepository) CreateEmployee(ctx context.Context, name, role string) (models.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `
		INSERT INTO employees (id, name, role)
		VALUES ($1, $2, $3)
		RETURNING `+employeeColumns, uuid.NewString(), name, role))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

// UpdateEmployee changes the non-nil fields of an employee.
func (r *FleetRepository) UpdateEmployee(ctx context.Context, id string, name, role *string) (models.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `
		UPDATE employees
		SET name = COALESCE($2, name), role = COALESCE($3, role), updated_at = NOW()
		WHERE id = $1
		RETURNING `+employeeColumns, id, name, role))
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return models.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return e, err
}

// DeleteEmployee removes an employee. Their devices become unassigned.
func (r *FleetRepository) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

const deviceColumns = "id, name, type, employee_id, created_at, updated_at"

const deviceWithEmployeeQuery = `
	SELECT d.id, d.name, d.type, d.employee_id, d.created_at, d.updated_at, e.id, e.name, e.role
	FROM devices d
	LEFT JOIN employees e ON e.id = d.employee_id`

func scanDeviceWithEmployee(row pgx.Row) (models.DeviceWithEmployee, error) {
	var d models.DeviceWithEmployee
	var holderID, holderName, holderRole *string
	err := row.Scan(&d.ID, &d.Name, &d.Type, &d.EmployeeID, &d.CreatedAt, &d.UpdatedAt, &holderID, &holderName, &holderRole)
	if err != nil {
		return models.DeviceWithEmployee{}, err
	}
	if holderID != nil {
		d.Employee = &models.DeviceHolder{ID: *holderID}
		if holderName != nil {
			d.Employee.Name = *holderName
		}
		if holderRole != nil {
			d.Employee.Role = *holderRole
		}
	}
	return d, nil
}

// Devices returns devices with their holders, newest first, narrowed by filter.
func (r *FleetRepository) Devices(ctx context.Context, filter models.DeviceFilter) ([]models.DeviceWithEmployee, error) {
	query := deviceWithEmployeeQuery
	var args []any
	switch {
	case filter.Unassigned:
		query += " WHERE d.employee_id IS NULL"
	case filter.EmployeeID != "":
		query += " WHERE d.employee_id = $1"
		args = append(args, filter.EmployeeID)
	case filter.Type != "":
		query += " WHERE d.type ILIKE '%' || $1::text || '%'"
		args = append(args, filter.Type)
	}
	query += " ORDER BY d.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	devices := make([]models.DeviceWithEmployee, 0)
	for rows.Next() {
		d, err := scanDeviceWithEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read devices: %w", err)
	}
	return devices, nil
}

func (r *FleetRepository) Device(ctx context.Context, id string) (models.DeviceWithEmployee, error) {
	d, err := scanDeviceWithEmployee(r.db.QueryRow(ctx, deviceWithEmployeeQuery+" WHERE d.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DeviceWithEmployee{}, ErrDeviceNotFound
	}
	if err != nil {
		return models.DeviceWithEmployee{}, fmt.Errorf("failed to load device: %w", err)
	}
	return d, nil
}

func scanDevice(row pgx.Row) (models.Device, error) {
	var d models.Device
	err := row.Scan(&d.ID, &d.Name, &d.Type, &d.EmployeeID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// deviceWriteError maps a failed device insert or update onto the fleet errors.
func deviceWriteError(action string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrDeviceNotFound
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		return ErrEmployeeNotFound
	default:
		return fmt.Errorf("failed to %s device: %w", action, err)
	}
}

func (r *FleetRepository) CreateDevice(ctx context.Context, name, deviceType string, employeeID *string) (models.Device, error) {
	d, err := scanDevice(r.db.QueryRow(ctx, `
		INSERT INTO devices (id, name, type, employee_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+deviceColumns, uuid.NewString(), name, deviceType, employeeID))
	if err != nil {
		return models.Device{}, deviceWriteError("create", err)
	}
	return d, nil
}

// UpdateDevice applies a partial update. The holder changes only when
// u.EmployeeID is set; a nil value unassigns the device.
func (r *FleetRepository) UpdateDevice(ctx context.Context, id string, u models.DeviceUpdate) (models.Device, error) {
	d, err := scanDevice(r.db.QueryRow(ctx, `
		UPDATE devices
		SET name = COALESCE($2, name),
			type = COALESCE($3, type),
			employee_id = CASE WHEN $4::boolean THEN $5::text ELSE employee_id END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+deviceColumns, id, u.Name, u.Type, u.EmployeeID.Set, u.EmployeeID.Value))
	if err != nil {
		return models.Device{}, deviceWriteError("update", err)
	}
	return d, nil
}

func (r *FleetRepository) DeleteDevice(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM devices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
