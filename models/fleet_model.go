package models

import (
	"encoding/json"
	"slices"
	"time"
)

// DeviceTypes are the accepted values of Device.Type.
var DeviceTypes = []string{"Laptop", "Desktop", "Phone", "Tablet", "Monitor", "Peripheral", "Other"}

// IsValidDeviceType reports whether t is one of DeviceTypes.
func IsValidDeviceType(t string) bool {
	return slices.Contains(DeviceTypes, t)
}

type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeWithDevices is an employee and the number of devices assigned to them.
type EmployeeWithDevices struct {
	Employee
	DevicesCount int64 `json:"devices_count"`
}

type Device struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	EmployeeID *string   `json:"employee_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeviceHolder is the short form of the employee a device is assigned to.
type DeviceHolder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type DeviceWithEmployee struct {
	Device
	Employee *DeviceHolder `json:"employee"`
}

// DeviceFilter narrows a device listing. Unassigned wins over EmployeeID,
// which wins over Type.
type DeviceFilter struct {
	Type       string
	EmployeeID string
	Unassigned bool
}

// CreateEmployeeRequest is the body of POST /api/v1/employees.
type CreateEmployeeRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// UpdateEmployeeRequest is the body of PUT /api/v1/employees/:id. Nil fields
// are left unchanged.
type UpdateEmployeeRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

// CreateDeviceRequest is the body of POST /api/v1/devices.
type CreateDeviceRequest struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	EmployeeID *string `json:"employee_id"`
}

// UpdateDeviceRequest is the body of PUT /api/v1/devices/:id.
type UpdateDeviceRequest struct {
	Name       *string    `json:"name"`
	Type       *string    `json:"type"`
	EmployeeID NullableID `json:"employee_id"`
}

// NullableID tells an absent JSON field apart from an explicit null.
type NullableID struct {
	Set   bool
	Value *string
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// DeviceUpdate is a partial device update as stored.
type DeviceUpdate struct {
	Name       *string
	Type       *string
	EmployeeID NullableID
}
