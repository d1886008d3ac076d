package schema

import "time"

// ShiftTemplate is a recurring shift definition maintained by store managers
type ShiftTemplate struct {
	ID        string `json:"id,omitempty"`
	StoreID   string `json:"storeId"`
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	Weekdays  []int  `json:"weekdays"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Headcount int    `json:"headcount"`
}

// Shift is a concrete assignment generated by the server
type Shift struct {
	ID           string    `json:"id"`
	StoreID      string    `json:"storeId"`
	TemplateID   string    `json:"templateId,omitempty"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	EmployeeName string    `json:"employeeName,omitempty"`
	Position     string    `json:"position,omitempty"`
	StartsAt     time.Time `json:"startsAt"`
	EndsAt       time.Time `json:"endsAt"`
}
