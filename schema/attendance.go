package schema

import "time"

// ClockMethod identifies how staff proved their identity when clocking
type ClockMethod string

const (
	ClockMethodPIN ClockMethod = "PIN"
	ClockMethodOTP ClockMethod = "OTP"
)

// ClockRequest clocks an employee in or out
type ClockRequest struct {
	StoreID    string      `json:"storeId"`
	Method     ClockMethod `json:"method"`
	EmployeeNo string      `json:"employeeNo,omitempty"`
	PIN        string      `json:"pin,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	Code       string      `json:"code,omitempty"`
}

// AttendanceRecord is one logged work interval
type AttendanceRecord struct {
	ID           string      `json:"id"`
	StoreID      string      `json:"storeId"`
	EmployeeID   string      `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	Method       ClockMethod `json:"method"`
	ClockIn      time.Time   `json:"clockIn"`
	ClockOut     *time.Time  `json:"clockOut,omitempty"`
	Hours        float64     `json:"hours"`
}
