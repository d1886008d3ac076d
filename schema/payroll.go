package schema

// PayrollEstimate is the server computed salary and labor cost for a period
type PayrollEstimate struct {
	StoreID    string         `json:"storeId"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Currency   string         `json:"currency,omitempty"`
	Lines      []*PayrollLine `json:"lines"`
	TotalHours float64        `json:"totalHours"`
	LaborCost  float64        `json:"laborCost"`
}

// PayrollLine is one employee's share of a PayrollEstimate
type PayrollLine struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Hours        float64 `json:"hours"`
	HourlyRate   float64 `json:"hourlyRate"`
	EstimatedPay float64 `json:"estimatedPay"`
}
