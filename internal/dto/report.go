package dto

// MonthlyReportRow is one employee's line in the monthly attendance report.
type MonthlyReportRow struct {
	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	JobTitle    string `json:"jobTitle"`
	WorkingDays int    `json:"workingDays"`
	Present     int    `json:"present"`
	Leave       int    `json:"leave"`
	Sick        int    `json:"sick"`
	Absent      int    `json:"absent"`
	Percentage  int    `json:"percentage"`
}
