package models

import "time"

// Employee is a persisted staff member.
type Employee struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	JobTitle  string    `db:"job_title" json:"job_title"`
	HireDate  time.Time `db:"hire_date" json:"hire_date"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// EmployeeWithCount extends an employee row with its attendance record count.
type EmployeeWithCount struct {
	Employee
	AttendanceCount int `db:"attendance_count" json:"attendance_count"`
}

// EmployeeFilter scopes employee listing queries.
type EmployeeFilter struct {
	Search     string
	JobTitle   string
	ActiveOnly *bool
}

// EmployeeRef is the minimal employee projection joined onto attendance rows.
type EmployeeRef struct {
	ID       string `db:"employee_id" json:"id"`
	FullName string `db:"employee_name" json:"full_name"`
	JobTitle string `db:"employee_job_title" json:"job_title"`
}
