package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusLeave   AttendanceStatus = "LEAVE"
	AttendanceStatusSick    AttendanceStatus = "SICK"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusLeave, AttendanceStatusSick, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// Statuses lists all supported attendance statuses in display order.
func Statuses() []AttendanceStatus {
	return []AttendanceStatus{
		AttendanceStatusPresent,
		AttendanceStatusLeave,
		AttendanceStatusSick,
		AttendanceStatusAbsent,
	}
}

// CheckState is the per-day lifecycle position of an attendance record.
type CheckState int

const (
	StateNotCheckedIn CheckState = iota
	StateCheckedIn
	StateCheckedOut
)

// AttendanceRecord is one employee's attendance for one civil day.
type AttendanceRecord struct {
	ID         string           `db:"id" json:"id"`
	EmployeeID string           `db:"employee_id" json:"employee_id"`
	Date       time.Time        `db:"date" json:"date"`
	CheckIn    *time.Time       `db:"check_in" json:"check_in,omitempty"`
	CheckOut   *time.Time       `db:"check_out" json:"check_out,omitempty"`
	Status     AttendanceStatus `db:"status" json:"status"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// State derives the check-in/check-out lifecycle position from the record
// fields. Check-out is only ever set after a check-in exists.
func (a *AttendanceRecord) State() CheckState {
	switch {
	case a == nil || a.CheckIn == nil:
		return StateNotCheckedIn
	case a.CheckOut == nil:
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}

// AttendanceDetail extends the record with minimal employee metadata.
type AttendanceDetail struct {
	AttendanceRecord
	EmployeeName     string `db:"employee_name" json:"employee_name"`
	EmployeeJobTitle string `db:"employee_job_title" json:"employee_job_title"`
}

// AttendanceFilter defines query filters for listing records.
type AttendanceFilter struct {
	EmployeeID string
	Status     *AttendanceStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}

// StatusCount is one row of a per-status aggregate.
type StatusCount struct {
	Status AttendanceStatus `db:"status" json:"status"`
	Count  int              `db:"cnt" json:"count"`
}

// EmployeeStatusCount is a per-employee, per-status aggregate row.
type EmployeeStatusCount struct {
	EmployeeID string           `db:"employee_id" json:"employee_id"`
	Status     AttendanceStatus `db:"status" json:"status"`
	Count      int              `db:"cnt" json:"count"`
}
