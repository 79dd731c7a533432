package service

import (
	"context"
	"database/sql"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/dto"
	"github.com/hadir-app/hadir-api/internal/models"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

type reportEmployeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeWithCount, error)
	GetByID(ctx context.Context, id string) (*models.EmployeeWithCount, error)
}

type attendanceAggregator interface {
	StatusCountsByEmployee(ctx context.Context, from, to time.Time) ([]models.EmployeeStatusCount, error)
}

type holidayLister interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]models.PublicHoliday, error)
}

// ReportService produces the monthly attendance report.
type ReportService struct {
	employees  reportEmployeeRepository
	attendance attendanceAggregator
	holidays   holidayLister
	logger     *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(employees reportEmployeeRepository, attendance attendanceAggregator, holidays holidayLister, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{employees: employees, attendance: attendance, holidays: holidays, logger: logger}
}

// Monthly builds one report row per active employee for the given month. A
// specific employee id narrows the report to that employee, including an
// inactive one.
func (s *ReportService) Monthly(ctx context.Context, year int, month time.Month, employeeID string) ([]dto.MonthlyReportRow, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid month or year")
	}
	monthStart, monthEnd := MonthRange(year, month)

	holidays, err := s.holidays.ListInRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}
	holidayDates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		holidayDates[i] = h.Date
	}
	workingDays := WorkingDays(year, month, holidayDates)

	var employees []models.EmployeeWithCount
	if employeeID != "" {
		employee, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
		}
		employees = []models.EmployeeWithCount{*employee}
	} else {
		activeOnly := true
		employees, err = s.employees.List(ctx, models.EmployeeFilter{ActiveOnly: &activeOnly})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
		}
	}

	counts, err := s.attendance.StatusCountsByEmployee(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate attendance")
	}
	byEmployee := make(map[string]map[models.AttendanceStatus]int)
	for _, row := range counts {
		if byEmployee[row.EmployeeID] == nil {
			byEmployee[row.EmployeeID] = make(map[models.AttendanceStatus]int)
		}
		byEmployee[row.EmployeeID][row.Status] = row.Count
	}

	report := make([]dto.MonthlyReportRow, 0, len(employees))
	for _, employee := range employees {
		statusCounts := byEmployee[employee.ID]
		present := statusCounts[models.AttendanceStatusPresent]
		report = append(report, dto.MonthlyReportRow{
			EmployeeID:  employee.ID,
			Name:        employee.FullName,
			JobTitle:    employee.JobTitle,
			WorkingDays: workingDays,
			Present:     present,
			Leave:       statusCounts[models.AttendanceStatusLeave],
			Sick:        statusCounts[models.AttendanceStatusSick],
			Absent:      statusCounts[models.AttendanceStatusAbsent],
			Percentage:  attendancePercentage(present, workingDays),
		})
	}
	return report, nil
}

// attendancePercentage is the rounded share of working days attended. Zero
// working days yields zero; values above 100 are possible when data contains
// more present days than working days, and are returned as-is.
func attendancePercentage(present, workingDays int) int {
	if workingDays == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(workingDays) * 100))
}
