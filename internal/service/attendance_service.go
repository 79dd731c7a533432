package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/models"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

type attendanceRepository interface {
	Insert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, bool, error)
	GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	SetCheckOut(ctx context.Context, id string, checkOut time.Time) (*models.AttendanceRecord, error)
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error)
}

type employeeFinder interface {
	GetByID(ctx context.Context, id string) (*models.EmployeeWithCount, error)
}

// AttendanceService enforces the per-employee, per-day check-in/check-out
// state machine: NotCheckedIn -> CheckedIn -> CheckedOut.
type AttendanceService struct {
	repo      attendanceRepository
	employees employeeFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, employees employeeFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AttendanceService{repo: repo, employees: employees, cache: cache, validator: validate, logger: logger, now: time.Now}
	svc.validator.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		status := models.AttendanceStatus(strings.ToUpper(fl.Field().String()))
		return status.Valid()
	})
	return svc
}

// CheckInRequest is the check-in payload. Date and CheckIn both default to
// the current time.
type CheckInRequest struct {
	EmployeeID string     `json:"employeeId" validate:"required"`
	Date       *time.Time `json:"date"`
	CheckIn    *time.Time `json:"checkIn"`
}

// CheckOutRequest is the check-out payload. CheckOut defaults to the current
// time.
type CheckOutRequest struct {
	ID       string     `json:"id" validate:"required"`
	CheckOut *time.Time `json:"checkOut"`
}

// ListRequest carries attendance listing filters.
type ListRequest struct {
	EmployeeID string     `json:"employee_id"`
	Status     *string    `json:"status" validate:"omitempty,attendance_status"`
	DateFrom   *time.Time `json:"date_from"`
	DateTo     *time.Time `json:"date_to"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

// CheckIn creates the day's attendance record for an employee. The calendar
// day is the request date truncated to start-of-day, so one record exists
// per civil day regardless of the timestamp's time component.
func (s *AttendanceService) CheckIn(ctx context.Context, req CheckInRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	now := s.now().UTC()
	day := now
	if req.Date != nil {
		day = *req.Date
	}
	day = StartOfDay(day)
	checkIn := now
	if req.CheckIn != nil {
		checkIn = req.CheckIn.UTC()
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}

	record := &models.AttendanceRecord{
		EmployeeID: req.EmployeeID,
		Date:       day,
		CheckIn:    &checkIn,
		Status:     models.AttendanceStatusPresent,
	}
	stored, conflict, err := s.repo.Insert(ctx, record)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check in")
	}
	if conflict {
		return nil, appErrors.Clone(appErrors.ErrConflict, "already checked in today")
	}
	s.invalidateDashboard(ctx)
	return stored, nil
}

// CheckOut stamps the check-out time on an existing record, exactly once.
func (s *AttendanceService) CheckOut(ctx context.Context, req CheckOutRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}
	switch record.State() {
	case models.StateCheckedOut:
		return nil, appErrors.Clone(appErrors.ErrConflict, "already checked out")
	case models.StateNotCheckedIn:
		return nil, appErrors.Clone(appErrors.ErrConflict, "record has no check-in")
	}
	checkOut := s.now().UTC()
	if req.CheckOut != nil {
		checkOut = req.CheckOut.UTC()
	}
	updated, err := s.repo.SetCheckOut(ctx, record.ID, checkOut)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check out")
	}
	s.invalidateDashboard(ctx)
	return updated, nil
}

// List returns attendance records joined with minimal employee info, ordered
// by day descending.
func (s *AttendanceService) List(ctx context.Context, req ListRequest) ([]models.AttendanceDetail, *models.Pagination, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter")
	}
	var status *models.AttendanceStatus
	if req.Status != nil {
		st := models.AttendanceStatus(strings.ToUpper(*req.Status))
		status = &st
	}
	var from, to *time.Time
	if req.DateFrom != nil {
		d := StartOfDay(*req.DateFrom)
		from = &d
	}
	if req.DateTo != nil {
		d := StartOfDay(*req.DateTo)
		to = &d
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size <= 0 {
		size = 50
	}
	filter := models.AttendanceFilter{
		EmployeeID: req.EmployeeID,
		Status:     status,
		DateFrom:   from,
		DateTo:     to,
		Page:       page,
		PageSize:   size,
	}
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return rows, pagination, nil
}

func (s *AttendanceService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCachePrefix+"*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
