package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/models"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

type employeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeWithCount, error)
	GetByID(ctx context.Context, id string) (*models.EmployeeWithCount, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) (bool, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id string) error
}

// EmployeeService coordinates employee administration.
type EmployeeService struct {
	repo      employeeRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(repo employeeRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// EmployeeListRequest carries listing filters.
type EmployeeListRequest struct {
	Search     string `json:"search"`
	JobTitle   string `json:"job_title"`
	ActiveOnly *bool  `json:"active_only"`
}

// CreateEmployeeRequest is the admin create payload.
type CreateEmployeeRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	JobTitle string `json:"jobTitle" validate:"required"`
	HireDate string `json:"hireDate" validate:"required"`
	Active   *bool  `json:"active"`
}

// UpdateEmployeeRequest carries partial updates; nil fields are untouched.
type UpdateEmployeeRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" validate:"omitempty,email"`
	JobTitle *string `json:"jobTitle"`
	HireDate *string `json:"hireDate"`
	Active   *bool   `json:"active"`
}

// List returns employees matching the filter with attendance-count
// annotations.
func (s *EmployeeService) List(ctx context.Context, req EmployeeListRequest) ([]models.EmployeeWithCount, error) {
	filter := models.EmployeeFilter{
		Search:     req.Search,
		JobTitle:   req.JobTitle,
		ActiveOnly: req.ActiveOnly,
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}
	return rows, nil
}

// Get returns a single employee.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.EmployeeWithCount, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return row, nil
}

// Create registers a new employee. Email must be globally unique; on a
// duplicate no row is created.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid hire date format, expected YYYY-MM-DD")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	employee := &models.Employee{
		FullName: req.FullName,
		Email:    req.Email,
		JobTitle: req.JobTitle,
		HireDate: hireDate,
		Active:   active,
	}
	conflict, err := s.repo.Create(ctx, employee)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}
	if conflict {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	s.invalidateDashboard(ctx)
	return employee, nil
}

// Update modifies an employee, re-checking email uniqueness when the email
// changes.
func (s *EmployeeService) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}

	employee := existing.Employee
	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.Email != nil && *req.Email != employee.Email {
		if _, err := s.repo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
		} else if err != sql.ErrNoRows {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		employee.Email = *req.Email
	}
	if req.JobTitle != nil {
		employee.JobTitle = *req.JobTitle
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid hire date format, expected YYYY-MM-DD")
		}
		employee.HireDate = hireDate
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := s.repo.Update(ctx, &employee); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update employee")
	}
	s.invalidateDashboard(ctx)
	return &employee, nil
}

// Delete removes an employee; the store cascade removes that employee's
// attendance records and no others.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete employee")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *EmployeeService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCachePrefix+"*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
