package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hadir-app/hadir-api/internal/models"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

type holidayRepository interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]models.PublicHoliday, error)
	Create(ctx context.Context, holiday *models.PublicHoliday) error
}

// HolidayService manages public holiday entries.
type HolidayService struct {
	repo      holidayRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService constructs the holiday service.
func NewHolidayService(repo holidayRepository, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, validator: validate, logger: logger}
}

// CreateHolidayRequest is the admin seed payload.
type CreateHolidayRequest struct {
	Date        string  `json:"date" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	National    bool    `json:"national"`
}

// ListByMonth returns the holidays within a month, ascending by date.
func (s *HolidayService) ListByMonth(ctx context.Context, year int, month time.Month) ([]models.PublicHoliday, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid month or year")
	}
	from, to := MonthRange(year, month)
	rows, err := s.repo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	return rows, nil
}

// Create stores a holiday entry.
func (s *HolidayService) Create(ctx context.Context, req CreateHolidayRequest) (*models.PublicHoliday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	holiday := &models.PublicHoliday{
		Date:        StartOfDay(date),
		Name:        req.Name,
		Description: req.Description,
		National:    req.National,
	}
	if err := s.repo.Create(ctx, holiday); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create holiday")
	}
	return holiday, nil
}
