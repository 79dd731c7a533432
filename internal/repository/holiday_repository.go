package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hadir-app/hadir-api/internal/models"
)

// HolidayRepository persists public holidays.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs the repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListInRange returns holidays within the inclusive date range, ascending by
// date.
func (r *HolidayRepository) ListInRange(ctx context.Context, from, to time.Time) ([]models.PublicHoliday, error) {
	const query = `SELECT id, date, name, description, national, created_at
FROM public_holidays
WHERE date >= $1 AND date <= $2
ORDER BY date ASC`
	var rows []models.PublicHoliday
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return rows, nil
}

// Create inserts a holiday.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.PublicHoliday) error {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	if holiday.CreatedAt.IsZero() {
		holiday.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO public_holidays (id, date, name, description, national, created_at)
VALUES (:id, :date, :name, :description, :national, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}
