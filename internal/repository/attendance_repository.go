package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hadir-app/hadir-api/internal/models"
)

const attendanceColumns = "id, employee_id, date, check_in, check_out, status, created_at, updated_at"

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Insert stores a new attendance record. The uniqueness constraint on
// (employee_id, date) is the only guard against concurrent duplicate
// check-ins; a conflict is reported through the second return value.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, bool, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = now
	record.UpdatedAt = now
	query := fmt.Sprintf(`INSERT INTO attendance_records (id, employee_id, date, check_in, check_out, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (employee_id, date) DO NOTHING
RETURNING %s`, attendanceColumns)
	var stored models.AttendanceRecord
	err := r.db.GetContext(ctx, &stored, query,
		record.ID, record.EmployeeID, record.Date, record.CheckIn, record.CheckOut,
		record.Status, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("insert attendance record: %w", err)
	}
	return &stored, false, nil
}

// GetByID fetches an attendance record. Returns sql.ErrNoRows when absent.
func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance_records WHERE id = $1", attendanceColumns)
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// SetCheckOut stamps the check-out time on a record. The service enforces
// the set-once rule before calling.
func (r *AttendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf(`UPDATE attendance_records SET check_out = $2, updated_at = $3 WHERE id = $1
RETURNING %s`, attendanceColumns)
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id, checkOut, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("set check-out: %w", err)
	}
	return &record, nil
}

// List returns attendance rows joined with minimal employee info, most
// recent day first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error) {
	base := `FROM attendance_records a
JOIN employees e ON e.id = a.employee_id`
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("a.employee_id = $%d", len(args)+1))
		args = append(args, filter.EmployeeID)
	}
	if filter.Status != nil && filter.Status.Valid() {
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("a.date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("a.date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.created_at, a.updated_at,
        e.full_name AS employee_name, e.job_title AS employee_job_title
        %s WHERE %s
        ORDER BY a.date DESC
        LIMIT %d OFFSET %d`, base, whereClause, size, offset)

	var rows []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance records: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance records: %w", err)
	}
	return rows, total, nil
}

// CountByStatusInRange counts records with the given status in the inclusive
// civil-day range.
func (r *AttendanceRepository) CountByStatusInRange(ctx context.Context, from, to time.Time, status models.AttendanceStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_records WHERE date >= $1 AND date <= $2 AND status = $3`
	var total int
	if err := r.db.GetContext(ctx, &total, query, from, to, status); err != nil {
		return 0, fmt.Errorf("count attendance by status: %w", err)
	}
	return total, nil
}

// StatusCounts aggregates record counts per status over the inclusive
// civil-day range. Statuses with no records are omitted.
func (r *AttendanceRepository) StatusCounts(ctx context.Context, from, to time.Time) ([]models.StatusCount, error) {
	const query = `SELECT status, COUNT(*) AS cnt FROM attendance_records
WHERE date >= $1 AND date <= $2
GROUP BY status`
	var rows []models.StatusCount
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("attendance status counts: %w", err)
	}
	return rows, nil
}

// StatusCountsByEmployee aggregates per-employee, per-status counts over the
// inclusive civil-day range.
func (r *AttendanceRepository) StatusCountsByEmployee(ctx context.Context, from, to time.Time) ([]models.EmployeeStatusCount, error) {
	const query = `SELECT employee_id, status, COUNT(*) AS cnt FROM attendance_records
WHERE date >= $1 AND date <= $2
GROUP BY employee_id, status`
	var rows []models.EmployeeStatusCount
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("attendance counts by employee: %w", err)
	}
	return rows, nil
}
