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

// EmployeeRepository handles persistence for employees.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns employees matching the filter, newest first, each annotated
// with its attendance record count.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeWithCount, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(e.full_name ILIKE $%d OR e.email ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.JobTitle != "" {
		where = append(where, fmt.Sprintf("e.job_title ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.JobTitle+"%")
	}
	if filter.ActiveOnly != nil {
		where = append(where, fmt.Sprintf("e.active = $%d", len(args)+1))
		args = append(args, *filter.ActiveOnly)
	}
	query := fmt.Sprintf(`SELECT e.id, e.full_name, e.email, e.job_title, e.hire_date, e.active, e.created_at, e.updated_at,
        COUNT(a.id) AS attendance_count
        FROM employees e LEFT JOIN attendance_records a ON a.employee_id = e.id
        WHERE %s
        GROUP BY e.id
        ORDER BY e.created_at DESC`, strings.Join(where, " AND "))

	var rows []models.EmployeeWithCount
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return rows, nil
}

// GetByID fetches an employee with its attendance count. Returns
// sql.ErrNoRows when absent.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*models.EmployeeWithCount, error) {
	const query = `SELECT e.id, e.full_name, e.email, e.job_title, e.hire_date, e.active, e.created_at, e.updated_at,
        COUNT(a.id) AS attendance_count
        FROM employees e LEFT JOIN attendance_records a ON a.employee_id = e.id
        WHERE e.id = $1
        GROUP BY e.id`
	var row models.EmployeeWithCount
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByEmail fetches an employee by email. Returns sql.ErrNoRows when absent.
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	const query = `SELECT id, full_name, email, job_title, hire_date, active, created_at, updated_at
        FROM employees WHERE email = $1`
	var row models.Employee
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts an employee. The second return value reports an email
// uniqueness conflict; in that case no row is created.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) (bool, error) {
	now := time.Now().UTC()
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	employee.CreatedAt = now
	employee.UpdatedAt = now
	const query = `INSERT INTO employees (id, full_name, email, job_title, hire_date, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO NOTHING
RETURNING id`
	var insertedID string
	err := r.db.QueryRowxContext(ctx, query,
		employee.ID, employee.FullName, employee.Email, employee.JobTitle,
		employee.HireDate, employee.Active, employee.CreatedAt, employee.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return true, nil
		}
		return false, fmt.Errorf("create employee: %w", err)
	}
	return false, nil
}

// Update modifies an employee. Returns sql.ErrNoRows when the row is absent.
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	employee.UpdatedAt = time.Now().UTC()
	const query = `UPDATE employees SET full_name = :full_name, email = :email, job_title = :job_title,
hire_date = :hire_date, active = :active, updated_at = :updated_at
WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, employee)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an employee; attendance records go with it via the cascade
// on the foreign key. Returns sql.ErrNoRows when the row is absent.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Count returns the total number of employees.
func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM employees"); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return total, nil
}

// CountActive returns the number of employees flagged active.
func (r *EmployeeRepository) CountActive(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM employees WHERE active = TRUE"); err != nil {
		return 0, fmt.Errorf("count active employees: %w", err)
	}
	return total, nil
}
