package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/holiday"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// Create implements holiday.Repository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (holiday_date, holiday_name, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, h.Date, h.Name, h.StoredStatus).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// GetByID implements holiday.Repository.
func (r *holidayRepository) GetByID(ctx context.Context, id int64) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, holiday_name, status, processed_at, created_at, updated_at
		FROM holidays
		WHERE id = $1
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.Date, &h.Name, &h.StoredStatus, &h.ProcessedAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}

	return h, nil
}

// GetByDate implements holiday.Repository.
func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, holiday_name, status, processed_at, created_at, updated_at
		FROM holidays
		WHERE holiday_date = $1
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, date).Scan(
		&h.ID, &h.Date, &h.Name, &h.StoredStatus, &h.ProcessedAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return h, nil
}

// List implements holiday.Repository.
func (r *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_date, holiday_name, status, processed_at, created_at, updated_at
		FROM holidays
		ORDER BY holiday_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(
			&h.ID, &h.Date, &h.Name, &h.StoredStatus, &h.ProcessedAt, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	return holidays, nil
}

// SetProcessedAt implements holiday.Repository.
func (r *holidayRepository) SetProcessedAt(ctx context.Context, id int64, processedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE holidays SET processed_at = $2, updated_at = NOW() WHERE id = $1
	`, id, processedAt)
	if err != nil {
		return fmt.Errorf("failed to set processed_at: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// MarkFinalized implements holiday.Repository.
func (r *holidayRepository) MarkFinalized(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE holidays SET status = 'finalized', updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to finalize holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// Delete implements holiday.Repository. Duty records go with the holiday
// via ON DELETE CASCADE.
func (r *holidayRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// ReplaceSnapshot implements holiday.Repository.
func (r *holidayRepository) ReplaceSnapshot(ctx context.Context, holidayID int64, records []holiday.DutyRecord) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM holiday_duty_records WHERE holiday_id = $1`, holidayID); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	query := `
		INSERT INTO holiday_duty_records (
			holiday_id, emp_id, emp_name, designation, section, sub_section, category,
			gross_salary, basic_salary, in_time, out_time, work_hours, ot_hours, ot_rate,
			amount, remarks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	for _, rec := range records {
		_, err := q.Exec(ctx, query,
			holidayID, rec.EmpID, rec.EmpName, rec.Designation, rec.Section, rec.SubSection, rec.Category,
			rec.GrossSalary, rec.BasicSalary, rec.InTime, rec.OutTime, rec.WorkHours, rec.OTHours, rec.OTRate,
			rec.Amount, rec.Remarks,
		)
		if err != nil {
			return fmt.Errorf("failed to insert duty record: %w", err)
		}
	}

	return nil
}

// GetSnapshot implements holiday.Repository.
func (r *holidayRepository) GetSnapshot(ctx context.Context, holidayID int64, section, subSection, category string) ([]holiday.DutyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, holiday_id, emp_id, emp_name, designation, section, sub_section, category,
		       gross_salary, basic_salary, in_time, out_time, work_hours, ot_hours, ot_rate,
		       amount, remarks, created_at, updated_at
		FROM holiday_duty_records
		WHERE holiday_id = $1
		  AND ($2 = '' OR section = $2)
		  AND ($3 = '' OR sub_section = $3)
		  AND ($4 = '' OR category = $4)
		ORDER BY emp_id
	`

	rows, err := q.Query(ctx, query, holidayID, section, subSection, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	defer rows.Close()

	var records []holiday.DutyRecord
	for rows.Next() {
		var rec holiday.DutyRecord
		if err := rows.Scan(
			&rec.ID, &rec.HolidayID, &rec.EmpID, &rec.EmpName, &rec.Designation,
			&rec.Section, &rec.SubSection, &rec.Category,
			&rec.GrossSalary, &rec.BasicSalary, &rec.InTime, &rec.OutTime,
			&rec.WorkHours, &rec.OTHours, &rec.OTRate,
			&rec.Amount, &rec.Remarks, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan duty record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return records, nil
}
