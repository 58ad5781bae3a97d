package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/attendance"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// GetForDate implements attendance.Repository. Punches are partitioned at the
// session cutover: earliest before 13:00 becomes the in-time, latest at or
// after 13:00 the out-time.
func (r *attendanceRepository) GetForDate(ctx context.Context, date time.Time, empCodes []string) (map[string]attendance.DaySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT emp_code, punch_time
		FROM iclock_transactions
		WHERE punch_time::date = $1::date
		  AND (cardinality($2::text[]) = 0 OR emp_code = ANY($2::text[]))
	`

	rows, err := q.Query(ctx, query, date, empCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	type sessionPunches struct {
		morning   []time.Time
		afternoon []time.Time
	}
	byEmp := make(map[string]*sessionPunches)

	for rows.Next() {
		var empCode string
		var punch time.Time
		if err := rows.Scan(&empCode, &punch); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		sp, ok := byEmp[empCode]
		if !ok {
			sp = &sessionPunches{}
			byEmp[empCode] = sp
		}
		if punch.Hour() < attendance.SessionCutoverHour {
			sp.morning = append(sp.morning, punch)
		} else {
			sp.afternoon = append(sp.afternoon, punch)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punches: %w", err)
	}

	summaries := make(map[string]attendance.DaySummary, len(byEmp))
	for empCode, sp := range byEmp {
		var summary attendance.DaySummary
		for _, p := range sp.morning {
			if summary.InTime == nil || p.Before(*summary.InTime) {
				t := p
				summary.InTime = &t
			}
		}
		for _, p := range sp.afternoon {
			if summary.OutTime == nil || p.After(*summary.OutTime) {
				t := p
				summary.OutTime = &t
			}
		}
		summaries[empCode] = summary
	}

	return summaries, nil
}

// MaxSyncID implements attendance.Repository.
func (r *attendanceRepository) MaxSyncID(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var maxSyncID int64
	err := q.QueryRow(ctx, `
		SELECT COALESCE(MAX(sync_id), 0) FROM iclock_transactions
	`).Scan(&maxSyncID)
	if err != nil {
		return 0, fmt.Errorf("failed to get sync watermark: %w", err)
	}

	return maxSyncID, nil
}

// InsertSynced implements attendance.Repository.
func (r *attendanceRepository) InsertSynced(ctx context.Context, punches []attendance.Punch) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO iclock_transactions (emp_code, punch_time, sync_id, original_punch_time)
		VALUES ($1, $2, $3, $2)
		ON CONFLICT (sync_id) DO NOTHING
	`

	inserted := 0
	for _, p := range punches {
		tag, err := q.Exec(ctx, query, p.EmpCode, p.PunchTime, p.SyncID)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert synced punch: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// UpsertManual implements attendance.Repository. At most one corrected punch
// is kept per employee, date and session.
func (r *attendanceRepository) UpsertManual(ctx context.Context, empCode string, punchTime time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	isMorning := punchTime.Hour() < attendance.SessionCutoverHour

	var existingID int64
	err := q.QueryRow(ctx, `
		SELECT id FROM iclock_transactions
		WHERE emp_code = $1
		  AND punch_time::date = $2::date
		  AND is_corrected = TRUE
		  AND (EXTRACT(HOUR FROM punch_time) < $3) = $4
	`, empCode, punchTime, attendance.SessionCutoverHour, isMorning).Scan(&existingID)

	switch {
	case err == nil:
		_, err = q.Exec(ctx, `
			UPDATE iclock_transactions SET punch_time = $2, updated_at = NOW() WHERE id = $1
		`, existingID, punchTime)
		if err != nil {
			return false, fmt.Errorf("failed to update manual punch: %w", err)
		}
		return false, nil
	case errors.Is(err, pgx.ErrNoRows):
		_, err = q.Exec(ctx, `
			INSERT INTO iclock_transactions (emp_code, punch_time, is_corrected)
			VALUES ($1, $2, TRUE)
		`, empCode, punchTime)
		if err != nil {
			return false, fmt.Errorf("failed to insert manual punch: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to look up manual punch: %w", err)
	}
}
