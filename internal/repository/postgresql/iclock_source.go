package postgresql

import (
	"context"
	"fmt"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/attendance"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/database"
)

// iclockSource reads the remote BioTime punch table. Read-only; the remote
// schema is owned by the device vendor.
type iclockSource struct {
	db *database.DB
}

func NewIClockSource(db *database.DB) attendance.Source {
	return &iclockSource{db: db}
}

// FetchSince implements attendance.Source.
func (s *iclockSource) FetchSince(ctx context.Context, sinceID int64) ([]attendance.Punch, error) {
	query := `
		SELECT id, emp_code, punch_time
		FROM iclock_transaction
		WHERE id > $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, sinceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		var p attendance.Punch
		var sourceID int64
		if err := rows.Scan(&sourceID, &p.EmpCode, &p.PunchTime); err != nil {
			return nil, fmt.Errorf("failed to scan source punch: %w", err)
		}
		p.SyncID = &sourceID
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source punches: %w", err)
	}

	return punches, nil
}
