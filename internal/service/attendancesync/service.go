package attendancesync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/attendance"
)

// Service copies punch data from the external iClock source into the local
// transaction table, resuming after the stored sync watermark.
type Service struct {
	attendanceRepo attendance.Repository
	source         attendance.Source
}

func NewService(attendanceRepo attendance.Repository, source attendance.Source) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		source:         source,
	}
}

// Sync runs one synchronization pass and returns the number of punches
// copied. Re-running with no new source rows is a no-op.
func (s *Service) Sync(ctx context.Context) (int, error) {
	watermark, err := s.attendanceRepo.MaxSyncID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read sync watermark: %w", err)
	}

	slog.Info("Attendance sync starting", "watermark", watermark)

	punches, err := s.source.FetchSince(ctx, watermark)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch source punches: %w", err)
	}
	if len(punches) == 0 {
		slog.Info("Attendance sync: no new punches")
		return 0, nil
	}

	inserted, err := s.attendanceRepo.InsertSynced(ctx, punches)
	if err != nil {
		return inserted, fmt.Errorf("failed to store synced punches: %w", err)
	}

	slog.Info("Attendance sync complete", "fetched", len(punches), "inserted", inserted)
	return inserted, nil
}

// AddManualPunch records a corrected punch for an employee. One corrected
// punch is kept per session; a second entry for the same session replaces it.
func (s *Service) AddManualPunch(ctx context.Context, empCode string, punchTime time.Time) (created bool, err error) {
	if empCode == "" {
		return false, fmt.Errorf("employee code is required")
	}
	return s.attendanceRepo.UpsertManual(ctx, empCode, punchTime)
}
