package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/holiday"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
	"github.com/mfl-hr/attendance-dashboard-go/internal/pkg/database"
	"github.com/mfl-hr/attendance-dashboard-go/internal/repository/postgresql"
)

type HolidayServiceImpl struct {
	db          *database.DB
	holidayRepo holiday.Repository
	reportSvc   report.Service
}

func NewHolidayService(
	db *database.DB,
	holidayRepo holiday.Repository,
	reportSvc report.Service,
) holiday.Service {
	return &HolidayServiceImpl{
		db:          db,
		holidayRepo: holidayRepo,
		reportSvc:   reportSvc,
	}
}

// Create implements holiday.Service. New holidays always start as drafts.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Date:         date,
		Name:         req.Name,
		StoredStatus: string(holiday.StatusDraft),
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	slog.Info("Holiday created", "id", created.ID, "date", req.Date, "name", req.Name)
	return holiday.NewHolidayResponse(created), nil
}

// List implements holiday.Service.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(h))
	}
	return responses, nil
}

// Process implements holiday.Service. It recomputes the payment sheet for the
// holiday date and replaces any previous snapshot; repeatable until the
// holiday is finalized.
func (s *HolidayServiceImpl) Process(ctx context.Context, id int64) (holiday.ProcessResult, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.ProcessResult{}, err
	}
	if h.DerivedStatus() == holiday.StatusFinalized {
		return holiday.ProcessResult{}, holiday.ErrHolidayFinalized
	}

	rows, err := s.reportSvc.ComputeDutySnapshot(ctx, h.Date)
	if err != nil {
		return holiday.ProcessResult{}, fmt.Errorf("failed to compute duty snapshot: %w", err)
	}

	records := make([]holiday.DutyRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, holiday.DutyRecord{
			HolidayID:   h.ID,
			EmpID:       row.ID,
			EmpName:     row.Name,
			Designation: row.Designation,
			Section:     row.Section,
			SubSection:  row.SubSection,
			Category:    row.Category,
			GrossSalary: row.Gross,
			BasicSalary: row.Basic,
			InTime:      row.InTime,
			OutTime:     row.OutTime,
			WorkHours:   row.Hour,
			OTHours:     row.OT,
			OTRate:      row.OTRate,
			Amount:      row.Amount,
			Remarks:     row.Remarks,
		})
	}

	processedAt := time.Now()
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if err := s.holidayRepo.ReplaceSnapshot(txCtx, h.ID, records); err != nil {
			return err
		}
		return s.holidayRepo.SetProcessedAt(txCtx, h.ID, processedAt)
	})
	if err != nil {
		return holiday.ProcessResult{}, fmt.Errorf("failed to store duty snapshot: %w", err)
	}

	slog.Info("Holiday processed", "id", h.ID, "records", len(records))
	return holiday.ProcessResult{
		Message: fmt.Sprintf("Processed %d duty records for %s", len(records), h.Name),
		Records: len(records),
	}, nil
}

// Finalize implements holiday.Service. Finalization locks the holiday for
// every non-admin actor; it requires a processed snapshot to lock in.
func (s *HolidayServiceImpl) Finalize(ctx context.Context, id int64) error {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch h.DerivedStatus() {
	case holiday.StatusFinalized:
		return holiday.ErrHolidayFinalized
	case holiday.StatusDraft:
		return holiday.ErrHolidayNotProcessed
	}

	if err := s.holidayRepo.MarkFinalized(ctx, id); err != nil {
		return err
	}

	slog.Info("Holiday finalized", "id", id)
	return nil
}

// Delete implements holiday.Service. Draft and processed holidays are
// deletable by any authenticated actor; finalized ones only by an admin.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id int64, isAdmin bool) error {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if h.DerivedStatus() == holiday.StatusFinalized && !isAdmin {
		return holiday.ErrAdminRequired
	}

	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("Holiday deleted", "id", id, "status", string(h.DerivedStatus()), "force", h.DerivedStatus() == holiday.StatusFinalized)
	return nil
}

// withTx runs fn transactionally when a pool is attached; unit tests wire
// in-memory repositories and no pool.
func (s *HolidayServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}
