package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/holiday"
	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/report"
)

type memHolidayRepo struct {
	nextID    int64
	holidays  map[int64]*holiday.Holiday
	snapshots map[int64][]holiday.DutyRecord
}

func newMemHolidayRepo() *memHolidayRepo {
	return &memHolidayRepo{
		nextID:    1,
		holidays:  map[int64]*holiday.Holiday{},
		snapshots: map[int64][]holiday.DutyRecord{},
	}
}

func (m *memHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for _, existing := range m.holidays {
		if existing.Date.Equal(h.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
	}
	h.ID = m.nextID
	m.nextID++
	h.CreatedAt = time.Now()
	m.holidays[h.ID] = &h
	return h, nil
}

func (m *memHolidayRepo) GetByID(ctx context.Context, id int64) (holiday.Holiday, error) {
	h, ok := m.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return *h, nil
}

func (m *memHolidayRepo) GetByDate(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	for _, h := range m.holidays {
		if h.Date.Equal(date) {
			return *h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (m *memHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range m.holidays {
		out = append(out, *h)
	}
	return out, nil
}

func (m *memHolidayRepo) SetProcessedAt(ctx context.Context, id int64, processedAt time.Time) error {
	h, ok := m.holidays[id]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	h.ProcessedAt = &processedAt
	return nil
}

func (m *memHolidayRepo) MarkFinalized(ctx context.Context, id int64) error {
	h, ok := m.holidays[id]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	h.StoredStatus = string(holiday.StatusFinalized)
	return nil
}

func (m *memHolidayRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(m.holidays, id)
	delete(m.snapshots, id)
	return nil
}

func (m *memHolidayRepo) ReplaceSnapshot(ctx context.Context, holidayID int64, records []holiday.DutyRecord) error {
	m.snapshots[holidayID] = records
	return nil
}

func (m *memHolidayRepo) GetSnapshot(ctx context.Context, holidayID int64, section, subSection, category string) ([]holiday.DutyRecord, error) {
	return m.snapshots[holidayID], nil
}

type fakeReportService struct {
	rows []report.PaymentSheetRow
}

func (f *fakeReportService) PaymentSheet(ctx context.Context, req report.PaymentSheetRequest) ([]report.PaymentSheetRow, error) {
	return f.rows, nil
}

func (f *fakeReportService) PresentStatus(ctx context.Context, req report.PresentStatusRequest) ([]report.PresentStatusRow, error) {
	return nil, nil
}

func (f *fakeReportService) ComputeDutySnapshot(ctx context.Context, date time.Time) ([]report.PaymentSheetRow, error) {
	return f.rows, nil
}

func newTestService(repo *memHolidayRepo, rows []report.PaymentSheetRow) holiday.Service {
	return NewHolidayService(nil, repo, &fakeReportService{rows: rows})
}

func TestHolidayService_CreateStartsAsDraft(t *testing.T) {
	ctx := context.Background()
	repo := newMemHolidayRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)
	assert.Equal(t, "draft", created.Status)
	assert.Nil(t, created.ProcessedAt)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "draft", list[0].Status)
	assert.Nil(t, list[0].ProcessedAt)
}

func TestHolidayService_CreateValidation(t *testing.T) {
	svc := newTestService(newMemHolidayRepo(), nil)

	_, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "", Name: ""})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "01-05-2024", Name: "Eid"})
	assert.Error(t, err)
}

func TestHolidayService_CreateDuplicateDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemHolidayRepo(), nil)

	_, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)
}

func TestHolidayService_ProcessStoresSnapshotAndTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := newMemHolidayRepo()
	rows := []report.PaymentSheetRow{
		{Sl: 1, ID: "1001", Name: "Rahim", Amount: 538},
		{Sl: 2, ID: "1002", Name: "Karim", Amount: 400},
	}
	svc := newTestService(repo, rows)

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)

	result, err := svc.Process(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Records)
	assert.Contains(t, result.Message, "2 duty records")

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.ProcessedAt)
	assert.Equal(t, holiday.StatusProcessed, stored.DerivedStatus())
	assert.Len(t, repo.snapshots[created.ID], 2)
}

func TestHolidayService_ProcessIsRepeatableUntilFinalized(t *testing.T) {
	ctx := context.Background()
	repo := newMemHolidayRepo()
	svc := newTestService(repo, []report.PaymentSheetRow{{Sl: 1, ID: "1001"}})

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)

	_, err = svc.Process(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.Process(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Finalize(ctx, created.ID))

	_, err = svc.Process(ctx, created.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayFinalized)
}

func TestHolidayService_FinalizeRequiresProcessed(t *testing.T) {
	ctx := context.Background()
	repo := newMemHolidayRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)

	err = svc.Finalize(ctx, created.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotProcessed)
}

func TestHolidayService_FinalizeTwiceRejected(t *testing.T) {
	ctx := context.Background()
	repo := newMemHolidayRepo()
	svc := newTestService(repo, []report.PaymentSheetRow{{Sl: 1, ID: "1001"}})

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)
	_, err = svc.Process(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Finalize(ctx, created.ID))

	err = svc.Finalize(ctx, created.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayFinalized)
}

func TestHolidayService_DeleteFinalizedRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newMemHolidayRepo()
	svc := newTestService(repo, []report.PaymentSheetRow{{Sl: 1, ID: "1001"}})

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)
	_, err = svc.Process(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Finalize(ctx, created.ID))

	err = svc.Delete(ctx, created.ID, false)
	assert.ErrorIs(t, err, holiday.ErrAdminRequired)

	require.NoError(t, svc.Delete(ctx, created.ID, true))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, repo.snapshots)
}

func TestHolidayService_DeleteDraftByAnyActor(t *testing.T) {
	ctx := context.Background()
	repo := newMemHolidayRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Eid"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, false))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

func TestHolidayService_ProcessUnknownID(t *testing.T) {
	svc := newTestService(newMemHolidayRepo(), nil)

	_, err := svc.Process(context.Background(), 99)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}
