package attendancesync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfl-hr/attendance-dashboard-go/internal/domain/attendance"
)

type memAttendanceRepo struct {
	punches  []attendance.Punch
	syncSeen map[int64]bool
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{syncSeen: map[int64]bool{}}
}

func (m *memAttendanceRepo) GetForDate(ctx context.Context, date time.Time, empCodes []string) (map[string]attendance.DaySummary, error) {
	return nil, nil
}

func (m *memAttendanceRepo) MaxSyncID(ctx context.Context) (int64, error) {
	var max int64
	for _, p := range m.punches {
		if p.SyncID != nil && *p.SyncID > max {
			max = *p.SyncID
		}
	}
	return max, nil
}

func (m *memAttendanceRepo) InsertSynced(ctx context.Context, punches []attendance.Punch) (int, error) {
	inserted := 0
	for _, p := range punches {
		if p.SyncID != nil && m.syncSeen[*p.SyncID] {
			continue
		}
		if p.SyncID != nil {
			m.syncSeen[*p.SyncID] = true
		}
		m.punches = append(m.punches, p)
		inserted++
	}
	return inserted, nil
}

func (m *memAttendanceRepo) UpsertManual(ctx context.Context, empCode string, punchTime time.Time) (bool, error) {
	m.punches = append(m.punches, attendance.Punch{EmpCode: empCode, PunchTime: punchTime, IsCorrected: true})
	return true, nil
}

type fakeSource struct {
	punches []attendance.Punch
}

func (f *fakeSource) FetchSince(ctx context.Context, sinceID int64) ([]attendance.Punch, error) {
	var out []attendance.Punch
	for _, p := range f.punches {
		if p.SyncID != nil && *p.SyncID > sinceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func syncID(id int64) *int64 { return &id }

func TestSync_CopiesNewPunches(t *testing.T) {
	ctx := context.Background()
	repo := newMemAttendanceRepo()
	source := &fakeSource{punches: []attendance.Punch{
		{SyncID: syncID(1), EmpCode: "1001"},
		{SyncID: syncID(2), EmpCode: "1002"},
	}}
	svc := NewService(repo, source)

	inserted, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Len(t, repo.punches, 2)
}

func TestSync_ResumesAfterWatermark(t *testing.T) {
	ctx := context.Background()
	repo := newMemAttendanceRepo()
	source := &fakeSource{punches: []attendance.Punch{
		{SyncID: syncID(1), EmpCode: "1001"},
		{SyncID: syncID(2), EmpCode: "1002"},
	}}
	svc := NewService(repo, source)

	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	// New source rows appear after the first pass.
	source.punches = append(source.punches, attendance.Punch{SyncID: syncID(3), EmpCode: "1003"})

	inserted, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Len(t, repo.punches, 3)
}

func TestSync_NoNewPunchesIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := newMemAttendanceRepo()
	source := &fakeSource{punches: []attendance.Punch{{SyncID: syncID(1), EmpCode: "1001"}}}
	svc := NewService(repo, source)

	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	inserted, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Len(t, repo.punches, 1)
}

func TestAddManualPunch_RequiresEmployeeCode(t *testing.T) {
	svc := NewService(newMemAttendanceRepo(), &fakeSource{})

	_, err := svc.AddManualPunch(context.Background(), "", time.Now())
	assert.Error(t, err)
}

func TestAddManualPunch_Records(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := NewService(repo, &fakeSource{})

	created, err := svc.AddManualPunch(context.Background(), "1001", time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, repo.punches, 1)
	assert.True(t, repo.punches[0].IsCorrected)
}
