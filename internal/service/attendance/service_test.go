package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantorkita/hrms-backend-go/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Record // keyed by user id + date

	// duplicateInsert simulates the unique index rejecting a racing insert
	// the pre-check did not see.
	duplicateInsert bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.Record{}}
}

func recordKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	if f.duplicateInsert {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	rec.ID = "att-1"
	f.records[recordKey(rec.UserID, rec.Date)] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Record) error {
	f.records[recordKey(rec.UserID, rec.Date)] = rec
	return nil
}

func (f *fakeAttendanceRepo) GetOpenRecord(_ context.Context, userID string, date time.Time) (attendance.Record, error) {
	rec, ok := f.records[recordKey(userID, date)]
	if !ok || rec.CheckOut != nil {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) HasCheckedIn(_ context.Context, userID string, date time.Time) (bool, error) {
	_, ok := f.records[recordKey(userID, date)]
	return ok, nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, _ string, _ attendance.ListFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.ListFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListForExport(_ context.Context, _, _ time.Time, _ *string) ([]attendance.Record, error) {
	return nil, nil
}

func buildService(now time.Time) (*fakeAttendanceRepo, *serviceImpl) {
	repo := newFakeAttendanceRepo()
	svc := NewService(nil, repo).(*serviceImpl)
	svc.now = func() time.Time { return now }
	svc.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return repo, svc
}

func TestCheckIn_OpensTodaysRecord(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 2, 0, 0, time.UTC)
	_, svc := buildService(now)

	rec, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	assert.Equal(t, now, rec.CheckIn)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Nil(t, rec.CheckOut)
}

func TestCheckIn_TwiceSameDayRefused(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 2, 0, 0, time.UTC)
	_, svc := buildService(now)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_RacingInsertSurfacesAlreadyCheckedIn(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 2, 0, 0, time.UTC)
	repo, svc := buildService(now)
	repo.duplicateInsert = true

	_, err := svc.CheckIn(context.Background(), "emp-1", attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_ClosesRecordAndComputesMinutes(t *testing.T) {
	checkIn := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	repo, svc := buildService(checkIn)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return checkIn.Add(8*time.Hour + 30*time.Minute) }
	rec, err := svc.CheckOut(ctx, "emp-1", attendance.CheckOutRequest{})
	require.NoError(t, err)

	require.NotNil(t, rec.WorkMinutes)
	assert.Equal(t, 510, *rec.WorkMinutes)
	require.NotNil(t, rec.CheckOut)
	assert.NotNil(t, repo.records[recordKey("emp-1", rec.Date)].CheckOut)
}

func TestCheckOut_WithoutCheckInRefused(t *testing.T) {
	now := time.Date(2026, 8, 24, 17, 0, 0, 0, time.UTC)
	_, svc := buildService(now)

	_, err := svc.CheckOut(context.Background(), "emp-1", attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_TwiceSameDayRefused(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	_, svc := buildService(now)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, "emp-1", attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, "emp-1", attendance.CheckOutRequest{})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "emp-1", attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}
