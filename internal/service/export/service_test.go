package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kantorkita/hrms-backend-go/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	return r, nil
}
func (f *fakeAttendanceRepo) Update(ctx context.Context, r attendance.Record) error { return nil }
func (f *fakeAttendanceRepo) GetOpenRecord(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}
func (f *fakeAttendanceRepo) HasCheckedIn(ctx context.Context, userID string, date time.Time) (bool, error) {
	return false, nil
}
func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}
func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}
func (f *fakeAttendanceRepo) ListForExport(ctx context.Context, from, to time.Time, divisionID *string) ([]attendance.Record, error) {
	return f.records, nil
}

func sampleRecords() []attendance.Record {
	name := "Jane Doe"
	code := "EMP-001"
	div := "Engineering"
	checkOut := time.Date(2026, 8, 3, 17, 30, 0, 0, time.UTC)
	minutes := 510

	return []attendance.Record{
		{
			ID:           "rec-1",
			UserID:       "user-1",
			Date:         time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
			CheckIn:      time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
			CheckOut:     &checkOut,
			WorkMinutes:  &minutes,
			UserName:     &name,
			EmployeeCode: &code,
			DivisionName: &div,
		},
		{
			ID:      "rec-2",
			UserID:  "user-2",
			Date:    time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC),
			CheckIn: time.Date(2026, 8, 4, 8, 45, 0, 0, time.UTC),
		},
	}
}

func exportRange() (time.Time, time.Time) {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceExport_CSV(t *testing.T) {
	svc := NewService(&fakeAttendanceRepo{records: sampleRecords()})
	from, to := exportRange()

	result, err := svc.Attendance(context.Background(), from, to, nil, FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "attendance_20260801_20260831.csv", result.Filename)

	rows, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, attendanceHeader, rows[0])
	assert.Equal(t, "2026-08-03", rows[1][0])
	assert.Equal(t, "EMP-001", rows[1][1])
	assert.Equal(t, "Jane Doe", rows[1][2])
	assert.Equal(t, "17:30:00", rows[1][5])
	assert.Equal(t, "510", rows[1][6])

	// Open record has empty check-out and work minutes.
	assert.Equal(t, "", rows[2][5])
	assert.Equal(t, "", rows[2][6])
}

func TestAttendanceExport_XLSX(t *testing.T) {
	svc := NewService(&fakeAttendanceRepo{records: sampleRecords()})
	from, to := exportRange()

	result, err := svc.Attendance(context.Background(), from, to, nil, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "attendance_20260801_20260831.xlsx", result.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee Code", rows[0][1])
	assert.Equal(t, "EMP-001", rows[1][1])
}

func TestAttendanceExport_PDF(t *testing.T) {
	svc := NewService(&fakeAttendanceRepo{records: sampleRecords()})
	from, to := exportRange()

	result, err := svc.Attendance(context.Background(), from, to, nil, FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF")))
}

func TestAttendanceExport_UnsupportedFormat(t *testing.T) {
	svc := NewService(&fakeAttendanceRepo{})
	from, to := exportRange()

	_, err := svc.Attendance(context.Background(), from, to, nil, Format("docx"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
