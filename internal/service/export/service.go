package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/kantorkita/hrms-backend-go/internal/domain/attendance"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Result is a rendered report ready to stream to the client.
type Result struct {
	ContentType string
	Filename    string
	Data        []byte
}

type Service interface {
	Attendance(ctx context.Context, from, to time.Time, divisionID *string, format Format) (Result, error)
}

type serviceImpl struct {
	attendanceRepo attendance.Repository
}

func NewService(attendanceRepo attendance.Repository) Service {
	return &serviceImpl{attendanceRepo: attendanceRepo}
}

var attendanceHeader = []string{
	"Date", "Employee Code", "Employee Name", "Division",
	"Check In", "Check Out", "Work Minutes", "Face Match Score",
}

func attendanceRow(r attendance.Record) []string {
	row := []string{
		r.Date.Format("2006-01-02"),
		deref(r.EmployeeCode),
		deref(r.UserName),
		deref(r.DivisionName),
		r.CheckIn.Format("15:04:05"),
		"", "", "",
	}
	if r.CheckOut != nil {
		row[5] = r.CheckOut.Format("15:04:05")
	}
	if r.WorkMinutes != nil {
		row[6] = strconv.Itoa(*r.WorkMinutes)
	}
	if r.FaceMatchScore != nil {
		row[7] = strconv.FormatFloat(*r.FaceMatchScore, 'f', 2, 64)
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *serviceImpl) Attendance(ctx context.Context, from, to time.Time, divisionID *string, format Format) (Result, error) {
	records, err := s.attendanceRepo.ListForExport(ctx, from, to, divisionID)
	if err != nil {
		return Result{}, err
	}

	filename := fmt.Sprintf("attendance_%s_%s", from.Format("20060102"), to.Format("20060102"))

	switch format {
	case FormatCSV:
		data, err := renderCSV(records)
		if err != nil {
			return Result{}, err
		}
		return Result{ContentType: "text/csv", Filename: filename + ".csv", Data: data}, nil
	case FormatXLSX:
		data, err := renderXLSX(records)
		if err != nil {
			return Result{}, err
		}
		return Result{
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    filename + ".xlsx",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := renderPDF(records, from, to)
		if err != nil {
			return Result{}, err
		}
		return Result{ContentType: "application/pdf", Filename: filename + ".pdf", Data: data}, nil
	default:
		return Result{}, ErrUnsupportedFormat
	}
}

func renderCSV(records []attendance.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(attendanceHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write(attendanceRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(records []attendance.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	writeRow := func(rowNum int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, attendanceHeader); err != nil {
		return nil, err
	}
	for i, r := range records {
		if err := writeRow(i+2, attendanceRow(r)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(records []attendance.Record, from, to time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Attendance Report %s - %s", from.Format("2006-01-02"), to.Format("2006-01-02")))
	pdf.Ln(12)

	colWidths := []float64{25, 30, 55, 45, 25, 25, 30, 32}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range attendanceHeader {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range records {
		for i, v := range attendanceRow(r) {
			pdf.CellFormat(colWidths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
