package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders report rows into a downloadable document.
// Each method returns the file body, a filename and a MIME type.
type Exporter interface {
	Roster(rows []RosterReportRow, format string) ([]byte, string, string, error)
	AttendanceSummary(rows []AttendanceSummaryRow, format string) ([]byte, string, string, error)
	CoinSummary(rows []CoinSummaryRow, format string) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

var ErrUnsupportedFormat = fmt.Errorf("format must be csv, excel or pdf")

func (e *exporter) Roster(rows []RosterReportRow, format string) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		return e.rosterCSV(rows)
	case FormatExcel:
		return e.rosterExcel(rows)
	case FormatPDF:
		return e.rosterPDF(rows)
	}
	return nil, "", "", ErrUnsupportedFormat
}

func (e *exporter) rosterCSV(rows []RosterReportRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	headers := []string{"member_id", "user_name", "email", "attend_status", "registered_at"}
	if err := w.Write(headers); err != nil {
		return nil, "", "", err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.MemberID),
			r.UserName,
			r.Email,
			r.AttendStatus,
			r.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "event_roster.csv", "text/csv", nil
}

func (e *exporter) rosterExcel(rows []RosterReportRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Event Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"member_id", "user_name", "email", "attend_status", "registered_at"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.MemberID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.UserName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.AttendStatus)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.RegisteredAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "event_roster.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (e *exporter) rosterPDF(rows []RosterReportRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Event Roster")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Name", "Email", "Status", "Registered At"}
	widths := []float64{20, 70, 80, 40, 50}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.MemberID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.UserName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.AttendStatus, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.RegisteredAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "event_roster.pdf", "application/pdf", nil
}

func (e *exporter) AttendanceSummary(rows []AttendanceSummaryRow, format string) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		return e.attendanceCSV(rows)
	case FormatExcel:
		return e.attendanceExcel(rows)
	case FormatPDF:
		return e.attendancePDF(rows)
	}
	return nil, "", "", ErrUnsupportedFormat
}

func (e *exporter) attendanceCSV(rows []AttendanceSummaryRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	headers := []string{"event_id", "event_name", "capacity", "registered", "attending", "absent", "completed"}
	if err := w.Write(headers); err != nil {
		return nil, "", "", err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.EventID),
			r.EventName,
			fmt.Sprint(r.Capacity),
			fmt.Sprint(r.Registered),
			fmt.Sprint(r.Attending),
			fmt.Sprint(r.Absent),
			fmt.Sprint(r.Completed),
		}
		if err := w.Write(record); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "attendance_summary.csv", "text/csv", nil
}

func (e *exporter) attendanceExcel(rows []AttendanceSummaryRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Attendance Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"event_id", "event_name", "capacity", "registered", "attending", "absent", "completed"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.EventID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.EventName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Capacity)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Registered)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Attending)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Absent)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Completed)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "attendance_summary.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (e *exporter) attendancePDF(rows []AttendanceSummaryRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Attendance Summary")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Event", "Capacity", "Registered", "Attending", "Absent", "Completed"}
	widths := []float64{15, 95, 30, 30, 30, 25, 30}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.EventID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.EventName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprint(r.Capacity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprint(r.Registered), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprint(r.Attending), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprint(r.Absent), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprint(r.Completed), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "attendance_summary.pdf", "application/pdf", nil
}

func (e *exporter) CoinSummary(rows []CoinSummaryRow, format string) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		return e.coinCSV(rows)
	case FormatExcel:
		return e.coinExcel(rows)
	case FormatPDF:
		return e.coinPDF(rows)
	}
	return nil, "", "", ErrUnsupportedFormat
}

func (e *exporter) coinCSV(rows []CoinSummaryRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	headers := []string{"user_id", "user_name", "email", "total_coins", "awards"}
	if err := w.Write(headers); err != nil {
		return nil, "", "", err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.UserID),
			r.UserName,
			r.Email,
			fmt.Sprint(r.TotalCoins),
			fmt.Sprint(r.Awards),
		}
		if err := w.Write(record); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "coin_summary.csv", "text/csv", nil
}

func (e *exporter) coinExcel(rows []CoinSummaryRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Coin Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"user_id", "user_name", "email", "total_coins", "awards"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.UserName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.TotalCoins)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Awards)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "coin_summary.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func (e *exporter) coinPDF(rows []CoinSummaryRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Coin Summary")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Name", "Email", "Coins", "Awards"}
	widths := []float64{15, 55, 75, 25, 25}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.UserID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.UserName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprint(r.TotalCoins), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprint(r.Awards), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "coin_summary.pdf", "application/pdf", nil
}
