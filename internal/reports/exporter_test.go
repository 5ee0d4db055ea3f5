package reports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"
)

func sampleRoster() []RosterReportRow {
	return []RosterReportRow{
		{MemberID: 1, UserName: "Asha Rao", Email: "asha@example.com", AttendStatus: "attending",
			RegisteredAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{MemberID: 2, UserName: "Ben Ito", Email: "ben@example.com", AttendStatus: "waiting",
			RegisteredAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}
}

func TestRosterCSV(t *testing.T) {
	e := NewExporter()

	data, filename, mime, err := e.Roster(sampleRoster(), FormatCSV)
	if err != nil {
		t.Fatalf("Roster csv: %v", err)
	}
	if filename != "event_roster.csv" || mime != "text/csv" {
		t.Errorf("filename/mime = %q/%q", filename, mime)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[1][1] != "Asha Rao" || records[1][3] != "attending" {
		t.Errorf("first row = %v", records[1])
	}
}

func TestRosterExcel(t *testing.T) {
	e := NewExporter()

	data, filename, _, err := e.Roster(sampleRoster(), FormatExcel)
	if err != nil {
		t.Fatalf("Roster excel: %v", err)
	}
	if filename != "event_roster.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	// xlsx is a zip container
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("output is not a valid xlsx archive")
	}
}

func TestRosterPDF(t *testing.T) {
	e := NewExporter()

	data, filename, mime, err := e.Roster(sampleRoster(), FormatPDF)
	if err != nil {
		t.Fatalf("Roster pdf: %v", err)
	}
	if filename != "event_roster.pdf" || mime != "application/pdf" {
		t.Errorf("filename/mime = %q/%q", filename, mime)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a valid pdf")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	e := NewExporter()

	_, _, _, err := e.Roster(nil, "docx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want unsupported format", err)
	}
	_, _, _, err = e.AttendanceSummary(nil, "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want unsupported format", err)
	}
}

func TestAttendanceSummaryCSV(t *testing.T) {
	e := NewExporter()

	rows := []AttendanceSummaryRow{
		{EventID: 1, EventName: "Spring Meetup", Capacity: 30, Registered: 12, Attending: 8, Absent: 1, Completed: 3},
	}
	data, _, _, err := e.AttendanceSummary(rows, FormatCSV)
	if err != nil {
		t.Fatalf("AttendanceSummary csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if records[1][1] != "Spring Meetup" || records[1][2] != "30" || records[1][3] != "12" {
		t.Errorf("row = %v", records[1])
	}
}
