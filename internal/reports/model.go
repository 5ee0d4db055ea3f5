package reports

import "time"

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// RosterReportRow is one registration on an event's roster
type RosterReportRow struct {
	MemberID     uint      `json:"member_id"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	AttendStatus string    `json:"attend_status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// AttendanceSummaryRow aggregates one event's registrations by status
type AttendanceSummaryRow struct {
	EventID    uint   `json:"event_id"`
	EventName  string `json:"event_name"`
	Capacity   int    `json:"capacity"`
	Registered int    `json:"registered"`
	Attending  int    `json:"attending"`
	Absent     int    `json:"absent"`
	Completed  int    `json:"completed"`
}

// CoinSummaryRow aggregates one user's coin ledger
type CoinSummaryRow struct {
	UserID     uint   `json:"user_id"`
	UserName   string `json:"user_name"`
	Email      string `json:"email"`
	TotalCoins int    `json:"total_coins"`
	Awards     int    `json:"awards"`
}
