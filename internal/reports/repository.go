package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	EventRoster(ctx context.Context, eventID uint) ([]RosterReportRow, error)
	AttendanceSummary(ctx context.Context) ([]AttendanceSummaryRow, error)
	CoinSummary(ctx context.Context) ([]CoinSummaryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) EventRoster(ctx context.Context, eventID uint) ([]RosterReportRow, error) {
	var rows []RosterReportRow
	err := r.db.WithContext(ctx).
		Table("event_members em").
		Select("em.id AS member_id, u.full_name AS user_name, u.email, em.attend_status, em.created_at AS registered_at").
		Joins("JOIN users u ON u.id = em.user_id").
		Where("em.event_id = ?", eventID).
		Order("em.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) AttendanceSummary(ctx context.Context) ([]AttendanceSummaryRow, error) {
	var rows []AttendanceSummaryRow
	err := r.db.WithContext(ctx).
		Table("events e").
		Select(`e.id AS event_id, e.name AS event_name, e.maximum_attende AS capacity,
			COUNT(em.id) AS registered,
			COUNT(em.id) FILTER (WHERE em.attend_status = 'attending') AS attending,
			COUNT(em.id) FILTER (WHERE em.attend_status = 'absent') AS absent,
			COUNT(em.id) FILTER (WHERE em.attend_status = 'completed') AS completed`).
		Joins("LEFT JOIN event_members em ON em.event_id = e.id").
		Group("e.id, e.name, e.maximum_attende").
		Order("e.id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CoinSummary(ctx context.Context) ([]CoinSummaryRow, error) {
	var rows []CoinSummaryRow
	err := r.db.WithContext(ctx).
		Table("user_coins uc").
		Select("uc.user_id, u.full_name AS user_name, u.email, SUM(uc.gain_coin) AS total_coins, COUNT(uc.id) AS awards").
		Joins("JOIN users u ON u.id = uc.user_id").
		Group("uc.user_id, u.full_name, u.email").
		Order("total_coins DESC").
		Scan(&rows).Error
	return rows, err
}
