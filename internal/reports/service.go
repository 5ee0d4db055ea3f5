package reports

import (
	"context"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/middleware"
)

type Service interface {
	ExportRoster(ctx context.Context, eventID uint, format string, actor middleware.Actor, ip string) ([]byte, string, string, error)
	ExportAttendanceSummary(ctx context.Context, format string, actor middleware.Actor, ip string) ([]byte, string, string, error)
	ExportCoinSummary(ctx context.Context, format string, actor middleware.Actor, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, exporter Exporter, auditSvc auditlog.Service) Service {
	return &service{repo: repo, exporter: exporter, auditSvc: auditSvc}
}

func (s *service) ExportRoster(ctx context.Context, eventID uint, format string, actor middleware.Actor, ip string) ([]byte, string, string, error) {
	rows, err := s.repo.EventRoster(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, mime, err := s.exporter.Roster(rows, format)
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &eventID, "REPORT_EXPORTED", map[string]interface{}{
		"report":   "roster",
		"event_id": eventID,
		"format":   format,
		"rows":     len(rows),
	}, ip, "success")

	return data, filename, mime, nil
}

func (s *service) ExportAttendanceSummary(ctx context.Context, format string, actor middleware.Actor, ip string) ([]byte, string, string, error) {
	rows, err := s.repo.AttendanceSummary(ctx)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, mime, err := s.exporter.AttendanceSummary(rows, format)
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, nil, "REPORT_EXPORTED", map[string]interface{}{
		"report": "attendance_summary",
		"format": format,
		"rows":   len(rows),
	}, ip, "success")

	return data, filename, mime, nil
}

func (s *service) ExportCoinSummary(ctx context.Context, format string, actor middleware.Actor, ip string) ([]byte, string, string, error) {
	rows, err := s.repo.CoinSummary(ctx)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, mime, err := s.exporter.CoinSummary(rows, format)
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, nil, "REPORT_EXPORTED", map[string]interface{}{
		"report": "coin_summary",
		"format": format,
		"rows":   len(rows),
	}, ip, "success")

	return data, filename, mime, nil
}
