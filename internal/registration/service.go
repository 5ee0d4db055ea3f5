package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/middleware"
	"github.com/sandeshj07/event-management-backend/utils"
)

var (
	ErrPermissionDenied    = errors.New("you do not have permission to modify this registration")
	ErrInvalidAttendStatus = errors.New("attend status must be waiting, attending, absent or completed")
)

type Service interface {
	Join(ctx context.Context, eventID uint, actor middleware.Actor, ip string) (*JoinResult, error)
	Cancel(ctx context.Context, memberID uint, actor middleware.Actor, ip string) error
	MyRegistrations(ctx context.Context, actor middleware.Actor) ([]EventMember, error)
	ListEventMembers(ctx context.Context, eventID uint) ([]EventMember, error)
	ListEventMembersByStatus(ctx context.Context, eventID uint, status string) ([]EventMember, error)
	UpdateAttendance(ctx context.Context, memberID uint, status string, actor middleware.Actor, ip string) (*EventMember, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Join(ctx context.Context, eventID uint, actor middleware.Actor, ip string) (*JoinResult, error) {
	result, err := s.repo.Join(ctx, eventID, actor.UserID)
	if err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, &eventID, "EVENT_JOIN", map[string]interface{}{
			"event_id": eventID,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	status := "success"
	if result.Outcome == OutcomeCapacityExceeded {
		status = "failure"
	}
	s.auditSvc.LogAction(ctx, &actor.UserID, &eventID, "EVENT_JOIN", map[string]interface{}{
		"event_id": eventID,
		"outcome":  result.Outcome,
		"count":    result.Count,
		"capacity": result.Capacity,
	}, ip, status)

	if result.Outcome == OutcomeRegistered {
		utils.PublishActivity(ctx, fmt.Sprintf("event-%d", eventID), map[string]interface{}{
			"type":     "member_joined",
			"event_id": eventID,
			"user_id":  actor.UserID,
			"count":    result.Count,
			"capacity": result.Capacity,
		})
	}

	return result, nil
}

// Cancel removes a registration. Members may only cancel their own rows;
// staff may cancel anyone's.
func (s *service) Cancel(ctx context.Context, memberID uint, actor middleware.Actor, ip string) error {
	member, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}

	if !middleware.Resolve(actor, member.UserID).Permits() {
		s.auditSvc.LogAction(ctx, &actor.UserID, &member.EventID, "EVENT_LEAVE", map[string]interface{}{
			"member_id": memberID,
			"owner_id":  member.UserID,
		}, ip, "denied")
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, memberID); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &member.EventID, "EVENT_LEAVE", map[string]interface{}{
		"member_id": memberID,
		"event_id":  member.EventID,
		"user_id":   member.UserID,
	}, ip, "success")

	utils.PublishActivity(ctx, fmt.Sprintf("event-%d", member.EventID), map[string]interface{}{
		"type":     "member_left",
		"event_id": member.EventID,
		"user_id":  member.UserID,
	})

	return nil
}

func (s *service) MyRegistrations(ctx context.Context, actor middleware.Actor) ([]EventMember, error) {
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *service) ListEventMembers(ctx context.Context, eventID uint) ([]EventMember, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *service) ListEventMembersByStatus(ctx context.Context, eventID uint, status string) ([]EventMember, error) {
	if !validAttendStatus(status) {
		return nil, ErrInvalidAttendStatus
	}
	return s.repo.ListByEventAndStatus(ctx, eventID, status)
}

func (s *service) UpdateAttendance(ctx context.Context, memberID uint, status string, actor middleware.Actor, ip string) (*EventMember, error) {
	if !validAttendStatus(status) {
		return nil, ErrInvalidAttendStatus
	}

	member, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, memberID, status); err != nil {
		return nil, err
	}
	member.AttendStatus = status

	s.auditSvc.LogAction(ctx, &actor.UserID, &member.EventID, "ATTENDANCE_UPDATED", map[string]interface{}{
		"member_id":     memberID,
		"user_id":       member.UserID,
		"attend_status": status,
	}, ip, "success")

	return member, nil
}

func validAttendStatus(status string) bool {
	switch status {
	case AttendWaiting, AttendAttending, AttendAbsent, AttendCompleted:
		return true
	}
	return false
}
