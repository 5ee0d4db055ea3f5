package comment

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/event"
	"github.com/sandeshj07/event-management-backend/middleware"
)

var (
	ErrEmptyBody        = errors.New("comment body cannot be empty")
	ErrParentMismatch   = errors.New("parent comment belongs to a different event")
	ErrNestedReply      = errors.New("replies cannot be nested; reply to the top-level comment")
	ErrPermissionDenied = errors.New("you do not have permission to delete this comment")
)

type Service interface {
	Add(ctx context.Context, eventID uint, req *CreateCommentRequest, actor middleware.Actor, ip string) (*EventComment, error)
	ListByEvent(ctx context.Context, eventID uint) ([]EventComment, error)
	Delete(ctx context.Context, commentID uint, actor middleware.Actor, ip string) error
}

type service struct {
	repo     Repository
	events   event.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, events event.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, events: events, auditSvc: auditSvc}
}

func (s *service) Add(ctx context.Context, eventID uint, req *CreateCommentRequest, actor middleware.Actor, ip string) (*EventComment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.Status != StatusActive {
			return nil, gorm.ErrRecordNotFound
		}
		// a reply must target a top-level comment on the same event
		if parent.EventID != eventID {
			return nil, ErrParentMismatch
		}
		if parent.ParentID != nil {
			return nil, ErrNestedReply
		}
	}

	comment := &EventComment{
		EventID:  eventID,
		UserID:   actor.UserID,
		ParentID: req.ParentID,
		Body:     body,
		Status:   StatusActive,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &eventID, "COMMENT_ADDED", map[string]interface{}{
		"comment_id": comment.ID,
		"event_id":   eventID,
		"is_reply":   req.ParentID != nil,
	}, ip, "success")

	return comment, nil
}

func (s *service) ListByEvent(ctx context.Context, eventID uint) ([]EventComment, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

// Delete deactivates a comment. Authors may delete their own; staff any.
// The row survives in storage with status inactive.
func (s *service) Delete(ctx context.Context, commentID uint, actor middleware.Actor, ip string) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Status != StatusActive {
		return gorm.ErrRecordNotFound
	}

	if !middleware.Resolve(actor, comment.UserID).Permits() {
		s.auditSvc.LogAction(ctx, &actor.UserID, &comment.EventID, "COMMENT_DELETED", map[string]interface{}{
			"comment_id": commentID,
			"owner_id":   comment.UserID,
		}, ip, "denied")
		return ErrPermissionDenied
	}

	if err := s.repo.Deactivate(ctx, commentID); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &comment.EventID, "COMMENT_DELETED", map[string]interface{}{
		"comment_id": commentID,
		"event_id":   comment.EventID,
	}, ip, "success")

	return nil
}
