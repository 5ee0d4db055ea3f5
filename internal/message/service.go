package message

import (
	"context"
	"errors"
	"log"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/middleware"
	"github.com/sandeshj07/event-management-backend/utils"
)

var ErrPermissionDenied = errors.New("you do not have permission to view this message")

type Service interface {
	Send(ctx context.Context, req *SendMessageRequest, actor middleware.Actor, ip, userAgent string) (*AdminMessage, error)
	Contact(ctx context.Context, req *ContactRequest, ip, userAgent string) (*AdminMessage, error)
	GetByID(ctx context.Context, id uint, actor middleware.Actor) (*AdminMessage, error)
	Inbox(ctx context.Context, status string) ([]AdminMessage, error)
	MyMessages(ctx context.Context, actor middleware.Actor) ([]AdminMessage, error)
	Respond(ctx context.Context, id uint, response string, actor middleware.Actor, ip string) (*AdminMessage, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Send(ctx context.Context, req *SendMessageRequest, actor middleware.Actor, ip, userAgent string) (*AdminMessage, error) {
	msg := &AdminMessage{
		SenderID:    &actor.UserID,
		SenderEmail: actor.Email,
		Subject:     req.Subject,
		Body:        req.Body,
		IPAddress:   ip,
		UserAgent:   userAgent,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, nil, "MESSAGE_SENT", map[string]interface{}{
		"message_id": msg.ID,
		"subject":    msg.Subject,
	}, ip, "success")

	return msg, nil
}

// Contact handles the anonymous form; the row has no sender account
func (s *service) Contact(ctx context.Context, req *ContactRequest, ip, userAgent string) (*AdminMessage, error) {
	msg := &AdminMessage{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Body:        req.Body,
		IPAddress:   ip,
		UserAgent:   userAgent,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, nil, nil, "CONTACT_MESSAGE", map[string]interface{}{
		"message_id":   msg.ID,
		"sender_email": msg.SenderEmail,
		"subject":      msg.Subject,
	}, ip, "success")

	return msg, nil
}

// GetByID scopes access: the sender sees their own message, staff any
func (s *service) GetByID(ctx context.Context, id uint, actor middleware.Actor) (*AdminMessage, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID := uint(0)
	if msg.SenderID != nil {
		ownerID = *msg.SenderID
	}
	if !middleware.Resolve(actor, ownerID).Permits() {
		return nil, ErrPermissionDenied
	}
	return msg, nil
}

func (s *service) Inbox(ctx context.Context, status string) ([]AdminMessage, error) {
	return s.repo.List(ctx, status)
}

func (s *service) MyMessages(ctx context.Context, actor middleware.Actor) ([]AdminMessage, error) {
	return s.repo.ListBySender(ctx, actor.UserID)
}

// Respond records the answer and emails the sender. The repository
// guarantees a message is responded to at most once.
func (s *service) Respond(ctx context.Context, id uint, response string, actor middleware.Actor, ip string) (*AdminMessage, error) {
	msg, err := s.repo.Respond(ctx, id, response, actor.UserID)
	if err != nil {
		if errors.Is(err, ErrAlreadyResponded) {
			s.auditSvc.LogAction(ctx, &actor.UserID, nil, "MESSAGE_RESPONDED", map[string]interface{}{
				"message_id": id,
				"error":      err.Error(),
			}, ip, "failure")
		}
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, nil, "MESSAGE_RESPONDED", map[string]interface{}{
		"message_id": msg.ID,
		"to":         msg.SenderEmail,
	}, ip, "success")

	go func() {
		if err := utils.SendMessageResponseEmail(msg.SenderEmail, msg.Subject, response); err != nil {
			log.Printf("message response email to %s failed: %v", msg.SenderEmail, err)
		}
	}()

	return msg, nil
}
