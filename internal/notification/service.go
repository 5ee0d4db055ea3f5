package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/datatypes"

	"github.com/sandeshj07/event-management-backend/middleware"
	"github.com/sandeshj07/event-management-backend/utils"
)

var ErrPermissionDenied = errors.New("you do not have permission to modify this notification")

type Service interface {
	NotifyUsers(ctx context.Context, userIDs []uint, title, message, category string, eventID *uint) error
	ListMine(ctx context.Context, actor middleware.Actor, limit int) ([]InAppNotification, error)
	MarkRead(ctx context.Context, id uint, actor middleware.Actor) error
	MarkAllRead(ctx context.Context, actor middleware.Actor) error
	UnreadCount(ctx context.Context, actor middleware.Actor) (int64, error)
	RegisterDevice(ctx context.Context, req *RegisterDeviceRequest, actor middleware.Actor) error
	UnregisterDevice(ctx context.Context, deviceToken string, actor middleware.Actor) error
	ListLogs(ctx context.Context, limit int) ([]NotificationLog, error)
}

type service struct {
	repo Repository
	push Channel
}

func NewService(repo Repository, push Channel) Service {
	return &service{repo: repo, push: push}
}

// NotifyUsers writes one in-app notification per recipient, then pushes
// to their registered devices. Push failures are logged; the in-app rows
// are the source of truth.
func (s *service) NotifyUsers(ctx context.Context, userIDs []uint, title, message, category string, eventID *uint) error {
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]InAppNotification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, InAppNotification{
			UserID:   id,
			Title:    title,
			Message:  message,
			Category: category,
			EventID:  eventID,
		})
	}
	if err := s.repo.CreateInApp(ctx, notifications); err != nil {
		return err
	}

	recipients, _ := json.Marshal(userIDs)
	entry := &NotificationLog{
		Channel:    "in_app",
		Title:      title,
		Body:       message,
		Recipients: datatypes.JSON(recipients),
		Status:     "sent",
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		log.Printf("notification: log write failed: %v", err)
	}

	if utils.IsFCMEnabled() {
		s.pushToDevices(ctx, userIDs, title, message)
	}

	return nil
}

func (s *service) pushToDevices(ctx context.Context, userIDs []uint, title, message string) {
	tokens, err := s.repo.ActiveTokensForUsers(ctx, userIDs)
	if err != nil {
		log.Printf("notification: token lookup failed: %v", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	recipients, _ := json.Marshal(tokens)
	entry := &NotificationLog{
		Channel:    "push",
		Title:      title,
		Body:       message,
		Recipients: datatypes.JSON(recipients),
		Status:     "pending",
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		log.Printf("notification: log write failed: %v", err)
	}

	if err := s.push.Send(tokens, title, message); err != nil {
		log.Printf("notification: push failed: %v", err)
		msg := err.Error()
		s.repo.UpdateLogStatus(ctx, entry.ID, "failed", &msg)
		return
	}
	s.repo.UpdateLogStatus(ctx, entry.ID, "sent", nil)
}

func (s *service) ListMine(ctx context.Context, actor middleware.Actor, limit int) ([]InAppNotification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, actor.UserID, limit)
}

// MarkRead flips the read flag. Users may only touch their own rows.
func (s *service) MarkRead(ctx context.Context, id uint, actor middleware.Actor) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !middleware.Resolve(actor, n.UserID).Permits() {
		return ErrPermissionDenied
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, actor middleware.Actor) error {
	return s.repo.MarkAllRead(ctx, actor.UserID)
}

func (s *service) UnreadCount(ctx context.Context, actor middleware.Actor) (int64, error) {
	return s.repo.UnreadCount(ctx, actor.UserID)
}

func (s *service) RegisterDevice(ctx context.Context, req *RegisterDeviceRequest, actor middleware.Actor) error {
	return s.repo.UpsertDeviceToken(ctx, &FCMDeviceToken{
		UserID:      actor.UserID,
		DeviceToken: req.DeviceToken,
		DeviceType:  req.DeviceType,
	})
}

func (s *service) UnregisterDevice(ctx context.Context, deviceToken string, actor middleware.Actor) error {
	return s.repo.DeactivateDeviceToken(ctx, actor.UserID, deviceToken)
}

func (s *service) ListLogs(ctx context.Context, limit int) ([]NotificationLog, error) {
	if limit < 1 || limit > 200 {
		limit = 100
	}
	return s.repo.ListLogs(ctx, limit)
}
