package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/auth"
	"github.com/sandeshj07/event-management-backend/middleware"
	"github.com/sandeshj07/event-management-backend/utils"
)

var (
	ErrInvalidDate       = errors.New("dates must be in YYYY-MM-DD format")
	ErrInvalidDateRange  = errors.New("end date is before start date")
	ErrInvalidStatus     = errors.New("status must be active, completed or inactive")
	ErrInvalidTransition = errors.New("completed events cannot be reactivated")
)

const dateLayout = "2006-01-02"

type Service interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest, imagePath string, actor middleware.Actor, ip string) (*Event, error)
	GetEventByID(ctx context.Context, id uint) (*Event, error)
	GetPublicEvent(ctx context.Context, id uint) (*Event, error)
	ListEvents(ctx context.Context, search string) ([]Event, error)
	ListPublicEvents(ctx context.Context, search string, page int) ([]Event, int64, error)
	ListCompletedEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, id uint, req *UpdateEventRequest, actor middleware.Actor, ip string) (*Event, error)
	UpdateEventStatus(ctx context.Context, id uint, status string, actor middleware.Actor, ip string) (*Event, error)
	DeleteEvent(ctx context.Context, id uint, actor middleware.Actor, ip string) error
	GetEventImages(ctx context.Context, eventID uint) ([]EventImage, error)
	GetEventAgendas(ctx context.Context, eventID uint) ([]EventAgenda, error)
}

// PageSize is the public catalog page length
const PageSize = 10

type service struct {
	repo     Repository
	users    auth.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, users auth.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, users: users, auditSvc: auditSvc}
}

func (s *service) CreateEvent(ctx context.Context, req *CreateEventRequest, imagePath string, actor middleware.Actor, ip string) (*Event, error) {
	startDate, endDate, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	event := &Event{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		ScheduledStatus: req.ScheduledStatus,
		Venue:           req.Venue,
		StartDate:       startDate,
		EndDate:         endDate,
		Location:        req.Location,
		Points:          req.Points,
		MaximumAttende:  req.MaximumAttende,
		Status:          status,
		CreatedBy:       actor.UserID,
		UpdatedBy:       actor.UserID,
	}

	var image *EventImage
	if imagePath != "" {
		image = &EventImage{ImagePath: imagePath}
	}

	var agenda *EventAgenda
	if req.AgendaSession != "" {
		agenda = &EventAgenda{
			SessionName: req.AgendaSession,
			SpeakerName: req.AgendaSpeaker,
			StartTime:   req.AgendaStart,
			EndTime:     req.AgendaEnd,
			VenueName:   req.AgendaVenue,
		}
	}

	if err := s.repo.Create(ctx, event, image, agenda); err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, nil, "EVENT_CREATED", map[string]interface{}{
			"name":  req.Name,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &event.ID, "EVENT_CREATED", map[string]interface{}{
		"event_id": event.ID,
		"name":     event.Name,
		"capacity": event.MaximumAttende,
	}, ip, "success")

	utils.PublishActivity(ctx, fmt.Sprintf("event-%d", event.ID), map[string]interface{}{
		"type":     "event_created",
		"event_id": event.ID,
		"name":     event.Name,
		"by":       actor.UserID,
	})

	if event.Status == StatusActive {
		s.announceEvent(ctx, event)
	}

	return event, nil
}

// announceEvent emails every active member about a new event.
// Delivery runs in the background; a dead SMTP server never blocks create.
func (s *service) announceEvent(ctx context.Context, event *Event) {
	emails, err := s.users.ListActiveEmails()
	if err != nil {
		log.Printf("event announcement: listing recipients failed: %v", err)
		return
	}
	if len(emails) == 0 {
		return
	}
	utils.SendEventAnnouncement(emails, event.Name, event.StartDate.Format(dateLayout))
}

func (s *service) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetPublicEvent(ctx context.Context, id uint) (*Event, error) {
	return s.repo.GetActiveByID(ctx, id)
}

func (s *service) ListEvents(ctx context.Context, search string) ([]Event, error) {
	return s.repo.ListAll(ctx, search)
}

func (s *service) ListPublicEvents(ctx context.Context, search string, page int) ([]Event, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListActive(ctx, search, PageSize, (page-1)*PageSize)
}

func (s *service) ListCompletedEvents(ctx context.Context) ([]Event, error) {
	return s.repo.ListByStatus(ctx, StatusCompleted)
}

func (s *service) UpdateEvent(ctx context.Context, id uint, req *UpdateEventRequest, actor middleware.Actor, ip string) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	startDate, endDate, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	event.CategoryID = req.CategoryID
	event.Name = req.Name
	event.Description = req.Description
	event.ScheduledStatus = req.ScheduledStatus
	event.Venue = req.Venue
	event.StartDate = startDate
	event.EndDate = endDate
	event.Location = req.Location
	event.Points = req.Points
	event.MaximumAttende = req.MaximumAttende
	if req.Status != "" {
		if !validStatus(req.Status) {
			return nil, ErrInvalidStatus
		}
		event.Status = req.Status
	}
	event.UpdatedBy = actor.UserID

	if err := s.repo.Update(ctx, event); err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, &id, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &event.ID, "EVENT_UPDATED", map[string]interface{}{
		"event_id": event.ID,
		"name":     event.Name,
	}, ip, "success")

	utils.PublishActivity(ctx, fmt.Sprintf("event-%d", event.ID), map[string]interface{}{
		"type":     "event_updated",
		"event_id": event.ID,
		"name":     event.Name,
		"by":       actor.UserID,
	})

	return event, nil
}

func (s *service) UpdateEventStatus(ctx context.Context, id uint, status string, actor middleware.Actor, ip string) (*Event, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// completed is terminal
	if event.Status == StatusCompleted && status == StatusActive {
		return nil, ErrInvalidTransition
	}

	event.Status = status
	event.UpdatedBy = actor.UserID

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &event.ID, "EVENT_STATUS_CHANGED", map[string]interface{}{
		"event_id": event.ID,
		"status":   status,
	}, ip, "success")

	if status == StatusCompleted {
		utils.PublishActivity(ctx, fmt.Sprintf("event-%d", event.ID), map[string]interface{}{
			"type":     "event_completed",
			"event_id": event.ID,
			"name":     event.Name,
			"by":       actor.UserID,
		})
	}

	return event, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uint, actor middleware.Actor, ip string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.auditSvc.LogAction(ctx, &actor.UserID, &id, "EVENT_DELETED", map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &id, "EVENT_DELETED", map[string]interface{}{
		"event_id": id,
	}, ip, "success")

	return nil
}

func (s *service) GetEventImages(ctx context.Context, eventID uint) ([]EventImage, error) {
	return s.repo.GetImages(ctx, eventID)
}

func (s *service) GetEventAgendas(ctx context.Context, eventID uint) ([]EventAgenda, error) {
	return s.repo.GetAgendas(ctx, eventID)
}

func parseDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func validStatus(status string) bool {
	switch status {
	case StatusActive, StatusCompleted, StatusInactive:
		return true
	}
	return false
}
