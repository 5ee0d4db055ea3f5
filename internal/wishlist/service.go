package wishlist

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/event"
	"github.com/sandeshj07/event-management-backend/middleware"
)

var (
	ErrAlreadyWishlisted = errors.New("event is already on your wishlist")
	ErrPermissionDenied  = errors.New("you do not have permission to modify this wishlist item")
)

type Service interface {
	Add(ctx context.Context, eventID uint, actor middleware.Actor, ip string) (*WishListItem, error)
	Remove(ctx context.Context, itemID uint, actor middleware.Actor, ip string) error
	MyWishlist(ctx context.Context, actor middleware.Actor) ([]WishListItem, error)
	ListAll(ctx context.Context) ([]WishListItem, error)
}

type service struct {
	repo     Repository
	events   event.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, events event.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, events: events, auditSvc: auditSvc}
}

func (s *service) Add(ctx context.Context, eventID uint, actor middleware.Actor, ip string) (*WishListItem, error) {
	// only active events can be wishlisted
	if _, err := s.events.GetActiveByID(ctx, eventID); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEventAndUser(ctx, eventID, actor.UserID); err == nil {
		return nil, ErrAlreadyWishlisted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &WishListItem{EventID: eventID, UserID: actor.UserID, Status: "active"}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &eventID, "WISHLIST_ADDED", map[string]interface{}{
		"event_id": eventID,
	}, ip, "success")

	return item, nil
}

// Remove deletes a wishlist entry. Members may only remove their own;
// staff may remove anyone's.
func (s *service) Remove(ctx context.Context, itemID uint, actor middleware.Actor, ip string) error {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	if !middleware.Resolve(actor, item.UserID).Permits() {
		s.auditSvc.LogAction(ctx, &actor.UserID, &item.EventID, "WISHLIST_REMOVED", map[string]interface{}{
			"item_id":  itemID,
			"owner_id": item.UserID,
		}, ip, "denied")
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &actor.UserID, &item.EventID, "WISHLIST_REMOVED", map[string]interface{}{
		"item_id":  itemID,
		"event_id": item.EventID,
	}, ip, "success")

	return nil
}

func (s *service) MyWishlist(ctx context.Context, actor middleware.Actor) ([]WishListItem, error) {
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *service) ListAll(ctx context.Context) ([]WishListItem, error) {
	return s.repo.ListAll(ctx)
}
