package registration

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sandeshj07/event-management-backend/internal/event"
)

type Repository interface {
	Join(ctx context.Context, eventID, userID uint) (*JoinResult, error)
	GetByID(ctx context.Context, id uint) (*EventMember, error)
	GetByEventAndUser(ctx context.Context, eventID, userID uint) (*EventMember, error)
	ListByEvent(ctx context.Context, eventID uint) ([]EventMember, error)
	ListByEventAndStatus(ctx context.Context, eventID uint, status string) ([]EventMember, error)
	ListByUser(ctx context.Context, userID uint) ([]EventMember, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	CountByEvent(ctx context.Context, eventID uint) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Join inserts the registration under a row lock on the event, so the
// duplicate check, the capacity check and the insert see one consistent
// occupancy. Two concurrent joins for the last seat serialize on the lock
// and exactly one of them gets the seat.
func (r *repository) Join(ctx context.Context, eventID, userID uint) (*JoinResult, error) {
	var result *JoinResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev event.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", eventID, event.StatusActive).
			First(&ev).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&EventMember{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&existing).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&EventMember{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}

		if existing > 0 {
			result = &JoinResult{Outcome: OutcomeAlreadyRegistered, Count: int(count), Capacity: ev.MaximumAttende}
			return nil
		}

		if int(count) >= ev.MaximumAttende {
			result = &JoinResult{Outcome: OutcomeCapacityExceeded, Count: int(count), Capacity: ev.MaximumAttende}
			return nil
		}

		member := &EventMember{
			EventID:      eventID,
			UserID:       userID,
			AttendStatus: AttendWaiting,
			Status:       "active",
			CreatedBy:    userID,
			UpdatedBy:    userID,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		result = &JoinResult{Outcome: OutcomeRegistered, Count: int(count) + 1, Capacity: ev.MaximumAttende}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*EventMember, error) {
	var m EventMember
	err := r.db.WithContext(ctx).Preload("Event").Preload("User").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) GetByEventAndUser(ctx context.Context, eventID, userID uint) (*EventMember, error) {
	var m EventMember
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]EventMember, error) {
	var members []EventMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) ListByEventAndStatus(ctx context.Context, eventID uint, status string) ([]EventMember, error) {
	var members []EventMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ? AND attend_status = ?", eventID, status).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]EventMember, error) {
	var members []EventMember
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&members).Error
	return members, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&EventMember{}).
		Where("id = ?", id).
		Update("attend_status", status).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&EventMember{}, id).Error
}

func (r *repository) CountByEvent(ctx context.Context, eventID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EventMember{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}
