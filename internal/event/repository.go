package event

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event, image *EventImage, agenda *EventAgenda) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	GetActiveByID(ctx context.Context, id uint) (*Event, error)
	ListAll(ctx context.Context, search string) ([]Event, error)
	ListActive(ctx context.Context, search string, limit, offset int) ([]Event, int64, error)
	ListByStatus(ctx context.Context, status string) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uint) error

	GetImages(ctx context.Context, eventID uint) ([]EventImage, error)
	GetAgendas(ctx context.Context, eventID uint) ([]EventAgenda, error)

	RegistrationCount(ctx context.Context, eventID uint) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create writes the event plus its optional image and agenda in one
// transaction so a failed upload never leaves a half-created event
func (r *repository) Create(ctx context.Context, event *Event, image *EventImage, agenda *EventAgenda) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if image != nil {
			image.EventID = event.ID
			if err := tx.Create(image).Error; err != nil {
				return err
			}
		}
		if agenda != nil {
			agenda.EventID = event.ID
			if err := tx.Create(agenda).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).Preload("Category").First(&e, id).Error
	if err != nil {
		return nil, err
	}

	count, err := r.RegistrationCount(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.RegistrationCount = count
	return &e, nil
}

// GetActiveByID backs the public detail page; inactive events 404
func (r *repository) GetActiveByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND status = ?", id, StatusActive).
		First(&e).Error
	if err != nil {
		return nil, err
	}

	count, err := r.RegistrationCount(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.RegistrationCount = count
	return &e, nil
}

func (r *repository) ListAll(ctx context.Context, search string) ([]Event, error) {
	var events []Event
	query := r.db.WithContext(ctx).Preload("Category")

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	err := query.Order("start_date DESC").Find(&events).Error
	if err != nil {
		return nil, err
	}

	r.fillCounts(ctx, events)
	return events, nil
}

// ListActive is the public catalog: active events only, newest first
func (r *repository) ListActive(ctx context.Context, search string, limit, offset int) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("status = ?", StatusActive)

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	r.fillCounts(ctx, events)
	return events, total, nil
}

func (r *repository) ListByStatus(ctx context.Context, status string) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("status = ?", status).
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	r.fillCounts(ctx, events)
	return events, nil
}

func (r *repository) Update(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete cascades to the rows the event owns
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&EventImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&EventAgenda{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_members WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_user_wish_lists WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_comments WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

func (r *repository) GetImages(ctx context.Context, eventID uint) ([]EventImage, error) {
	var images []EventImage
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&images).Error
	return images, err
}

func (r *repository) GetAgendas(ctx context.Context, eventID uint) ([]EventAgenda, error) {
	var agendas []EventAgenda
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&agendas).Error
	return agendas, err
}

// RegistrationCount counts every member row for the event, regardless of
// attend_status; occupancy is rows, not confirmed attendees
func (r *repository) RegistrationCount(ctx context.Context, eventID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("event_members").
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}

func (r *repository) fillCounts(ctx context.Context, events []Event) {
	for i := range events {
		count, err := r.RegistrationCount(ctx, events[i].ID)
		if err == nil {
			events[i].RegistrationCount = count
		}
	}
}
