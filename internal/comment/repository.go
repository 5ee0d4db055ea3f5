package comment

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, comment *EventComment) error
	GetByID(ctx context.Context, id uint) (*EventComment, error)
	ListByEvent(ctx context.Context, eventID uint) ([]EventComment, error)
	Deactivate(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, comment *EventComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*EventComment, error) {
	var c EventComment
	err := r.db.WithContext(ctx).Preload("User").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByEvent returns the active top-level comments with their active
// replies attached, oldest first at both levels
func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]EventComment, error) {
	var comments []EventComment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", StatusActive).Order("created_at ASC").Preload("User")
		}).
		Where("event_id = ? AND parent_id IS NULL AND status = ?", eventID, StatusActive).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Deactivate hides a comment and its direct replies. Rows stay in
// storage; listings filter on status.
func (r *repository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&EventComment{}).
			Where("parent_id = ?", id).
			Update("status", StatusInactive).Error; err != nil {
			return err
		}
		return tx.Model(&EventComment{}).
			Where("id = ?", id).
			Update("status", StatusInactive).Error
	})
}
