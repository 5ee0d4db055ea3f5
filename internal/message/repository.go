package message

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadyResponded lives here because only the locked read can decide it
var ErrAlreadyResponded = errors.New("message has already been responded to")

type Repository interface {
	Create(ctx context.Context, msg *AdminMessage) error
	GetByID(ctx context.Context, id uint) (*AdminMessage, error)
	List(ctx context.Context, status string) ([]AdminMessage, error)
	ListBySender(ctx context.Context, senderID uint) ([]AdminMessage, error)
	Respond(ctx context.Context, id uint, response string, staffID uint) (*AdminMessage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, msg *AdminMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*AdminMessage, error) {
	var m AdminMessage
	err := r.db.WithContext(ctx).Preload("Sender").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context, status string) ([]AdminMessage, error) {
	var msgs []AdminMessage
	query := r.db.WithContext(ctx).Preload("Sender")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&msgs).Error
	return msgs, err
}

func (r *repository) ListBySender(ctx context.Context, senderID uint) ([]AdminMessage, error) {
	var msgs []AdminMessage
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, err
}

// Respond records the staff answer under a row lock so two concurrent
// responses cannot both land. The second one sees status=responded and fails.
func (r *repository) Respond(ctx context.Context, id uint, response string, staffID uint) (*AdminMessage, error) {
	var msg AdminMessage

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&msg, id).Error; err != nil {
			return err
		}

		if msg.Status == StatusResponded {
			return ErrAlreadyResponded
		}

		now := time.Now()
		msg.Status = StatusResponded
		msg.IsRead = true
		msg.Response = response
		msg.RespondedBy = &staffID
		msg.RespondedAt = &now

		return tx.Save(&msg).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
