package wishlist

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, item *WishListItem) error
	GetByID(ctx context.Context, id uint) (*WishListItem, error)
	GetByEventAndUser(ctx context.Context, eventID, userID uint) (*WishListItem, error)
	ListByUser(ctx context.Context, userID uint) ([]WishListItem, error)
	ListAll(ctx context.Context) ([]WishListItem, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, item *WishListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*WishListItem, error) {
	var item WishListItem
	err := r.db.WithContext(ctx).Preload("Event").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetByEventAndUser(ctx context.Context, eventID, userID uint) (*WishListItem, error) {
	var item WishListItem
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]WishListItem, error) {
	var items []WishListItem
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *repository) ListAll(ctx context.Context) ([]WishListItem, error) {
	var items []WishListItem
	err := r.db.WithContext(ctx).
		Preload("Event").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&WishListItem{}, id).Error
}
