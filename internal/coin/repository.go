package coin

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, award *UserCoin) error
	ListByUser(ctx context.Context, userID uint) ([]UserCoin, error)
	ListAll(ctx context.Context) ([]UserCoin, error)
	BalanceForUser(ctx context.Context, userID uint) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, award *UserCoin) error {
	return r.db.WithContext(ctx).Create(award).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]UserCoin, error) {
	var awards []UserCoin
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&awards).Error
	return awards, err
}

func (r *repository) ListAll(ctx context.Context) ([]UserCoin, error) {
	var awards []UserCoin
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Order("created_at DESC").
		Find(&awards).Error
	return awards, err
}

func (r *repository) BalanceForUser(ctx context.Context, userID uint) (int, error) {
	var balance int64
	err := r.db.WithContext(ctx).
		Model(&UserCoin{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(gain_coin), 0)").
		Scan(&balance).Error
	return int(balance), err
}
