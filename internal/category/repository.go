package category

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, category *EventCategory) error
	GetByID(ctx context.Context, id uint) (*EventCategory, error)
	List(ctx context.Context) ([]EventCategory, error)
	Search(ctx context.Context, name string) ([]EventCategory, error)
	Update(ctx context.Context, category *EventCategory) error
	Delete(ctx context.Context, id uint) error
	CountEvents(ctx context.Context, categoryID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, category *EventCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*EventCategory, error) {
	var category EventCategory
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) List(ctx context.Context) ([]EventCategory, error) {
	var categories []EventCategory
	err := r.db.WithContext(ctx).
		Order("priority ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *repository) Search(ctx context.Context, name string) ([]EventCategory, error) {
	var categories []EventCategory
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+name+"%").
		Order("priority ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *repository) Update(ctx context.Context, category *EventCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&EventCategory{}, id).Error
}

// CountEvents reports how many events reference the category, used to
// refuse deleting a referenced category
func (r *repository) CountEvents(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("events").
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
