package category

import (
	"time"
)

// EventCategory groups events in the public catalog. Priority is an
// ordering hint, lower numbers list first.
type EventCategory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      string    `gorm:"size:50;not null" json:"code"`
	ImagePath string    `gorm:"size:500" json:"image_path"`
	Priority  int       `gorm:"default:0" json:"priority"`
	Status    string    `gorm:"size:20;default:active" json:"status"` // active, inactive
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	UpdatedBy uint      `gorm:"not null" json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EventCategory) TableName() string {
	return "event_categories"
}

type CreateCategoryRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Code     string `form:"code" json:"code" binding:"required"`
	Priority int    `form:"priority" json:"priority"`
	Status   string `form:"status" json:"status"`
}

type UpdateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Priority int    `json:"priority"`
	Status   string `json:"status"`
}
