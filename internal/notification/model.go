package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Notification categories
const (
	CategoryEvent   = "event"
	CategoryMessage = "message"
	CategorySystem  = "system"
)

// InAppNotification is one entry in a user's bell menu
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"`
	EventID   *uint     `gorm:"index" json:"event_id,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InAppNotification) TableName() string {
	return "in_app_notifications"
}

// NotificationLog records each outbound delivery batch per channel
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Channel    string         `gorm:"size:20;not null" json:"channel"` // in_app, push, email
	Title      string         `gorm:"size:150" json:"title"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// FCMDeviceToken stores a user's device tokens for push delivery
type FCMDeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_user_token" json:"user_id"`
	DeviceToken string    `gorm:"size:255;not null;index:idx_user_token,unique" json:"device_token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"` // android, ios, web
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	LastUsedAt  time.Time `json:"last_used_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FCMDeviceToken) TableName() string {
	return "fcm_device_tokens"
}

type RegisterDeviceRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
	DeviceType  string `json:"device_type"`
}
