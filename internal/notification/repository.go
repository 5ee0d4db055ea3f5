package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateInApp(ctx context.Context, notifications []InAppNotification) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	GetByID(ctx context.Context, id uint) (*InAppNotification, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)

	CreateLog(ctx context.Context, entry *NotificationLog) error
	UpdateLogStatus(ctx context.Context, id uint, status string, errMsg *string) error
	ListLogs(ctx context.Context, limit int) ([]NotificationLog, error)

	UpsertDeviceToken(ctx context.Context, token *FCMDeviceToken) error
	DeactivateDeviceToken(ctx context.Context, userID uint, deviceToken string) error
	ActiveTokensForUsers(ctx context.Context, userIDs []uint) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateInApp(ctx context.Context, notifications []InAppNotification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notifications).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	var items []InAppNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*InAppNotification, error) {
	var n InAppNotification
	err := r.db.WithContext(ctx).First(&n, id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *repository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *repository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateLog(ctx context.Context, entry *NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) UpdateLogStatus(ctx context.Context, id uint, status string, errMsg *string) error {
	return r.db.WithContext(ctx).
		Model(&NotificationLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "error": errMsg}).Error
}

func (r *repository) ListLogs(ctx context.Context, limit int) ([]NotificationLog, error) {
	var logs []NotificationLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// UpsertDeviceToken reactivates a known token or inserts a new one
func (r *repository) UpsertDeviceToken(ctx context.Context, token *FCMDeviceToken) error {
	var existing FCMDeviceToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND device_token = ?", token.UserID, token.DeviceToken).
		First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).
			Model(&existing).
			Updates(map[string]interface{}{
				"is_active":    true,
				"device_type":  token.DeviceType,
				"last_used_at": time.Now(),
			}).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	token.IsActive = true
	token.LastUsedAt = time.Now()
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *repository) DeactivateDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Update("is_active", false).Error
}

func (r *repository) ActiveTokensForUsers(ctx context.Context, userIDs []uint) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id IN ? AND is_active = true", userIDs).
		Pluck("device_token", &tokens).Error
	return tokens, err
}
