package wishlist

import (
	"time"

	"github.com/sandeshj07/event-management-backend/internal/event"
)

// WishListItem marks an event a user wants to keep an eye on.
// Wishlists never count toward event capacity.
type WishListItem struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   uint        `gorm:"not null;index;uniqueIndex:idx_wish_event_user" json:"event_id"`
	Event     event.Event `gorm:"foreignKey:EventID;references:ID" json:"event"`
	UserID    uint        `gorm:"not null;index;uniqueIndex:idx_wish_event_user" json:"user_id"`
	Status    string      `gorm:"size:20;default:active" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (WishListItem) TableName() string {
	return "event_user_wish_lists"
}
