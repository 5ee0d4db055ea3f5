package comment

import (
	"time"

	"github.com/sandeshj07/event-management-backend/internal/auth"
)

// Comment statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// EventComment is one comment on an event. Threads are one level deep:
// a reply's ParentID points at a top-level comment on the same event.
// Comments are never removed from storage; deletion deactivates them.
type EventComment struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    uint           `gorm:"not null;index" json:"event_id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       auth.User      `gorm:"foreignKey:UserID;references:ID" json:"user"`
	ParentID   *uint          `gorm:"index" json:"parent_id"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Status     string         `gorm:"size:20;default:active;index" json:"status"`
	IsApproved bool           `gorm:"default:true" json:"is_approved"`
	Replies    []EventComment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (EventComment) TableName() string {
	return "event_comments"
}

type CreateCommentRequest struct {
	Body     string `json:"body" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}
