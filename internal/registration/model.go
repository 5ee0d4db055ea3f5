package registration

import (
	"time"

	"github.com/sandeshj07/event-management-backend/internal/auth"
	"github.com/sandeshj07/event-management-backend/internal/event"
)

// Attendance statuses for a registration
const (
	AttendWaiting   = "waiting"
	AttendAttending = "attending"
	AttendAbsent    = "absent"
	AttendCompleted = "completed"
)

// EventMember is one user's registration for one event. Every row counts
// toward the event's capacity, whatever its attend status.
type EventMember struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID      uint        `gorm:"not null;index;uniqueIndex:idx_event_user" json:"event_id"`
	Event        event.Event `gorm:"foreignKey:EventID;references:ID" json:"event"`
	UserID       uint        `gorm:"not null;index;uniqueIndex:idx_event_user" json:"user_id"`
	User         auth.User   `gorm:"foreignKey:UserID;references:ID" json:"user"`
	AttendStatus string      `gorm:"size:20;default:waiting" json:"attend_status"`
	Status       string      `gorm:"size:20;default:active" json:"status"`
	CreatedBy    uint        `json:"created_by"`
	UpdatedBy    uint        `json:"updated_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (EventMember) TableName() string {
	return "event_members"
}

// Join outcomes
const (
	OutcomeRegistered        = "registered"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeCapacityExceeded  = "capacity_exceeded"
)

// JoinResult reports what the join attempt did together with the
// occupancy observed inside the same transaction.
type JoinResult struct {
	Outcome  string `json:"outcome"`
	Count    int    `json:"count"`
	Capacity int    `json:"capacity"`
}

type UpdateAttendanceRequest struct {
	AttendStatus string `json:"attend_status" binding:"required"`
}
