package event

import (
	"time"

	"github.com/sandeshj07/event-management-backend/internal/category"
)

// Event statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusInactive  = "inactive"
)

// Event is a catalog entry with a hard registration capacity
type Event struct {
	ID              uint                   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      uint                   `gorm:"not null;index" json:"category_id"`
	Category        category.EventCategory `gorm:"foreignKey:CategoryID;references:ID" json:"category"`
	Name            string                 `gorm:"size:255;not null" json:"name"`
	Description     string                 `gorm:"type:text" json:"description"`
	ScheduledStatus string                 `gorm:"size:50" json:"scheduled_status"`
	Venue           string                 `gorm:"size:255" json:"venue"`
	StartDate       time.Time              `gorm:"not null;index" json:"start_date"`
	EndDate         time.Time              `gorm:"not null" json:"end_date"`
	Location        string                 `gorm:"type:text" json:"location"`
	Points          int                    `gorm:"default:0" json:"points"`
	MaximumAttende  int                    `gorm:"not null;default:0" json:"maximum_attende"`
	Status          string                 `gorm:"size:20;default:active;index" json:"status"`
	CreatedBy       uint                   `gorm:"not null" json:"created_by"`
	UpdatedBy       uint                   `gorm:"not null" json:"updated_by"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`

	RegistrationCount int `gorm:"-" json:"registration_count"`
}

func (Event) TableName() string {
	return "events"
}

// IsFull reports whether RegistrationCount has reached capacity.
// RegistrationCount must be populated first.
func (e *Event) IsFull() bool {
	return e.RegistrationCount >= e.MaximumAttende
}

// EventImage is created alongside the event in the multi-part create flow
type EventImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	ImagePath string    `gorm:"size:500;not null" json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EventImage) TableName() string {
	return "event_images"
}

// EventAgenda holds the schedule text for one session of the event
type EventAgenda struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	SessionName string    `gorm:"size:255" json:"session_name"`
	SpeakerName string    `gorm:"size:255" json:"speaker_name"`
	StartTime   string    `gorm:"size:10" json:"start_time"` // HH:MM
	EndTime     string    `gorm:"size:10" json:"end_time"`   // HH:MM
	VenueName   string    `gorm:"size:255" json:"venue_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (EventAgenda) TableName() string {
	return "event_agendas"
}

// CreateEventRequest carries the event fields of the multi-part create form
type CreateEventRequest struct {
	CategoryID      uint   `form:"category_id" json:"category_id" binding:"required"`
	Name            string `form:"name" json:"name" binding:"required"`
	Description     string `form:"description" json:"description"`
	ScheduledStatus string `form:"scheduled_status" json:"scheduled_status"`
	Venue           string `form:"venue" json:"venue"`
	StartDate       string `form:"start_date" json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate         string `form:"end_date" json:"end_date" binding:"required"`     // YYYY-MM-DD
	Location        string `form:"location" json:"location"`
	Points          int    `form:"points" json:"points"`
	MaximumAttende  int    `form:"maximum_attende" json:"maximum_attende" binding:"required,min=0"`
	Status          string `form:"status" json:"status"`

	// Optional agenda created alongside the event
	AgendaSession string `form:"agenda_session" json:"agenda_session"`
	AgendaSpeaker string `form:"agenda_speaker" json:"agenda_speaker"`
	AgendaStart   string `form:"agenda_start" json:"agenda_start"`
	AgendaEnd     string `form:"agenda_end" json:"agenda_end"`
	AgendaVenue   string `form:"agenda_venue" json:"agenda_venue"`
}

type UpdateEventRequest struct {
	CategoryID      uint   `json:"category_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	ScheduledStatus string `json:"scheduled_status"`
	Venue           string `json:"venue"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	Location        string `json:"location"`
	Points          int    `json:"points"`
	MaximumAttende  int    `json:"maximum_attende" binding:"required,min=0"`
	Status          string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
