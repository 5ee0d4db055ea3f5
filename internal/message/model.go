package message

import (
	"time"

	"github.com/sandeshj07/event-management-backend/internal/auth"
)

// Message statuses
const (
	StatusPending   = "pending"
	StatusResponded = "responded"
)

// AdminMessage is a message sent to the administrators. SenderID is nil
// for the anonymous contact form; SenderEmail is always set so a staff
// response can reach the sender.
type AdminMessage struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    *uint      `gorm:"index" json:"sender_id"`
	Sender      *auth.User `gorm:"foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	SenderName  string     `gorm:"size:255" json:"sender_name"`
	SenderEmail string     `gorm:"size:255;not null" json:"sender_email"`
	Subject     string     `gorm:"size:255;not null" json:"subject"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	IPAddress   string     `gorm:"size:45" json:"ip_address"`
	UserAgent   string     `gorm:"size:500" json:"user_agent"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"`
	IsRead      bool       `gorm:"default:false" json:"is_read"`
	Response    string     `gorm:"type:text" json:"response"`
	RespondedBy *uint      `json:"responded_by"`
	RespondedAt *time.Time `json:"responded_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (AdminMessage) TableName() string {
	return "admin_messages"
}

type SendMessageRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// ContactRequest is the anonymous contact form payload
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type RespondRequest struct {
	Response string `json:"response" binding:"required"`
}
