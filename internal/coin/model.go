package coin

import (
	"time"

	"github.com/sandeshj07/event-management-backend/internal/auth"
	"github.com/sandeshj07/event-management-backend/internal/event"
)

// Gain types for a ledger entry
const (
	GainCredit = "credit"
	GainDebit  = "debit"
)

// UserCoin is one entry in the append-only coin ledger. GainCoin is
// signed: positive entries credit the user, negative entries debit.
// Balances are computed by summing rows, never by mutating them.
type UserCoin struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint         `gorm:"not null;index" json:"user_id"`
	User      auth.User    `gorm:"foreignKey:UserID;references:ID" json:"user"`
	EventID   *uint        `gorm:"index" json:"event_id"`
	Event     *event.Event `gorm:"foreignKey:EventID;references:ID" json:"event,omitempty"`
	GainType  string       `gorm:"size:20" json:"gain_type"`
	GainCoin  int          `gorm:"not null" json:"gain_coin"`
	Reason    string       `gorm:"size:255" json:"reason"`
	Status    string       `gorm:"size:20;default:active" json:"status"`
	AwardedBy uint         `gorm:"not null" json:"awarded_by"`
	CreatedAt time.Time    `json:"created_at"`
}

func (UserCoin) TableName() string {
	return "user_coins"
}

type AwardCoinsRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	EventID  *uint  `json:"event_id"`
	GainCoin int    `json:"gain_coin" binding:"required"`
	GainType string `json:"gain_type" binding:"omitempty,oneof=credit debit"`
	Reason   string `json:"reason"`
}
