package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Player is a game participant reached through the chat collaborator.
// TelegramID is the immutable external identity; the display fields are
// refreshed on every contact and never used as join keys.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	TelegramID     int64     `bun:"telegram_id,notnull,unique" json:"telegramID"`
	Username       *string   `bun:"username" json:"username,omitempty"`
	FullName       *string   `bun:"full_name" json:"fullName,omitempty"`
	IsAdmin        bool      `bun:"is_admin,notnull,default:false" json:"isAdmin"`
	IsAllowed      bool      `bun:"is_allowed,notnull,default:false" json:"isAllowed"`
	WantsReminders bool      `bun:"wants_reminders,notnull,default:true" json:"wantsReminders"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Predictions []*Prediction `bun:"rel:has-many,join:id=player_id" json:"-"`
}

// DisplayName resolves the name shown in summaries and standings.
func (p *Player) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if p.Username != nil && *p.Username != "" {
		return *p.Username
	}
	return fmt.Sprintf("Player %d", p.TelegramID)
}
