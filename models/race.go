package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race lifecycle statuses.
const (
	RaceUpcoming = "upcoming"
	RaceFinished = "finished"
)

// Race is a scheduled event. Date and StartTime are civil values in the
// race's own timezone; parsing them is the gate's concern.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Name         string    `bun:"name,notnull,unique:races_no_dupes" json:"name"`
	Date         string    `bun:"date,notnull,unique:races_no_dupes" json:"date"`
	StartTime    string    `bun:"start_time,notnull" json:"startTime"`
	Timezone     string    `bun:"timezone,notnull" json:"timezone"`
	Status       string    `bun:"status,notnull,default:'upcoming'" json:"status"`
	ReminderSent bool      `bun:"reminder_sent,notnull,default:false" json:"reminderSent"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Result      *Result       `bun:"rel:has-one,join:id=race_id" json:"result,omitempty"`
	Predictions []*Prediction `bun:"rel:has-many,join:id=race_id" json:"-"`
}
