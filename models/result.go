package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Result is the official podium for one race. At most one row per race;
// entering it again overwrites in place (re-settlement path).
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID      int64     `bun:"id,pk,autoincrement" json:"id"`
	RaceID  int64     `bun:"race_id,notnull,unique" json:"raceID"`
	First   string    `bun:"first,notnull" json:"first"`
	Second  string    `bun:"second,notnull" json:"second"`
	Third   string    `bun:"third,notnull" json:"third"`
	SavedAt time.Time `bun:"saved_at,notnull,default:current_timestamp" json:"savedAt"`

	Race *Race `bun:"rel:belongs-to,join:race_id=id" json:"-"`
}
