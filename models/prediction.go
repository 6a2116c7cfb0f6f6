package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Prediction is one player's podium guess for one race. At most one row per
// (player, race); upserts replace all three picks together.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:b"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	PlayerID  int64     `bun:"player_id,notnull,unique:predictions_no_dupes" json:"playerID"`
	RaceID    int64     `bun:"race_id,notnull,unique:predictions_no_dupes" json:"raceID"`
	First     string    `bun:"first,notnull" json:"first"`
	Second    string    `bun:"second,notnull" json:"second"`
	Third     string    `bun:"third,notnull" json:"third"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Player *Player `bun:"rel:belongs-to,join:player_id=id" json:"-"`
	Race   *Race   `bun:"rel:belongs-to,join:race_id=id" json:"-"`
}
