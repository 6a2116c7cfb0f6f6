package models

import "github.com/uptrace/bun"

// PointsEntry is the per-player-per-race ledger row. Written only by
// settlement; re-settlement overwrites the value rather than appending.
type PointsEntry struct {
	bun.BaseModel `bun:"table:points,alias:pt"`

	ID       int64 `bun:"id,pk,autoincrement" json:"id"`
	PlayerID int64 `bun:"player_id,notnull,unique:points_no_dupes" json:"playerID"`
	RaceID   int64 `bun:"race_id,notnull,unique:points_no_dupes" json:"raceID"`
	Points   int   `bun:"points,notnull,default:0" json:"points"`

	Player *Player `bun:"rel:belongs-to,join:player_id=id" json:"-"`
	Race   *Race   `bun:"rel:belongs-to,join:race_id=id" json:"-"`
}
