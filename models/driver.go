package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Driver is a catalog entry used by the chat collaborator's pick keyboards.
// The scoring core itself treats pick tokens as opaque.
type Driver struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Code      string    `bun:"code,notnull,unique" json:"code"`
	FullName  string    `bun:"full_name,notnull" json:"fullName"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"isActive"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
