package models

import "github.com/uptrace/bun"

// Operator is an API account (the bot process or admin tooling) with a
// bcrypt-hashed password.
type Operator struct {
	bun.BaseModel `bun:"table:operators,alias:o"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Username string `bun:"username,notnull,unique" json:"username"`
	Password string `bun:"password,notnull" json:"-"`
}
