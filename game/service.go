// Package game implements the scoring core: the betting-window time gate,
// the prediction and result stores, the settlement engine and the
// leaderboard aggregation. Every operation is a plain synchronous call over
// the shared database; concurrency and dispatch belong to the caller.
package game

import (
	"errors"

	"github.com/uptrace/bun"
)

// ErrNoResult is returned by Settle when no official result has been
// entered for the race yet.
var ErrNoResult = errors.New("game: race has no result")

// Options carries the configuration the core needs. It is filled from the
// process config at startup and never read ambiently.
type Options struct {
	// AdminIDs are chat account ids granted admin status on sync.
	AdminIDs []int64
	// DefaultTimezone is applied to races created without one.
	DefaultTimezone string
}

// Service exposes the core operations over a shared bun database.
type Service struct {
	db     *bun.DB
	admins map[int64]bool
	// defaultTZ is the IANA zone applied when a race is created without one.
	defaultTZ string
}

// New creates a Service. The zero Options value is valid for tests.
func New(db *bun.DB, opts Options) *Service {
	admins := make(map[int64]bool, len(opts.AdminIDs))
	for _, id := range opts.AdminIDs {
		admins[id] = true
	}
	tz := opts.DefaultTimezone
	if tz == "" {
		tz = "UTC"
	}
	return &Service{db: db, admins: admins, defaultTZ: tz}
}

// DB exposes the underlying handle for callers that need raw access
// (startup table creation, command tools).
func (s *Service) DB() *bun.DB { return s.db }
