package handlers

import (
	"podiumapi/game"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	svc    *game.Service
	gate   *game.Gate
	JWTKey []byte
}

// New creates a Handler over the scoring core, the betting-window gate and
// the JWT signing key.
func New(svc *game.Service, gate *game.Gate, jwtKey []byte) *Handler {
	return &Handler{svc: svc, gate: gate, JWTKey: jwtKey}
}
