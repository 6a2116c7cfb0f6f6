package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"podiumapi/models"
)

// GetOrCreatePlayer registers a player on first contact and refreshes the
// display fields on every later one. Admin status follows the configured id
// list each time, so a config change takes effect on the next contact;
// admins are always allowed, everyone else waits for the whitelist.
func (s *Service) GetOrCreatePlayer(ctx context.Context, telegramID int64, username, fullName string) (*models.Player, error) {
	player := new(models.Player)
	err := s.db.NewSelect().Model(player).
		Where("p.telegram_id = ?", telegramID).
		Scan(ctx)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		isAdmin := s.admins[telegramID]
		player = &models.Player{
			TelegramID:     telegramID,
			Username:       optional(username),
			FullName:       optional(fullName),
			IsAdmin:        isAdmin,
			IsAllowed:      isAdmin,
			WantsReminders: true,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		if _, err := s.db.NewInsert().Model(player).Exec(ctx); err != nil {
			return nil, fmt.Errorf("creating player: %w", err)
		}
		return player, nil

	case err != nil:
		return nil, fmt.Errorf("loading player: %w", err)
	}

	if username != "" {
		player.Username = optional(username)
	}
	if fullName != "" {
		player.FullName = optional(fullName)
	}
	player.IsAdmin = s.admins[telegramID]
	player.UpdatedAt = time.Now()

	_, err = s.db.NewUpdate().Model(player).
		Column("username", "full_name", "is_admin", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating player: %w", err)
	}
	return player, nil
}

// PlayerByTelegramID returns the player with the given chat account id,
// or nil if unknown.
func (s *Service) PlayerByTelegramID(ctx context.Context, telegramID int64) (*models.Player, error) {
	player := new(models.Player)
	err := s.db.NewSelect().Model(player).
		Where("p.telegram_id = ?", telegramID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	return player, nil
}

// PlayerByUsername looks a player up by chat username, with or without a
// leading @.
func (s *Service) PlayerByUsername(ctx context.Context, username string) (*models.Player, error) {
	player := new(models.Player)
	err := s.db.NewSelect().Model(player).
		Where("p.username = ?", strings.TrimPrefix(username, "@")).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	return player, nil
}

// ListPlayers returns every registered player, newest first.
func (s *Service) ListPlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	err := s.db.NewSelect().Model(&players).
		Order("p.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return players, nil
}

// SetPlayerAllowed flips the whitelist flag. It reports whether the player
// exists.
func (s *Service) SetPlayerAllowed(ctx context.Context, telegramID int64, allowed bool) (bool, error) {
	res, err := s.db.NewUpdate().Model((*models.Player)(nil)).
		Set("is_allowed = ?", allowed).
		Set("updated_at = ?", time.Now()).
		Where("telegram_id = ?", telegramID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("updating whitelist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// optional maps an empty string to an absent column value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
