package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"podiumapi/models"
)

// UpsertPrediction creates or replaces the prediction for (player, race).
// All three picks are replaced together; the store does not consult the
// betting window – that is the calling collaborator's job (see Gate).
func (s *Service) UpsertPrediction(ctx context.Context, playerID, raceID int64, first, second, third string) (*models.Prediction, error) {
	now := time.Now()
	pred := &models.Prediction{
		PlayerID:  playerID,
		RaceID:    raceID,
		First:     first,
		Second:    second,
		Third:     third,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.NewInsert().Model(pred).
		On("CONFLICT (player_id, race_id) DO UPDATE").
		Set("first = EXCLUDED.first").
		Set("second = EXCLUDED.second").
		Set("third = EXCLUDED.third").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("upserting prediction: %w", err)
	}
	return pred, nil
}

// GetPrediction returns the prediction for (player, race), or nil if none exists.
func (s *Service) GetPrediction(ctx context.Context, playerID, raceID int64) (*models.Prediction, error) {
	pred := new(models.Prediction)
	err := s.db.NewSelect().Model(pred).
		Where("b.player_id = ?", playerID).
		Where("b.race_id = ?", raceID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading prediction: %w", err)
	}
	return pred, nil
}

// ListPredictions returns all of a player's predictions, most recent first.
func (s *Service) ListPredictions(ctx context.Context, playerID int64) ([]models.Prediction, error) {
	var preds []models.Prediction
	err := s.db.NewSelect().Model(&preds).
		Where("b.player_id = ?", playerID).
		Order("b.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing predictions: %w", err)
	}
	return preds, nil
}

// DeletePrediction removes the prediction for (player, race). It reports
// whether a row was actually deleted.
func (s *Service) DeletePrediction(ctx context.Context, playerID, raceID int64) (bool, error) {
	res, err := s.db.NewDelete().Model((*models.Prediction)(nil)).
		Where("player_id = ?", playerID).
		Where("race_id = ?", raceID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("deleting prediction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
