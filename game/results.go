package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"podiumapi/models"
)

// UpsertResult records the official podium for a race, overwriting any
// earlier entry in place so a correction can be re-settled.
func (s *Service) UpsertResult(ctx context.Context, raceID int64, first, second, third string) (*models.Result, error) {
	res := &models.Result{
		RaceID:  raceID,
		First:   first,
		Second:  second,
		Third:   third,
		SavedAt: time.Now(),
	}

	_, err := s.db.NewInsert().Model(res).
		On("CONFLICT (race_id) DO UPDATE").
		Set("first = EXCLUDED.first").
		Set("second = EXCLUDED.second").
		Set("third = EXCLUDED.third").
		Set("saved_at = EXCLUDED.saved_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("upserting result: %w", err)
	}
	return res, nil
}

// GetResult returns the result for a race, or nil if none has been entered.
func (s *Service) GetResult(ctx context.Context, raceID int64) (*models.Result, error) {
	res := new(models.Result)
	err := s.db.NewSelect().Model(res).
		Where("r.race_id = ?", raceID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading result: %w", err)
	}
	return res, nil
}

// RacesWithoutResult is the administrator's working queue: every race with
// no result row yet, earliest first.
func (s *Service) RacesWithoutResult(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	err := s.db.NewSelect().Model(&races).
		Join("LEFT JOIN results AS r ON r.race_id = rc.id").
		Where("r.id IS NULL").
		OrderExpr("rc.date ASC, rc.start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unsettled races: %w", err)
	}
	return races, nil
}
