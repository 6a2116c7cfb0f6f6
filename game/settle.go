package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"podiumapi/models"
)

// RaceScore is one settled prediction: who scored how much for a race.
type RaceScore struct {
	PlayerID   int64  `json:"playerID"`
	TelegramID int64  `json:"telegramID"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
}

// Score computes a prediction's points against the official result.
// Each slot is evaluated independently: +3 for the exact finisher, +1 if
// the pick finished anywhere on the podium, 0 otherwise. A repeated pick
// token earns podium credit in every slot it appears in; that redundancy is
// the established scoring policy and must not be "fixed".
func Score(pred *models.Prediction, res *models.Result) int {
	return slotScore(pred.First, res.First, res) +
		slotScore(pred.Second, res.Second, res) +
		slotScore(pred.Third, res.Third, res)
}

func slotScore(pick, actual string, res *models.Result) int {
	switch {
	case pick == actual:
		return 3
	case pick == res.First || pick == res.Second || pick == res.Third:
		return 1
	default:
		return 0
	}
}

// Settle scores every prediction for a race against its result and writes
// the per-player point ledger rows. The result must already exist
// (ErrNoResult otherwise). All ledger writes run in one transaction, so a
// failure leaves the race unsettled rather than half-scored; re-running is
// idempotent because the ledger upsert overwrites in place.
//
// Race status is untouched here: the administrative caller flips it to
// finished after a successful settle.
func (s *Service) Settle(ctx context.Context, raceID int64) ([]RaceScore, error) {
	res := new(models.Result)
	err := s.db.NewSelect().Model(res).
		Where("r.race_id = ?", raceID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoResult
	}
	if err != nil {
		return nil, fmt.Errorf("loading result: %w", err)
	}

	var scores []RaceScore
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var preds []models.Prediction
		err := tx.NewSelect().Model(&preds).
			Relation("Player").
			Where("b.race_id = ?", raceID).
			Order("b.id ASC").
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("loading predictions: %w", err)
		}

		for i := range preds {
			pred := &preds[i]
			pts := Score(pred, res)

			entry := &models.PointsEntry{
				PlayerID: pred.PlayerID,
				RaceID:   raceID,
				Points:   pts,
			}
			_, err := tx.NewInsert().Model(entry).
				On("CONFLICT (player_id, race_id) DO UPDATE").
				Set("points = EXCLUDED.points").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("writing ledger entry for player %d: %w", pred.PlayerID, err)
			}

			score := RaceScore{PlayerID: pred.PlayerID, Points: pts}
			if pred.Player != nil {
				score.TelegramID = pred.Player.TelegramID
				score.Name = pred.Player.DisplayName()
			} else {
				score.Name = fmt.Sprintf("Player %d", pred.PlayerID)
			}
			scores = append(scores, score)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}
