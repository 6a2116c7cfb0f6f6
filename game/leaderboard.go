package game

import (
	"context"
	"fmt"

	"podiumapi/models"
)

// Standing is one leaderboard row. Ranks are dense, 1-based and sequential;
// equal totals keep their own rank in deterministic (player id) order.
type Standing struct {
	Rank        int    `json:"rank"`
	PlayerID    int64  `bun:"id" json:"playerID"`
	TelegramID  int64  `bun:"telegram_id" json:"telegramID"`
	Name        string `json:"name"`
	TotalPoints int    `bun:"total_points" json:"totalPoints"`
}

// RacePoints is a player's ledger entry joined with its race, for the
// per-race score history view.
type RacePoints struct {
	RaceID   int64  `bun:"race_id" json:"raceID"`
	RaceName string `bun:"name" json:"raceName"`
	RaceDate string `bun:"date" json:"raceDate"`
	Points   int    `bun:"points" json:"points"`
}

// TotalPoints sums a player's ledger. A player with no entries has 0,
// never an absent value.
func (s *Service) TotalPoints(ctx context.Context, playerID int64) (int, error) {
	var total int
	err := s.db.NewSelect().
		Model((*models.PointsEntry)(nil)).
		ColumnExpr("COALESCE(SUM(pt.points), 0)").
		Where("pt.player_id = ?", playerID).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("summing points: %w", err)
	}
	return total, nil
}

// leaderboardRow is the flat scan target for the standings query.
type leaderboardRow struct {
	ID          int64   `bun:"id"`
	TelegramID  int64   `bun:"telegram_id"`
	Username    *string `bun:"username"`
	FullName    *string `bun:"full_name"`
	TotalPoints int     `bun:"total_points"`
}

// Leaderboard groups the full ledger by player, sums, and ranks descending
// by total. Every known player appears, zero-scorers included. Ties break
// by player id so a given ledger snapshot always ranks the same way.
// A limit above zero truncates after sorting.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]Standing, error) {
	var rows []leaderboardRow
	q := s.db.NewSelect().
		TableExpr("players AS p").
		ColumnExpr("p.id, p.telegram_id, p.username, p.full_name").
		ColumnExpr("COALESCE(SUM(pt.points), 0) AS total_points").
		Join("LEFT JOIN points AS pt ON pt.player_id = p.id").
		GroupExpr("p.id, p.telegram_id, p.username, p.full_name").
		OrderExpr("total_points DESC, p.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("building leaderboard: %w", err)
	}

	standings := make([]Standing, len(rows))
	for i, row := range rows {
		player := models.Player{
			TelegramID: row.TelegramID,
			Username:   row.Username,
			FullName:   row.FullName,
		}
		standings[i] = Standing{
			Rank:        i + 1,
			PlayerID:    row.ID,
			TelegramID:  row.TelegramID,
			Name:        player.DisplayName(),
			TotalPoints: row.TotalPoints,
		}
	}
	return standings, nil
}

// PointsPerRace returns a player's settled races, newest race date first.
func (s *Service) PointsPerRace(ctx context.Context, playerID int64) ([]RacePoints, error) {
	var rows []RacePoints
	err := s.db.NewSelect().
		Model((*models.PointsEntry)(nil)).
		ColumnExpr("pt.race_id, rc.name, rc.date, pt.points").
		Join("INNER JOIN races AS rc ON rc.id = pt.race_id").
		Where("pt.player_id = ?", playerID).
		OrderExpr("rc.date DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("loading per-race points: %w", err)
	}
	return rows, nil
}

// PredictionCount counts every prediction a player has ever placed,
// settled or not.
func (s *Service) PredictionCount(ctx context.Context, playerID int64) (int, error) {
	count, err := s.db.NewSelect().
		Model((*models.Prediction)(nil)).
		Where("b.player_id = ?", playerID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting predictions: %w", err)
	}
	return count, nil
}
