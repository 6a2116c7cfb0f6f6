package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"podiumapi/models"
)

// RaceUpdate carries a partial race edit; nil fields are left untouched.
// Status is accepted raw so an administrator can correct it by hand; the
// only status transition the system performs itself is upcoming→finished
// after settlement, in the results flow.
type RaceUpdate struct {
	Name      *string
	Date      *string
	StartTime *string
	Timezone  *string
	Status    *string
}

// CreateRace schedules a race. An empty timezone falls back to the
// configured default; date, time and zone must resolve to a real instant.
func (s *Service) CreateRace(ctx context.Context, name, date, startTime, tz string) (*models.Race, error) {
	if tz == "" {
		tz = s.defaultTZ
	}
	if _, err := RaceStart(date, startTime, tz); err != nil {
		return nil, err
	}

	race := &models.Race{
		Name:      name,
		Date:      date,
		StartTime: startTime,
		Timezone:  tz,
		Status:    models.RaceUpcoming,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := s.db.NewInsert().Model(race).Exec(ctx); err != nil {
		return nil, fmt.Errorf("creating race: %w", err)
	}
	return race, nil
}

// GetRace returns a race by id, or nil if unknown.
func (s *Service) GetRace(ctx context.Context, raceID int64) (*models.Race, error) {
	race := new(models.Race)
	err := s.db.NewSelect().Model(race).
		Where("rc.id = ?", raceID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading race: %w", err)
	}
	return race, nil
}

// ListRaces returns the full calendar in chronological order.
func (s *Service) ListRaces(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	err := s.db.NewSelect().Model(&races).
		OrderExpr("rc.date ASC, rc.start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing races: %w", err)
	}
	return races, nil
}

// UpcomingRaces returns races still flagged upcoming, earliest first.
func (s *Service) UpcomingRaces(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	err := s.db.NewSelect().Model(&races).
		Where("rc.status = ?", models.RaceUpcoming).
		OrderExpr("rc.date ASC, rc.start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming races: %w", err)
	}
	return races, nil
}

// UpdateRace applies a partial edit. Temporal fields are re-validated
// against the merged values so an edit cannot leave a race unparseable.
// Returns nil if the race does not exist.
func (s *Service) UpdateRace(ctx context.Context, raceID int64, upd RaceUpdate) (*models.Race, error) {
	race, err := s.GetRace(ctx, raceID)
	if err != nil || race == nil {
		return race, err
	}

	if upd.Name != nil {
		race.Name = *upd.Name
	}
	if upd.Date != nil {
		race.Date = *upd.Date
	}
	if upd.StartTime != nil {
		race.StartTime = *upd.StartTime
	}
	if upd.Timezone != nil {
		race.Timezone = *upd.Timezone
	}
	if upd.Status != nil {
		race.Status = *upd.Status
	}
	if upd.Date != nil || upd.StartTime != nil || upd.Timezone != nil {
		if _, err := RaceStart(race.Date, race.StartTime, race.Timezone); err != nil {
			return nil, err
		}
	}
	race.UpdatedAt = time.Now()

	_, err = s.db.NewUpdate().Model(race).
		Column("name", "date", "start_time", "timezone", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating race: %w", err)
	}
	return race, nil
}

// SetRaceStatus flips the lifecycle flag; used by the results flow after a
// successful settlement.
func (s *Service) SetRaceStatus(ctx context.Context, raceID int64, status string) error {
	_, err := s.db.NewUpdate().Model((*models.Race)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", raceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("setting race status: %w", err)
	}
	return nil
}

// MarkReminderSent records that the pre-race reminder went out.
func (s *Service) MarkReminderSent(ctx context.Context, raceID int64) error {
	_, err := s.db.NewUpdate().Model((*models.Race)(nil)).
		Set("reminder_sent = ?", true).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", raceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("marking reminder sent: %w", err)
	}
	return nil
}

// DeleteRace removes a race and everything it owns: its result, its
// predictions and its ledger rows. Reports whether the race existed.
func (s *Service) DeleteRace(ctx context.Context, raceID int64) (bool, error) {
	var existed bool
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Prediction)(nil)).Where("race_id = ?", raceID).Exec(ctx); err != nil {
			return fmt.Errorf("deleting predictions: %w", err)
		}
		if _, err := tx.NewDelete().Model((*models.Result)(nil)).Where("race_id = ?", raceID).Exec(ctx); err != nil {
			return fmt.Errorf("deleting result: %w", err)
		}
		if _, err := tx.NewDelete().Model((*models.PointsEntry)(nil)).Where("race_id = ?", raceID).Exec(ctx); err != nil {
			return fmt.Errorf("deleting ledger rows: %w", err)
		}
		res, err := tx.NewDelete().Model((*models.Race)(nil)).Where("id = ?", raceID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("deleting race: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		existed = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}
