// Package workers runs the background jobs around the scoring core.
package workers

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"podiumapi/game"
	"podiumapi/models"
)

// Notifier delivers the pre-race reminder. The chat transport lives in the
// bot process, so production wires an implementation that calls back into
// it; the default just logs.
type Notifier interface {
	RaceReminder(ctx context.Context, race models.Race, players []models.Player) error
}

// LogNotifier logs reminders instead of delivering them.
type LogNotifier struct{}

func (LogNotifier) RaceReminder(_ context.Context, race models.Race, players []models.Player) error {
	zap.L().Info("race reminder due",
		zap.String("race", race.Name),
		zap.String("date", race.Date),
		zap.Int("recipients", len(players)),
	)
	return nil
}

// Reminder scans upcoming races and fires one reminder per race once its
// localized start is within the configured window.
type Reminder struct {
	svc      *game.Service
	notifier Notifier
	before   time.Duration
}

// NewReminder builds a Reminder firing hoursBefore race start.
func NewReminder(svc *game.Service, notifier Notifier, hoursBefore int) *Reminder {
	return &Reminder{
		svc:      svc,
		notifier: notifier,
		before:   time.Duration(hoursBefore) * time.Hour,
	}
}

// Start schedules the scan every minute. The returned scheduler should be
// shut down with the process.
func (r *Reminder) Start() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(r.scan),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

func (r *Reminder) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	races, err := r.svc.UpcomingRaces(ctx)
	if err != nil {
		zap.L().Error("reminder scan failed", zap.Error(err))
		return
	}

	now := time.Now()
	for _, race := range races {
		if race.ReminderSent {
			continue
		}

		start, err := game.RaceStart(race.Date, race.StartTime, race.Timezone)
		if err != nil {
			// Malformed race times are surfaced here, not silently skipped
			// like the gate does: an admin needs to fix the calendar entry.
			zap.L().Warn("race has unparseable start time",
				zap.Int64("race_id", race.ID),
				zap.String("race", race.Name),
				zap.Error(err),
			)
			continue
		}

		if now.Before(start.Add(-r.before)) || now.After(start) {
			continue
		}

		players, err := r.recipients(ctx)
		if err != nil {
			zap.L().Error("loading reminder recipients failed", zap.Error(err))
			return
		}

		if err := r.notifier.RaceReminder(ctx, race, players); err != nil {
			zap.L().Error("sending reminder failed",
				zap.Int64("race_id", race.ID),
				zap.Error(err),
			)
			continue
		}
		if err := r.svc.MarkReminderSent(ctx, race.ID); err != nil {
			zap.L().Error("marking reminder sent failed",
				zap.Int64("race_id", race.ID),
				zap.Error(err),
			)
		}
	}
}

// recipients are whitelisted players who have not opted out.
func (r *Reminder) recipients(ctx context.Context) ([]models.Player, error) {
	players, err := r.svc.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	out := players[:0]
	for _, p := range players {
		if p.IsAllowed && p.WantsReminders {
			out = append(out, p)
		}
	}
	return out, nil
}
