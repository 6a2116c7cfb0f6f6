// cmd/importcalendar/main.go
// Bulk-loads a season calendar from a JSON file into the races table.
// Existing races (same name and date) are left untouched, so the import
// can be re-run after calendar updates.
//
// Usage:
//
//	go run ./cmd/importcalendar -file season.json
//
// File format:
//
//	[{"name":"Monaco Grand Prix","date":"2026-06-07","startTime":"15:00","timezone":"Europe/Monaco"}]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"podiumapi/config"
	bundb "podiumapi/db"
	"podiumapi/game"
	"podiumapi/models"
)

type calendarEntry struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Timezone  string `json:"timezone"`
}

func main() {
	file := flag.String("file", "", "path to the season calendar JSON (required)")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read calendar: %v", err)
	}

	var entries []calendarEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("parse calendar: %v", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	imported, skipped := 0, 0
	for _, entry := range entries {
		tz := entry.Timezone
		if tz == "" {
			tz = cfg.DefaultTimezone
		}
		if _, err := game.RaceStart(entry.Date, entry.StartTime, tz); err != nil {
			log.Fatalf("race %q: %v", entry.Name, err)
		}

		race := &models.Race{
			Name:      entry.Name,
			Date:      entry.Date,
			StartTime: entry.StartTime,
			Timezone:  tz,
			Status:    models.RaceUpcoming,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		res, err := db.NewInsert().Model(race).
			On("CONFLICT (name, date) DO NOTHING").
			Exec(ctx)
		if err != nil {
			log.Fatalf("insert race %q: %v", entry.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			imported++
		} else {
			skipped++
		}
	}

	log.Printf("calendar import done: %d new, %d already present", imported, skipped)
}
