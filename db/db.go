package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"podiumapi/config"
	"podiumapi/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order. Uniqueness of
// (player, race) pairs on predictions and points, and of race_id on results,
// is the defining correctness invariant and lives in the model tag groups.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Operator)(nil),
		(*models.Player)(nil),
		(*models.Driver)(nil),
		(*models.Race)(nil),
		(*models.Prediction)(nil),
		(*models.Result)(nil),
		(*models.PointsEntry)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	return nil
}

// seedDrivers is the current grid, loaded only when the catalog is empty.
var seedDrivers = []models.Driver{
	{Code: "VER", FullName: "Max Verstappen", IsActive: true},
	{Code: "LAW", FullName: "Liam Lawson", IsActive: true},
	{Code: "LEC", FullName: "Charles Leclerc", IsActive: true},
	{Code: "HAM", FullName: "Lewis Hamilton", IsActive: true},
	{Code: "RUS", FullName: "George Russell", IsActive: true},
	{Code: "ANT", FullName: "Andrea Kimi Antonelli", IsActive: true},
	{Code: "NOR", FullName: "Lando Norris", IsActive: true},
	{Code: "PIA", FullName: "Oscar Piastri", IsActive: true},
	{Code: "ALO", FullName: "Fernando Alonso", IsActive: true},
	{Code: "STR", FullName: "Lance Stroll", IsActive: true},
	{Code: "GAS", FullName: "Pierre Gasly", IsActive: true},
	{Code: "DOO", FullName: "Jack Doohan", IsActive: true},
	{Code: "ALB", FullName: "Alex Albon", IsActive: true},
	{Code: "SAI", FullName: "Carlos Sainz Jr.", IsActive: true},
	{Code: "OCO", FullName: "Esteban Ocon", IsActive: true},
	{Code: "BEA", FullName: "Oliver Bearman", IsActive: true},
	{Code: "TSU", FullName: "Yuki Tsunoda", IsActive: true},
	{Code: "HAD", FullName: "Isack Hadjar", IsActive: true},
	{Code: "HUL", FullName: "Nico Hülkenberg", IsActive: true},
	{Code: "BOR", FullName: "Gabriel Bortoleto", IsActive: true},
}

// SeedDrivers inserts the default driver catalog if the table is empty.
func SeedDrivers(ctx context.Context, db *bun.DB) error {
	count, err := db.NewSelect().Model((*models.Driver)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("counting drivers: %w", err)
	}
	if count > 0 {
		return nil
	}

	drivers := make([]models.Driver, len(seedDrivers))
	copy(drivers, seedDrivers)
	if _, err := db.NewInsert().Model(&drivers).Exec(ctx); err != nil {
		return fmt.Errorf("seeding drivers: %w", err)
	}
	log.Printf("seeded %d drivers", len(drivers))
	return nil
}
