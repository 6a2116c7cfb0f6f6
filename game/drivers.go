package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"podiumapi/models"
)

// ListDrivers returns the catalog the chat collaborator builds its pick
// keyboards from, sorted by code.
func (s *Service) ListDrivers(ctx context.Context, activeOnly bool) ([]models.Driver, error) {
	var drivers []models.Driver
	q := s.db.NewSelect().Model(&drivers).Order("d.code ASC")
	if activeOnly {
		q = q.Where("d.is_active = ?", true)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("listing drivers: %w", err)
	}
	return drivers, nil
}

// DriverByCode returns a catalog entry, or nil if the code is unknown.
// Codes are case-sensitive, matching how picks are compared everywhere else.
func (s *Service) DriverByCode(ctx context.Context, code string) (*models.Driver, error) {
	driver := new(models.Driver)
	err := s.db.NewSelect().Model(driver).
		Where("d.code = ?", code).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading driver: %w", err)
	}
	return driver, nil
}
