package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"podiumapi/game"
)

// Leaderboard returns the ranked standings. An optional limit query param
// truncates after sorting.
func (h *Handler) Leaderboard(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	standings, err := h.svc.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, standings)
}

type playerStats struct {
	TelegramID      int64             `json:"telegramID"`
	Name            string            `json:"name"`
	TotalPoints     int               `json:"totalPoints"`
	PredictionCount int               `json:"predictionCount"`
	Races           []game.RacePoints `json:"races"`
}

// PlayerStats returns one player's totals, per-race scores (newest race
// first) and all-time prediction count.
func (h *Handler) PlayerStats(c echo.Context) error {
	telegramID, err := pathID(c, "telegramID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	player, err := h.svc.PlayerByTelegramID(ctx, telegramID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if player == nil {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}

	total, err := h.svc.TotalPoints(ctx, player.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	races, err := h.svc.PointsPerRace(ctx, player.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	count, err := h.svc.PredictionCount(ctx, player.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, playerStats{
		TelegramID:      player.TelegramID,
		Name:            player.DisplayName(),
		TotalPoints:     total,
		PredictionCount: count,
		Races:           races,
	})
}
