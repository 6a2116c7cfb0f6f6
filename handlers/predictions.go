package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type predictionRequest struct {
	TelegramID int64  `json:"telegramID"`
	RaceID     int64  `json:"raceID"`
	First      string `json:"first"`
	Second     string `json:"second"`
	Third      string `json:"third"`
}

// SavePrediction creates or replaces a player's podium pick for a race.
// The betting window is checked here, not in the store: once the gate is
// closed the prediction is frozen, whether or not a result exists yet.
func (h *Handler) SavePrediction(c echo.Context) error {
	var req predictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.First = strings.TrimSpace(req.First)
	req.Second = strings.TrimSpace(req.Second)
	req.Third = strings.TrimSpace(req.Third)
	if req.First == "" || req.Second == "" || req.Third == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "all three picks are required")
	}

	ctx := c.Request().Context()

	player, err := h.svc.PlayerByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if player == nil {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}

	race, err := h.svc.GetRace(ctx, req.RaceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}

	if !h.gate.Open(race.Date, race.StartTime, race.Timezone) {
		return echo.NewHTTPError(http.StatusForbidden, "betting window is closed")
	}

	pred, err := h.svc.UpsertPrediction(ctx, player.ID, race.ID, req.First, req.Second, req.Third)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pred)
}

// GetPrediction returns one player's prediction for one race.
func (h *Handler) GetPrediction(c echo.Context) error {
	telegramID, err := queryID(c, "telegramID")
	if err != nil {
		return err
	}
	raceID, err := queryID(c, "raceID")
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

	pred, err := h.svc.GetPrediction(ctx, player.ID, raceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if pred == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no prediction for this race")
	}
	return c.JSON(http.StatusOK, pred)
}

// ListPredictions returns all of a player's predictions, most recent first.
func (h *Handler) ListPredictions(c echo.Context) error {
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

	preds, err := h.svc.ListPredictions(ctx, player.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, preds)
}

// DeletePrediction withdraws a prediction while the window is still open.
func (h *Handler) DeletePrediction(c echo.Context) error {
	telegramID, err := queryID(c, "telegramID")
	if err != nil {
		return err
	}
	raceID, err := queryID(c, "raceID")
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

	race, err := h.svc.GetRace(ctx, raceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}

	if !h.gate.Open(race.Date, race.StartTime, race.Timezone) {
		return echo.NewHTTPError(http.StatusForbidden, "betting window is closed")
	}

	removed, err := h.svc.DeletePrediction(ctx, player.ID, race.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "no prediction for this race")
	}
	return c.NoContent(http.StatusNoContent)
}
