package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"podiumapi/game"
)

type createRaceRequest struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Timezone  string `json:"timezone"`
}

type updateRaceRequest struct {
	Name      *string `json:"name"`
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	Timezone  *string `json:"timezone"`
	Status    *string `json:"status"`
}

// Races returns the full calendar, each race annotated with whether its
// betting window is currently open.
func (h *Handler) Races(c echo.Context) error {
	races, err := h.svc.ListRaces(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type raceRow struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Date        string `json:"date"`
		StartTime   string `json:"startTime"`
		Timezone    string `json:"timezone"`
		Status      string `json:"status"`
		BettingOpen bool   `json:"bettingOpen"`
	}

	rows := make([]raceRow, len(races))
	for i, r := range races {
		rows[i] = raceRow{
			ID:          r.ID,
			Name:        r.Name,
			Date:        r.Date,
			StartTime:   r.StartTime,
			Timezone:    r.Timezone,
			Status:      r.Status,
			BettingOpen: h.gate.Open(r.Date, r.StartTime, r.Timezone),
		}
	}
	return c.JSON(http.StatusOK, rows)
}

// CreateRace schedules a race.
func (h *Handler) CreateRace(c echo.Context) error {
	var req createRaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Date == "" || req.StartTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date and startTime are required")
	}

	race, err := h.svc.CreateRace(c.Request().Context(), req.Name, req.Date, req.StartTime, req.Timezone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "race already exists")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, race)
}

// UpdateRace applies a partial edit, the raw status field included.
func (h *Handler) UpdateRace(c echo.Context) error {
	raceID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateRaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	race, err := h.svc.UpdateRace(c.Request().Context(), raceID, gameRaceUpdate(req))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	return c.JSON(http.StatusOK, race)
}

// DeleteRace removes a race with its result, predictions and ledger rows.
func (h *Handler) DeleteRace(c echo.Context) error {
	raceID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	existed, err := h.svc.DeleteRace(c.Request().Context(), raceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// UnsettledRaces is the admin queue: races with no result yet, earliest first.
func (h *Handler) UnsettledRaces(c echo.Context) error {
	races, err := h.svc.RacesWithoutResult(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, races)
}

func gameRaceUpdate(req updateRaceRequest) game.RaceUpdate {
	return game.RaceUpdate{
		Name:      req.Name,
		Date:      req.Date,
		StartTime: req.StartTime,
		Timezone:  req.Timezone,
		Status:    req.Status,
	}
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := parseID(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
