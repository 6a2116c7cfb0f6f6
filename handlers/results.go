package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"podiumapi/game"
	"podiumapi/models"
)

type resultRequest struct {
	RaceID int64  `json:"raceID"`
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

type settlementResponse struct {
	Race   *models.Race     `json:"race"`
	Result *models.Result   `json:"result"`
	Scores []game.RaceScore `json:"scores"`
}

// SaveResult records the official podium for a race, settles every
// prediction against it and marks the race finished. Entering a corrected
// result for an already-finished race re-settles it: the ledger rows are
// overwritten in place.
func (h *Handler) SaveResult(c echo.Context) error {
	var req resultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.First = strings.TrimSpace(req.First)
	req.Second = strings.TrimSpace(req.Second)
	req.Third = strings.TrimSpace(req.Third)
	if req.First == "" || req.Second == "" || req.Third == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "all three finishers are required")
	}

	ctx := c.Request().Context()

	race, err := h.svc.GetRace(ctx, req.RaceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}

	result, err := h.svc.UpsertResult(ctx, race.ID, req.First, req.Second, req.Third)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	scores, err := h.svc.Settle(ctx, race.ID)
	if err != nil {
		// Retryable: the result row is saved, the ledger untouched.
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Engine returns insertion order; display wants points first. The
	// stable sort keeps equal scores in prediction order.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Points > scores[j].Points
	})

	if err := h.svc.SetRaceStatus(ctx, race.ID, models.RaceFinished); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	race.Status = models.RaceFinished

	zap.L().Info("race settled",
		zap.Int64("race_id", race.ID),
		zap.String("race", race.Name),
		zap.Int("predictions", len(scores)),
	)

	return c.JSON(http.StatusOK, settlementResponse{Race: race, Result: result, Scores: scores})
}

// GetResult returns the official podium for a race.
func (h *Handler) GetResult(c echo.Context) error {
	raceID, err := queryID(c, "raceID")
	if err != nil {
		return err
	}

	result, err := h.svc.GetResult(c.Request().Context(), raceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if result == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no result for this race")
	}
	return c.JSON(http.StatusOK, result)
}

func queryID(c echo.Context, name string) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "missing "+name+" param")
	}
	id, err := parseID(v)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
