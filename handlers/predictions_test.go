package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	podiumdb "podiumapi/db"
	"podiumapi/game"
	"podiumapi/models"
)

func newTestHandler(t *testing.T) (*Handler, *game.Service) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, podiumdb.CreateTables(context.Background(), bdb))

	svc := game.New(bdb, game.Options{})
	return New(svc, game.NewGate(5), []byte("test-secret")), svc
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func postJSON(h echo.HandlerFunc, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/predictions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestSavePredictionWhileWindowOpen(t *testing.T) {
	h, svc := newTestHandler(t)
	ctx := context.Background()

	player, err := svc.GetOrCreatePlayer(ctx, 100, "alice", "Alice")
	require.NoError(t, err)
	// A race far in the future keeps the window open with the real clock.
	race, err := svc.CreateRace(ctx, "Monaco Grand Prix", "2099-06-07", "15:00", "Europe/Monaco")
	require.NoError(t, err)

	body := `{"telegramID":100,"raceID":` + itoa(race.ID) + `,"first":"VER","second":"HAM","third":"LEC"}`
	rec, err := postJSON(h.SavePrediction, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "VER", got.First)

	stored, err := svc.GetPrediction(ctx, player.ID, race.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "LEC", stored.Third)
}

func TestSavePredictionAfterCutoff(t *testing.T) {
	h, svc := newTestHandler(t)
	ctx := context.Background()

	player, err := svc.GetOrCreatePlayer(ctx, 100, "alice", "Alice")
	require.NoError(t, err)
	race, err := svc.CreateRace(ctx, "Monaco Grand Prix", "2020-06-07", "15:00", "Europe/Monaco")
	require.NoError(t, err)

	body := `{"telegramID":100,"raceID":` + itoa(race.ID) + `,"first":"VER","second":"HAM","third":"LEC"}`
	_, err = postJSON(h.SavePrediction, body)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	// Nothing was written.
	stored, err := svc.GetPrediction(ctx, player.ID, race.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSavePredictionValidation(t *testing.T) {
	h, svc := newTestHandler(t)
	ctx := context.Background()

	_, err := svc.GetOrCreatePlayer(ctx, 100, "alice", "Alice")
	require.NoError(t, err)
	race, err := svc.CreateRace(ctx, "Monza", "2099-09-06", "15:00", "Europe/Rome")
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		code int
	}{
		{
			name: "missing pick",
			body: `{"telegramID":100,"raceID":` + itoa(race.ID) + `,"first":"VER","second":"","third":"LEC"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "whitespace pick",
			body: `{"telegramID":100,"raceID":` + itoa(race.ID) + `,"first":"VER","second":"   ","third":"LEC"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown player",
			body: `{"telegramID":999,"raceID":` + itoa(race.ID) + `,"first":"VER","second":"HAM","third":"LEC"}`,
			code: http.StatusNotFound,
		},
		{
			name: "unknown race",
			body: `{"telegramID":100,"raceID":9999,"first":"VER","second":"HAM","third":"LEC"}`,
			code: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := postJSON(h.SavePrediction, tc.body)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tc.code, httpErr.Code)
		})
	}
}

func TestDeletePredictionAfterCutoff(t *testing.T) {
	h, svc := newTestHandler(t)
	ctx := context.Background()

	player, err := svc.GetOrCreatePlayer(ctx, 100, "alice", "Alice")
	require.NoError(t, err)
	race, err := svc.CreateRace(ctx, "Monaco Grand Prix", "2020-06-07", "15:00", "Europe/Monaco")
	require.NoError(t, err)
	_, err = svc.UpsertPrediction(ctx, player.ID, race.ID, "VER", "HAM", "LEC")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete,
		"/api/predictions?telegramID=100&raceID="+itoa(race.ID), nil)
	rec := httptest.NewRecorder()
	err = h.DeletePrediction(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	// The frozen prediction survives.
	stored, err := svc.GetPrediction(ctx, player.ID, race.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}
