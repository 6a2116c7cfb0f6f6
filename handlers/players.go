package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type syncPlayerRequest struct {
	TelegramID int64  `json:"telegramID"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
}

// SyncPlayer registers a player on first contact and refreshes the display
// fields afterwards. The bot calls this for every interaction.
func (h *Handler) SyncPlayer(c echo.Context) error {
	var req syncPlayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.TelegramID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "telegramID is required")
	}

	player, err := h.svc.GetOrCreatePlayer(c.Request().Context(), req.TelegramID,
		strings.TrimSpace(req.Username), strings.TrimSpace(req.FullName))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, player)
}

// Players lists every registered player, newest first.
func (h *Handler) Players(c echo.Context) error {
	players, err := h.svc.ListPlayers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, players)
}

// AllowPlayer whitelists a player.
func (h *Handler) AllowPlayer(c echo.Context) error {
	return h.setAllowed(c, true)
}

// DenyPlayer removes a player from the whitelist.
func (h *Handler) DenyPlayer(c echo.Context) error {
	return h.setAllowed(c, false)
}

func (h *Handler) setAllowed(c echo.Context, allowed bool) error {
	telegramID, err := pathID(c, "telegramID")
	if err != nil {
		return err
	}

	ok, err := h.svc.SetPlayerAllowed(c.Request().Context(), telegramID, allowed)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}
	return c.NoContent(http.StatusNoContent)
}
