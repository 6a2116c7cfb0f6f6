package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Drivers returns the pick catalog. Pass all=true to include retired entries.
func (h *Handler) Drivers(c echo.Context) error {
	activeOnly := c.QueryParam("all") != "true"

	drivers, err := h.svc.ListDrivers(c.Request().Context(), activeOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, drivers)
}
