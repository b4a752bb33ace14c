// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler godoc
// @Summary      Liveness and database check
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse "Database reachable"
// @Failure      503 {object} HealthResponse "Database unreachable"
// @Router       /healthz [get]
func HealthHandler(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			c.Logger().Error("Health check failed:", err)
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		}
		return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	}
}
