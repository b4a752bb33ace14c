// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"raex-server/commons"
	"raex-server/handlers"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, files *handlers.FilesHandler, logs *handlers.IngestLogHandler, db handlers.Pinger) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")
	api_v1.POST("/files/upload", files.UploadHandler)
	api_v1.GET("/files", files.SearchHandler)
	api_v1.GET("/files/:file_id", files.GetFileHandler)
	api_v1.GET("/ingest-logs", logs.GetIngestLogsHandler)
	api_v1.GET("/ingest-logs/summary", logs.GetIngestLogsSummaryHandler)

	e.GET("/healthz", handlers.HealthHandler(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	commons.Logger.Info("v1 routes registered successfully")
}
