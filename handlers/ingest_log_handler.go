// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"net/http"
	"raex-server/models"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	defaultLogPageSize = 20
	maxLogPageSize     = 100
)

type IngestLogReader interface {
	FindIngestLogs(ctx context.Context, offset, limit int) ([]models.IngestLog, int64, error)
	SummarizeIngestLogs(ctx context.Context) (map[models.IngestOutcome]int64, error)
}

type IngestLogHandler struct {
	logs IngestLogReader
}

func NewIngestLogHandler(logs IngestLogReader) *IngestLogHandler {
	return &IngestLogHandler{logs: logs}
}

// GetIngestLogsHandler godoc
// @Summary      List upload attempts
// @Description  Returns the ingest audit log, newest first.
// @Tags         ingest-logs
// @Produce      json
// @Param        page       query  int  false  "Page number"  default(1)
// @Param        page_size  query  int  false  "Page size"    default(20)
// @Success      200 {object} IngestLogListResponse "Ingest logs retrieved successfully"
// @Failure      500 {object} echo.HTTPError        "Internal server error"
// @Router       /v1/ingest-logs [get]
func (h *IngestLogHandler) GetIngestLogsHandler(c echo.Context) error {
	logger := c.Logger()

	page := max(queryInt(c, "page"), 1)
	pageSize := queryInt(c, "page_size")
	if pageSize < 1 {
		pageSize = defaultLogPageSize
	}
	pageSize = min(pageSize, maxLogPageSize)

	logs, total, err := h.logs.FindIngestLogs(c.Request().Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		logger.Errorf("Failed to fetch ingest logs: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]IngestLogDetails, 0, len(logs))
	for _, entry := range logs {
		details = append(details, IngestLogDetails{
			EID:            entry.EID,
			Outcome:        string(entry.Outcome),
			SourceFilename: entry.SourceFilename,
			TADIGCode:      entry.TADIGCode,
			FileID:         entry.FileRecordID,
			Description:    entry.Description,
			CreatedAt:      entry.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, IngestLogListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
		Message: "Ingest logs retrieved successfully",
	})
}

// GetIngestLogsSummaryHandler godoc
// @Summary      Count upload attempts per outcome
// @Tags         ingest-logs
// @Produce      json
// @Success      200 {object} IngestLogSummaryResponse "Ingest logs summary retrieved successfully"
// @Failure      500 {object} echo.HTTPError           "Internal server error"
// @Router       /v1/ingest-logs/summary [get]
func (h *IngestLogHandler) GetIngestLogsSummaryHandler(c echo.Context) error {
	summary, err := h.logs.SummarizeIngestLogs(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to summarize ingest logs: %v", err)
		return echo.ErrInternalServerError
	}

	data := make(map[string]int64, len(summary))
	for outcome, count := range summary {
		data[string(outcome)] = count
	}
	return c.JSON(http.StatusOK, IngestLogSummaryResponse{
		Data:    data,
		Message: "Ingest logs summary retrieved successfully",
	})
}
