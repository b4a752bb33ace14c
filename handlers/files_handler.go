// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"raex-server/commons"
	"raex-server/ingest"
	"raex-server/search"
	"strconv"

	"github.com/labstack/echo/v4"
)

// FilesHandler serves upload, search and lookup of interchange documents.
type FilesHandler struct {
	ingest    *ingest.Service
	search    *search.Engine
	uploadDir string
}

func NewFilesHandler(ingestService *ingest.Service, engine *search.Engine, uploadDir string) *FilesHandler {
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &FilesHandler{ingest: ingestService, search: engine, uploadDir: uploadDir}
}

// UploadHandler godoc
// @Summary      Upload an IR.21 document
// @Description  Parses an uploaded RAEX IR.21 XML file and stores it, unless a file with the same primary TADIG code was already uploaded.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "RAEX IR.21 XML document"
// @Success      200 {object} UploadResponse    "File uploaded successfully"
// @Failure      400 {object} ErrorResponse     "No file attached or malformed document"
// @Failure      409 {object} DuplicateResponse "A file with the same TADIG code exists"
// @Failure      500 {object} ErrorResponse     "Internal server error"
// @Router       /v1/files/upload [post]
func (h *FilesHandler) UploadHandler(c echo.Context) error {
	logger := c.Logger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Upload without file:", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Bad Request",
			Message: "No file was uploaded. Please attach an XML file to your request.",
		})
	}

	path, err := h.saveUpload(fileHeader)
	if err != nil {
		logger.Error("Failed to store upload:", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to process XML file",
			Details: err.Error(),
		})
	}

	result, err := h.ingest.Ingest(c.Request().Context(), path, fileHeader.Filename)
	switch {
	case errors.Is(err, commons.ErrMalformedDocument):
		logger.Warnf("Malformed upload %s: %v", fileHeader.Filename, err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Malformed Document",
			Message: "The uploaded file is not a well-formed XML document.",
			Details: err.Error(),
		})
	case err != nil:
		logger.Errorf("Failed to ingest %s: %v", fileHeader.Filename, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to process XML file",
			Details: err.Error(),
		})
	case result.Status == ingest.StatusDuplicate:
		return c.JSON(http.StatusConflict, DuplicateResponse{
			Error:   "Duplicate File",
			Message: fmt.Sprintf("This file version (TADIG: %s) has already been uploaded.", result.TADIGCode),
			FileID:  result.ExistingID,
		})
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Message: "File uploaded successfully",
		File:    result.Record,
	})
}

func (h *FilesHandler) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(h.uploadDir, "raex-upload-*.xml")
	if err != nil {
		return "", fmt.Errorf("create upload artifact: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload artifact: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload artifact: %w", err)
	}
	return dst.Name(), nil
}

// SearchHandler godoc
// @Summary      Search stored files
// @Description  Returns one page of stored records ordered by file name. A numeric q restricts results to records where any indexed field contains it.
// @Tags         files
// @Produce      json
// @Param        q      query  string  false  "Search term"
// @Param        page   query  int     false  "Page number, from 1"          default(1)
// @Param        limit  query  int     false  "Page size"                    default(20)
// @Success      200 {object} SearchResponse "Page of records"
// @Failure      500 {object} ErrorResponse  "Internal server error"
// @Router       /v1/files [get]
func (h *FilesHandler) SearchHandler(c echo.Context) error {
	logger := c.Logger()

	query := search.Query{
		Term:     c.QueryParam("q"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "limit"),
	}

	result, err := h.search.Search(c.Request().Context(), query)
	if err != nil {
		logger.Error("Failed to search files:", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch data"})
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Results:     result.Results,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		TotalCount:  result.TotalCount,
	})
}

// GetFileHandler godoc
// @Summary      Get a stored file
// @Description  Returns the record stored under file_id.
// @Tags         files
// @Produce      json
// @Param        file_id  path  string  true  "Record identifier"
// @Success      200 {object} models.FileRecord "Stored record"
// @Failure      400 {object} GenericResponse   "Invalid file ID format"
// @Failure      404 {object} GenericResponse   "File not found"
// @Failure      500 {object} ErrorResponse     "Internal server error"
// @Router       /v1/files/{file_id} [get]
func (h *FilesHandler) GetFileHandler(c echo.Context) error {
	logger := c.Logger()
	fileID := c.Param("file_id")

	record, err := h.search.Get(c.Request().Context(), fileID)
	switch {
	case errors.Is(err, commons.ErrInvalidIdentifier):
		return c.JSON(http.StatusBadRequest, GenericResponse{Message: "Invalid file ID format"})
	case errors.Is(err, commons.ErrNotFound):
		return c.JSON(http.StatusNotFound, GenericResponse{Message: "File not found"})
	case err != nil:
		logger.Errorf("Failed to fetch file %s: %v", fileID, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch file"})
	}
	return c.JSON(http.StatusOK, record)
}

// queryInt reads an integer query parameter, 0 when absent or invalid.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}
