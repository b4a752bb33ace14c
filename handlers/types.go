// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "raex-server/models"

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model ErrorResponse
type ErrorResponse struct {
	// Short error category
	Error string `json:"error" example:"Bad Request"`
	// Human readable explanation
	Message string `json:"message,omitempty" example:"No file was uploaded. Please attach an XML file to your request."`
	// Underlying failure, when one is known
	Details string `json:"details,omitempty" example:"malformed document: XML syntax error on line 3"`
}

// swagger:model UploadResponse
type UploadResponse struct {
	// Message indicating successful upload
	Message string `json:"message" example:"File uploaded successfully"`
	// The stored record
	File *models.FileRecord `json:"file"`
}

// swagger:model DuplicateResponse
type DuplicateResponse struct {
	// Error category
	Error string `json:"error" example:"Duplicate File"`
	// Message naming the TADIG code already stored
	Message string `json:"message" example:"This file version (TADIG: USAAM) has already been uploaded."`
	// ID of the record already stored for the TADIG code
	FileID string `json:"fileId" example:"0b0c6c0e-7d3a-4d0e-9a55-6c3f5f1b2a10"`
}

// swagger:model SearchResponse
type SearchResponse struct {
	// Records on the requested page, ordered by file name
	Results []models.FileRecord `json:"results"`
	// Number of pages for the current page size
	TotalPages int `json:"totalPages" example:"3"`
	// Page returned
	CurrentPage int `json:"currentPage" example:"1"`
	// Number of records matching the query
	TotalCount int64 `json:"totalCount" example:"45"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	// "ok" when the database answers
	Status string `json:"status" example:"ok"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model IngestLogDetails
type IngestLogDetails struct {
	// Event ID
	EID string `json:"eid" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Outcome of the upload
	Outcome string `json:"outcome" example:"ACCEPTED"`
	// Name of the uploaded file
	SourceFilename string `json:"source_filename" example:"USAAM_IR21.xml"`
	// Primary TADIG code of the document, when it has one
	TADIGCode *string `json:"tadig_code" example:"USAAM"`
	// Stored record, or the record it duplicates
	FileID *string `json:"file_id" example:"0b0c6c0e-7d3a-4d0e-9a55-6c3f5f1b2a10"`
	// Failure description
	Description *string `json:"description" example:"malformed document: XML syntax error on line 3"`
	// Timestamp of the upload
	CreatedAt string `json:"created_at" example:"2024-03-01T08:30:00Z"`
}

// swagger:model IngestLogListResponse
type IngestLogListResponse struct {
	// List of ingest logs
	Data []IngestLogDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Ingest logs retrieved successfully"`
}

// swagger:model IngestLogSummaryResponse
type IngestLogSummaryResponse struct {
	// Number of uploads per outcome
	Data    map[string]int64 `json:"data"`
	Message string           `json:"message" example:"Ingest logs summary retrieved successfully"`
}
