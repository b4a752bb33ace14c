// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
)

// IngestEvent announces a newly stored FileRecord to downstream consumers
type IngestEvent struct {
	// EventID is the unique event identifier
	EventID string `json:"event_id"`
	// FileID is the identifier of the stored record
	FileID string `json:"file_id"`
	// FileName is the display name of the record
	FileName string `json:"file_name"`
	// TADIGCodes lists every network code carried by the record
	TADIGCodes []string `json:"tadig_codes"`
	// CountryInitials is the 3-letter country code as given in the document
	CountryInitials *string `json:"country_initials,omitempty"`
	// Timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewIngestEvent creates an event for record with a generated event ID
func NewIngestEvent(record *FileRecord) *IngestEvent {
	return &IngestEvent{
		EventID:         uuid.New().String(),
		FileID:          record.ID,
		FileName:        record.FileName,
		TADIGCodes:      record.TADIGCodes(),
		CountryInitials: record.CountryInitials,
		CreatedAt:       time.Now(),
	}
}
