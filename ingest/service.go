// SPDX-License-Identifier: GPL-3.0-only

// Package ingest turns uploaded interchange documents into stored records,
// guarding against a second record for the same primary TADIG code.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"raex-server/commons"
	"raex-server/commons/xmltree"
	"raex-server/models"
	"raex-server/raex"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

// Store is the persistence the coordinator needs.
type Store interface {
	FindByTADIGCode(ctx context.Context, code string) (*models.FileRecord, error)
	Create(ctx context.Context, record *models.FileRecord) error
}

// Auditor is implemented by stores that keep an ingest audit log. Every
// attempt is recorded when the Store passed to NewService is also an Auditor.
type Auditor interface {
	LogIngest(ctx context.Context, entry *models.IngestLog) error
}

// Publisher announces stored records. A nil Publisher disables events.
type Publisher interface {
	PublishIngested(ctx context.Context, record *models.FileRecord) error
}

type Status string

const (
	StatusAccepted  Status = "accepted"
	StatusDuplicate Status = "duplicate"
)

// Result is the outcome of a completed ingest. Failures are returned as errors.
type Result struct {
	Status Status
	// Record is set when Status is StatusAccepted.
	Record *models.FileRecord
	// ExistingID and TADIGCode are set when Status is StatusDuplicate.
	ExistingID string
	TADIGCode  string
}

type Service struct {
	store     Store
	auditor   Auditor
	publisher Publisher
	logger    *log.Logger
}

func NewService(store Store, publisher Publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = commons.Logger
	}
	auditor, _ := store.(Auditor)
	return &Service{store: store, auditor: auditor, publisher: publisher, logger: logger}
}

// Ingest parses the artifact at path, rejects it when a record with the same
// primary TADIG code exists and stores it otherwise. The artifact is removed
// before Ingest returns, whatever the outcome.
func (s *Service) Ingest(ctx context.Context, path, sourceFilename string) (result *Result, err error) {
	start := time.Now()
	var code string
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			s.logger.Warnf("Failed to remove upload artifact %s: %v", path, rmErr)
		}
		o := outcome(result, err)
		commons.IngestTotal.WithLabelValues(strings.ToLower(string(o))).Inc()
		commons.IngestDuration.Observe(time.Since(start).Seconds())
		s.audit(ctx, o, sourceFilename, code, result, err)
	}()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload artifact: %w: %v", commons.ErrPersistenceFailure, err)
	}
	doc, err := xmltree.Parse(file)
	file.Close()
	if err != nil {
		return nil, err
	}

	code = raex.PrimaryTADIGCode(doc)
	if code != "" {
		existing, err := s.store.FindByTADIGCode(ctx, code)
		switch {
		case err == nil:
			s.logger.Infof("Rejected %s: TADIG code %s already stored as %s", sourceFilename, code, existing.ID)
			return &Result{Status: StatusDuplicate, ExistingID: existing.ID, TADIGCode: code}, nil
		case !errors.Is(err, commons.ErrNotFound):
			return nil, err
		}
	}

	record := raex.Assemble(doc, sourceFilename)
	if err := s.store.Create(ctx, record); err != nil {
		if code != "" && errors.Is(err, commons.ErrDuplicateRecord) {
			// another upload with the same code won the insert
			if winner, findErr := s.store.FindByTADIGCode(ctx, code); findErr == nil {
				s.logger.Infof("Rejected %s: TADIG code %s stored concurrently as %s", sourceFilename, code, winner.ID)
				return &Result{Status: StatusDuplicate, ExistingID: winner.ID, TADIGCode: code}, nil
			}
		}
		return nil, err
	}
	s.logger.Infof("Stored %s as %s (%s)", sourceFilename, record.ID, record.FileName)

	if s.publisher != nil {
		if pubErr := s.publisher.PublishIngested(ctx, record); pubErr != nil {
			s.logger.Warnf("Failed to publish ingest event for %s: %v", record.ID, pubErr)
		}
	}
	return &Result{Status: StatusAccepted, Record: record}, nil
}

func (s *Service) audit(ctx context.Context, o models.IngestOutcome, sourceFilename, code string, result *Result, err error) {
	if s.auditor == nil {
		return
	}
	entry := &models.IngestLog{Outcome: o, SourceFilename: sourceFilename}
	if code != "" {
		entry.TADIGCode = &code
	}
	switch {
	case err != nil:
		description := err.Error()
		entry.Description = &description
	case result.Status == StatusAccepted:
		entry.FileRecordID = &result.Record.ID
	case result.Status == StatusDuplicate:
		entry.FileRecordID = &result.ExistingID
	}
	if logErr := s.auditor.LogIngest(context.WithoutCancel(ctx), entry); logErr != nil {
		s.logger.Warnf("Failed to write ingest log for %s: %v", sourceFilename, logErr)
	}
}

func outcome(result *Result, err error) models.IngestOutcome {
	switch {
	case err == nil && result != nil && result.Status == StatusDuplicate:
		return models.OutcomeDuplicate
	case err == nil && result != nil:
		return models.OutcomeAccepted
	case errors.Is(err, commons.ErrMalformedDocument):
		return models.OutcomeMalformed
	default:
		return models.OutcomeFailed
	}
}
