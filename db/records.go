// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"context"
	"errors"
	"fmt"
	"raex-server/commons"
	"raex-server/models"
	"strings"

	"gorm.io/gorm"
)

// RecordFilter narrows Find and Count. An empty Contains matches everything.
type RecordFilter struct {
	// Contains is matched as a case-insensitive substring of any indexed field.
	Contains string
}

// RecordStore persists FileRecords and their search index rows.
type RecordStore struct {
	conn *gorm.DB
}

func NewRecordStore(conn *gorm.DB) *RecordStore {
	return &RecordStore{conn: conn}
}

// FindByTADIGCode returns the oldest record whose TADIG summary list carries
// code, or whose primary code is code.
func (s *RecordStore) FindByTADIGCode(ctx context.Context, code string) (*models.FileRecord, error) {
	conn := s.conn.WithContext(ctx)
	owners := conn.Model(&models.SearchTerm{}).
		Select("file_record_id").
		Where("field = ? AND value = ?", models.FieldTADIGCode, code)

	var record models.FileRecord
	err := conn.
		Where("id IN (?) OR primary_tadig_code = ?", owners, code).
		Order("created_at ASC, id ASC").
		Take(&record).Error
	if err != nil {
		return nil, translate(err, "find record by TADIG code "+code)
	}
	return &record, nil
}

// Create stores record and its search index rows in one transaction.
func (s *RecordStore) Create(ctx context.Context, record *models.FileRecord) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("SearchTerms").Create(record).Error; err != nil {
			return translate(err, "create record")
		}
		terms := models.BuildSearchTerms(record)
		if len(terms) > 0 {
			if err := tx.CreateInBatches(terms, 500).Error; err != nil {
				return translate(err, "create search terms")
			}
		}
		return nil
	})
}

// FindByID returns the record stored under id, or ErrNotFound.
func (s *RecordStore) FindByID(ctx context.Context, id string) (*models.FileRecord, error) {
	var record models.FileRecord
	if err := s.conn.WithContext(ctx).Where("id = ?", id).Take(&record).Error; err != nil {
		return nil, translate(err, "find record "+id)
	}
	return &record, nil
}

// Find returns one page of matching records in collated fileName order.
func (s *RecordStore) Find(ctx context.Context, filter RecordFilter, offset, limit int) ([]models.FileRecord, error) {
	records := []models.FileRecord{}
	err := s.conn.WithContext(ctx).
		Scopes(s.matching(filter)).
		Order("file_name_sort_key ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, translate(err, "find records")
	}
	return records, nil
}

// Count returns the number of records matching filter.
func (s *RecordStore) Count(ctx context.Context, filter RecordFilter) (int64, error) {
	var count int64
	err := s.conn.WithContext(ctx).
		Model(&models.FileRecord{}).
		Scopes(s.matching(filter)).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "count records")
	}
	return count, nil
}

func (s *RecordStore) matching(filter RecordFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter.Contains == "" {
			return tx
		}
		pattern := "%" + escapeLike(models.FoldValue(filter.Contains)) + "%"
		matches := s.conn.Model(&models.SearchTerm{}).
			Select("file_record_id").
			Where("value_folded LIKE ? ESCAPE '!'", pattern)
		return tx.Where("id IN (?)", matches)
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, commons.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, commons.ErrDuplicateRecord)
	default:
		return fmt.Errorf("%s: %w: %v", op, commons.ErrPersistenceFailure, err)
	}
}

// LogIngest appends an entry to the ingest audit log.
func (s *RecordStore) LogIngest(ctx context.Context, entry *models.IngestLog) error {
	if err := s.conn.WithContext(ctx).Create(entry).Error; err != nil {
		return translate(err, "create ingest log")
	}
	return nil
}

// FindIngestLogs returns one page of the audit log, newest first, and the
// total number of entries.
func (s *RecordStore) FindIngestLogs(ctx context.Context, offset, limit int) ([]models.IngestLog, int64, error) {
	var total int64
	if err := s.conn.WithContext(ctx).Model(&models.IngestLog{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count ingest logs")
	}

	logs := []models.IngestLog{}
	if err := s.conn.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, translate(err, "find ingest logs")
	}
	return logs, total, nil
}

// SummarizeIngestLogs counts audit log entries per outcome. Every outcome is
// present in the result.
func (s *RecordStore) SummarizeIngestLogs(ctx context.Context) (map[models.IngestOutcome]int64, error) {
	var rows []struct {
		Outcome models.IngestOutcome
		Count   int64
	}
	if err := s.conn.WithContext(ctx).
		Model(&models.IngestLog{}).
		Select("outcome, COUNT(*) AS count").
		Group("outcome").
		Scan(&rows).Error; err != nil {
		return nil, translate(err, "summarize ingest logs")
	}

	summary := make(map[models.IngestOutcome]int64, len(models.IngestOutcomes))
	for _, outcome := range models.IngestOutcomes {
		summary[outcome] = 0
	}
	for _, row := range rows {
		summary[row.Outcome] = row.Count
	}
	return summary, nil
}
