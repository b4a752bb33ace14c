// SPDX-License-Identifier: GPL-3.0-only

// Package search answers paginated term queries and single-record lookups
// over stored FileRecords.
package search

import (
	"context"
	"fmt"
	"math"
	"raex-server/commons"
	"raex-server/db"
	"raex-server/models"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Store is the read side of the record store.
type Store interface {
	Find(ctx context.Context, filter db.RecordFilter, offset, limit int) ([]models.FileRecord, error)
	Count(ctx context.Context, filter db.RecordFilter) (int64, error)
	FindByID(ctx context.Context, id string) (*models.FileRecord, error)
}

type Config struct {
	// FreeText matches non-numeric terms too. When false they are ignored.
	FreeText        bool
	DefaultPageSize int
	MaxPageSize     int
}

// ConfigFromEnv reads SEARCH_FREE_TEXT, SEARCH_DEFAULT_PAGE_SIZE and SEARCH_MAX_PAGE_SIZE.
func ConfigFromEnv() Config {
	return Config{
		FreeText:        commons.GetEnvBool("SEARCH_FREE_TEXT", false),
		DefaultPageSize: commons.GetEnvInt("SEARCH_DEFAULT_PAGE_SIZE", DefaultPageSize),
		MaxPageSize:     commons.GetEnvInt("SEARCH_MAX_PAGE_SIZE", MaxPageSize),
	}
}

type Query struct {
	Term     string
	Page     int
	PageSize int
}

type Result struct {
	Results     []models.FileRecord `json:"results"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	TotalCount  int64               `json:"totalCount"`
}

type Engine struct {
	store  Store
	config Config
	logger *log.Logger
}

func NewEngine(store Store, config Config, logger *log.Logger) *Engine {
	if config.DefaultPageSize < 1 {
		config.DefaultPageSize = DefaultPageSize
	}
	if config.MaxPageSize < 1 {
		config.MaxPageSize = MaxPageSize
	}
	if config.MaxPageSize < config.DefaultPageSize {
		config.MaxPageSize = config.DefaultPageSize
	}
	if logger == nil {
		logger = commons.Logger
	}
	return &Engine{store: store, config: config, logger: logger}
}

// Search returns one page of records ordered by collated file name. A numeric
// term restricts results to records where any indexed field contains it.
func (e *Engine) Search(ctx context.Context, query Query) (*Result, error) {
	page := max(query.Page, 1)
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = e.config.DefaultPageSize
	}
	pageSize = min(pageSize, e.config.MaxPageSize)

	filter := e.filterFor(query.Term)
	commons.SearchTotal.WithLabelValues(strconv.FormatBool(filter.Contains != "")).Inc()

	total, err := e.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	records, err := e.store.Find(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &Result{
		Results:     records,
		TotalPages:  int((total + int64(pageSize) - 1) / int64(pageSize)),
		CurrentPage: page,
		TotalCount:  total,
	}, nil
}

func (e *Engine) filterFor(term string) db.RecordFilter {
	term = strings.TrimSpace(term)
	if term == "" {
		return db.RecordFilter{}
	}
	if isNumeric(term) || e.config.FreeText {
		return db.RecordFilter{Contains: term}
	}
	e.logger.Warnf("Ignoring non-numeric search term %q", term)
	return db.RecordFilter{}
}

func isNumeric(term string) bool {
	f, err := strconv.ParseFloat(term, 64)
	return err == nil && !math.IsNaN(f)
}

// Get returns the record stored under id. Malformed ids fail with
// ErrInvalidIdentifier before any lookup.
func (e *Engine) Get(ctx context.Context, id string) (*models.FileRecord, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", commons.ErrInvalidIdentifier, id)
	}
	return e.store.FindByID(ctx, parsed.String())
}
