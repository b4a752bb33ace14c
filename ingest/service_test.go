// SPDX-License-Identifier: GPL-3.0-only

package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"raex-server/commons"
	"raex-server/db"
	"raex-server/models"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<RAEXIR21>
  <RAEXIR21FileHeader><SenderTADIG>%[1]s</SenderTADIG></RAEXIR21FileHeader>
  <OrganisationInfo>
    <OrganisationName>%[2]s</OrganisationName>
    <CountryInitials>USA</CountryInitials>
    <TADIGSummaryList>
      <TADIGSummaryItem>
        <TADIGCode>%[1]s</TADIGCode>
        <NetworkProperties><MCC>310</MCC><MNC>410</MNC></NetworkProperties>
      </TADIGSummaryItem>
    </TADIGSummaryList>
  </OrganisationInfo>
</RAEXIR21>`

type recordingPublisher struct {
	mu      sync.Mutex
	records []string
	err     error
}

func (p *recordingPublisher) PublishIngested(_ context.Context, record *models.FileRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, record.ID)
	return p.err
}

type failingStore struct{}

func (failingStore) FindByTADIGCode(context.Context, string) (*models.FileRecord, error) {
	return nil, commons.ErrNotFound
}

func (failingStore) Create(context.Context, *models.FileRecord) error {
	return fmt.Errorf("create record: %w: disk full", commons.ErrPersistenceFailure)
}

// racingStore loses the insert to a concurrent upload of the same code.
type racingStore struct {
	lookups int
}

func (s *racingStore) FindByTADIGCode(context.Context, string) (*models.FileRecord, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, commons.ErrNotFound
	}
	return &models.FileRecord{ID: "winner-id"}, nil
}

func (s *racingStore) Create(context.Context, *models.FileRecord) error {
	return fmt.Errorf("create record: %w", commons.ErrDuplicateRecord)
}

func newStore(t *testing.T) *db.RecordStore {
	t.Helper()
	conn, err := db.Open(db.Config{Dialect: "sqlite", Path: filepath.Join(t.TempDir(), "ingest.db")})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db.NewRecordStore(conn)
}

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "upload-*.xml")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func doc(code, org string) string {
	return fmt.Sprintf(docTemplate, code, org)
}

const fallbackCodeDoc = `<RAEXIR21>
  <OrganisationInfo>
    <OrganisationName>Acme Mobile</OrganisationName>
    <TADIGSummaryList>
      <TADIGSummaryItem>
        <TADIGCode></TADIGCode>
        <NetworkProperties><MCC>310</MCC><MNC>410</MNC></NetworkProperties>
      </TADIGSummaryItem>
    </TADIGSummaryList>
    <NetworkList>
      <Network><TADIGCode>USAAM</TADIGCode><NetworkName>Acme</NetworkName></Network>
    </NetworkList>
  </OrganisationInfo>
</RAEXIR21>`

func TestIngestAcceptsNewDocument(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewService(newStore(t), publisher, nil)
	path := writeArtifact(t, doc("USAAM", "Acme Mobile"))

	result, err := svc.Ingest(context.Background(), path, "acme.xml")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)
	require.NotNil(t, result.Record)
	assert.Equal(t, "USAAM Acme Mobile", result.Record.FileName)
	assert.Equal(t, "United States", *result.Record.CountryName)
	assert.Equal(t, []string{result.Record.ID}, publisher.records)
	assert.NoFileExists(t, path)
}

func TestIngestRejectsSameTADIGCode(t *testing.T) {
	svc := NewService(newStore(t), nil, nil)
	ctx := context.Background()

	first, err := svc.Ingest(ctx, writeArtifact(t, doc("USAAM", "Acme Mobile")), "a.xml")
	require.NoError(t, err)

	path := writeArtifact(t, doc("USAAM", "Acme Renamed"))
	second, err := svc.Ingest(ctx, path, "b.xml")
	require.NoError(t, err)
	assert.Equal(t, StatusDuplicate, second.Status)
	assert.Equal(t, first.Record.ID, second.ExistingID)
	assert.Equal(t, "USAAM", second.TADIGCode)
	assert.Nil(t, second.Record)
	assert.NoFileExists(t, path)
}

func TestIngestStoresDistinctCodes(t *testing.T) {
	store := newStore(t)
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	a, err := svc.Ingest(ctx, writeArtifact(t, doc("USAAM", "Acme")), "a.xml")
	require.NoError(t, err)
	b, err := svc.Ingest(ctx, writeArtifact(t, doc("USAAN", "Acme")), "b.xml")
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, a.Status)
	assert.Equal(t, StatusAccepted, b.Status)
	assert.NotEqual(t, a.Record.ID, b.Record.ID)

	count, err := store.Count(ctx, db.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIngestWithoutCodeSkipsDuplicateCheck(t *testing.T) {
	svc := NewService(newStore(t), nil, nil)
	ctx := context.Background()
	content := `<RAEXIR21><OrganisationInfo><OrganisationName>Nameless</OrganisationName></OrganisationInfo></RAEXIR21>`

	for i := 0; i < 2; i++ {
		result, err := svc.Ingest(ctx, writeArtifact(t, content), "nameless.xml")
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, result.Status)
		assert.Equal(t, "Nameless", result.Record.FileName)
	}
}

func TestIngestMalformedDocument(t *testing.T) {
	svc := NewService(newStore(t), nil, nil)
	path := writeArtifact(t, "<RAEXIR21><OrganisationInfo>")

	result, err := svc.Ingest(context.Background(), path, "broken.xml")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, commons.ErrMalformedDocument)
	assert.NoFileExists(t, path)
}

func TestIngestPersistenceFailureRemovesArtifact(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewService(failingStore{}, publisher, nil)
	path := writeArtifact(t, doc("USAAM", "Acme"))

	result, err := svc.Ingest(context.Background(), path, "acme.xml")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, commons.ErrPersistenceFailure)
	assert.Empty(t, publisher.records)
	assert.NoFileExists(t, path)
}

func TestIngestPublishFailureDoesNotFailIngest(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := NewService(newStore(t), publisher, nil)

	result, err := svc.Ingest(context.Background(), writeArtifact(t, doc("USAAM", "Acme")), "acme.xml")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)
	assert.Len(t, publisher.records, 1)
}

func TestIngestMissingArtifact(t *testing.T) {
	svc := NewService(newStore(t), nil, nil)

	_, err := svc.Ingest(context.Background(), filepath.Join(t.TempDir(), "gone.xml"), "gone.xml")
	assert.ErrorIs(t, err, commons.ErrPersistenceFailure)
}

func TestIngestReportsWinnerOfConcurrentInsert(t *testing.T) {
	store := &racingStore{}
	svc := NewService(store, nil, nil)
	path := writeArtifact(t, doc("USAAM", "Acme"))

	result, err := svc.Ingest(context.Background(), path, "acme.xml")
	require.NoError(t, err)
	assert.Equal(t, StatusDuplicate, result.Status)
	assert.Equal(t, "winner-id", result.ExistingID)
	assert.Equal(t, 2, store.lookups)
	assert.NoFileExists(t, path)
}

func TestIngestWritesAuditLog(t *testing.T) {
	store := newStore(t)
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	accepted, err := svc.Ingest(ctx, writeArtifact(t, doc("USAAM", "Acme")), "a.xml")
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, writeArtifact(t, doc("USAAM", "Acme")), "b.xml")
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, writeArtifact(t, "not xml"), "c.xml")
	require.Error(t, err)

	logs, total, err := store.FindIngestLogs(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 3)

	byFile := map[string]models.IngestLog{}
	for _, entry := range logs {
		byFile[entry.SourceFilename] = entry
	}
	assert.Equal(t, models.OutcomeAccepted, byFile["a.xml"].Outcome)
	assert.Equal(t, accepted.Record.ID, *byFile["a.xml"].FileRecordID)
	assert.Equal(t, models.OutcomeDuplicate, byFile["b.xml"].Outcome)
	assert.Equal(t, accepted.Record.ID, *byFile["b.xml"].FileRecordID)
	assert.Equal(t, "USAAM", *byFile["b.xml"].TADIGCode)
	assert.Equal(t, models.OutcomeMalformed, byFile["c.xml"].Outcome)
	assert.Nil(t, byFile["c.xml"].FileRecordID)
	assert.NotNil(t, byFile["c.xml"].Description)

	summary, err := store.SummarizeIngestLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.IngestOutcome]int64{
		models.OutcomeAccepted:  1,
		models.OutcomeDuplicate: 1,
		models.OutcomeMalformed: 1,
		models.OutcomeFailed:    0,
	}, summary)
}

func TestIngestRejectsRepeatWhenPrimaryCodeFallsBack(t *testing.T) {
	svc := NewService(newStore(t), nil, nil)
	ctx := context.Background()

	first, err := svc.Ingest(ctx, writeArtifact(t, fallbackCodeDoc), "acme.xml")
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, first.Status)

	second, err := svc.Ingest(ctx, writeArtifact(t, fallbackCodeDoc), "acme.xml")
	require.NoError(t, err)
	assert.Equal(t, StatusDuplicate, second.Status)
	assert.Equal(t, first.Record.ID, second.ExistingID)
	assert.Equal(t, "USAAM", second.TADIGCode)
}
