package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
	"github.com/hadir-app/hadir-api/pkg/jobs"
	"github.com/hadir-app/hadir-api/pkg/storage"
)

type memoryReportStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryReportStore() *memoryReportStore {
	return &memoryReportStore{files: make(map[string][]byte)}
}

func (m *memoryReportStore) Save(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return name, nil
}

func (m *memoryReportStore) Open(name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryReportStore) Prune(retention time.Duration) ([]string, error) {
	return nil, nil
}

func (m *memoryReportStore) has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

func newArchiveFixture(t *testing.T) (*ArchiveService, *memoryReportStore) {
	t.Helper()
	store := newMemoryReportStore()
	signer := storage.NewTokenSigner("secret", time.Hour)
	svc := NewArchiveService(store, signer, zap.NewNop(), ArchiveServiceConfig{})
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return svc, store
}

func TestArchiveServiceRoundTrip(t *testing.T) {
	svc, store := newArchiveFixture(t)

	result := &ExportResult{
		Content:     []byte("Name,Present\nBudi,20\n"),
		ContentType: "text/csv",
		Filename:    "attendance-report-2026-01.csv",
	}
	token, err := svc.Archive(result)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.Eventually(t, func() bool {
		return store.has(result.Filename)
	}, time.Second, 10*time.Millisecond)

	file, contentType, name, err := svc.Open(token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	assert.Equal(t, "attendance-report-2026-01.csv", name)
	assert.Equal(t, "text/csv", contentType)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, result.Content, content)
}

func TestArchiveServiceRejectsBadToken(t *testing.T) {
	svc, _ := newArchiveFixture(t)

	_, _, _, err := svc.Open("not-a-token")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestArchiveServiceMissingFile(t *testing.T) {
	store := newMemoryReportStore()
	signer := storage.NewTokenSigner("secret", time.Hour)
	svc := NewArchiveService(store, signer, zap.NewNop(), ArchiveServiceConfig{})

	token, _, err := signer.Sign("never-archived.pdf")
	require.NoError(t, err)

	_, _, _, err = svc.Open(token)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestArchiveServiceRequiresRunningQueue(t *testing.T) {
	store := newMemoryReportStore()
	signer := storage.NewTokenSigner("secret", time.Hour)
	svc := NewArchiveService(store, signer, zap.NewNop(), ArchiveServiceConfig{})

	_, err := svc.Archive(&ExportResult{Filename: "report.csv"})
	require.Error(t, err)
}

func TestArchiveServiceIgnoresForeignPayload(t *testing.T) {
	svc, store := newArchiveFixture(t)

	err := svc.handleJob(context.Background(), jobs.Job{ID: "j1", Kind: "archive-report", Payload: "bogus"})
	require.NoError(t, err)
	assert.Empty(t, store.files)
}
