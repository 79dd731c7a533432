package service

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
	"github.com/hadir-app/hadir-api/pkg/jobs"
)

type reportStore interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (io.ReadCloser, error)
	Prune(retention time.Duration) ([]string, error)
}

type tokenSigner interface {
	Sign(name string) (string, time.Time, error)
	Verify(token string) (string, time.Time, error)
}

// ArchiveServiceConfig tunes archive retention.
type ArchiveServiceConfig struct {
	Retention     time.Duration
	PruneInterval time.Duration
}

// ArchiveService keeps rendered reports on disk so they can be fetched
// again through signed links. Writes happen off the request path on a
// worker queue; a background loop prunes files past retention.
type ArchiveService struct {
	store  reportStore
	signer tokenSigner
	queue  *jobs.Queue
	logger *zap.Logger
	cfg    ArchiveServiceConfig

	cancel context.CancelFunc
	done   chan struct{}
}

// NewArchiveService constructs the archive service.
func NewArchiveService(store reportStore, signer tokenSigner, logger *zap.Logger, cfg ArchiveServiceConfig) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = time.Hour
	}
	s := &ArchiveService{store: store, signer: signer, logger: logger, cfg: cfg}
	s.queue = jobs.NewQueue("report-archive", s.handleJob, jobs.Options{Workers: 1, Logger: logger})
	return s
}

// Start launches the archive workers and the retention loop.
func (s *ArchiveService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.queue.Start(ctx)
	go s.pruneLoop(ctx)
}

// Stop drains the workers and stops the retention loop.
func (s *ArchiveService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.queue.Stop()
	if s.done != nil {
		<-s.done
	}
}

// Archive schedules the rendered report for storage and returns a signed
// download token for it.
func (s *ArchiveService) Archive(result *ExportResult) (string, error) {
	token, _, err := s.signer.Sign(result.Filename)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	job := jobs.Job{
		ID:      uuid.NewString(),
		Kind:    "archive-report",
		Payload: &ExportResult{Content: result.Content, ContentType: result.ContentType, Filename: result.Filename},
	}
	if err := s.queue.Enqueue(job); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule archive write")
	}
	return token, nil
}

// Open validates the token and returns the archived file along with its
// content type and name.
func (s *ArchiveService) Open(token string) (io.ReadCloser, string, string, error) {
	name, _, err := s.signer.Verify(token)
	if err != nil {
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, "invalid or expired download token")
	}
	file, err := s.store.Open(name)
	if err != nil {
		return nil, "", "", appErrors.Clone(appErrors.ErrNotFound, "archived report not found")
	}
	return file, contentTypeFor(name), name, nil
}

func contentTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func (s *ArchiveService) handleJob(_ context.Context, job jobs.Job) error {
	result, ok := job.Payload.(*ExportResult)
	if !ok {
		s.logger.Error("unexpected archive payload", zap.String("job_id", job.ID))
		return nil
	}
	if _, err := s.store.Save(result.Filename, result.Content); err != nil {
		return err
	}
	s.logger.Info("report archived", zap.String("file", result.Filename))
	return nil
}

func (s *ArchiveService) pruneLoop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.cfg.PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.store.Prune(s.cfg.Retention)
			if err != nil {
				s.logger.Warn("archive prune failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				s.logger.Info("archive pruned", zap.Int("removed", len(removed)))
			}
		}
	}
}
