package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/NumaanisCoder/LI-backend/internal/domain/repository"
	"github.com/NumaanisCoder/LI-backend/internal/infrastructure/metrics"
)

// instrumentedStorage wraps repository.ObjectStorage with Prometheus metrics.
type instrumentedStorage struct {
	next repository.ObjectStorage
}

// Instrument returns next wrapped with operation counters and latency histograms.
func Instrument(next repository.ObjectStorage) repository.ObjectStorage {
	return &instrumentedStorage{next: next}
}

func (s *instrumentedStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error {
	start := time.Now()
	err := s.next.Put(ctx, key, reader, size, contentType, metadata)
	observe(metrics.StorageOpPut, start, err)
	return err
}

func (s *instrumentedStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	start := time.Now()
	u, err := s.next.PresignGet(ctx, key, expiry)
	observe(metrics.StorageOpPresign, start, err)
	return u, err
}

func (s *instrumentedStorage) Head(ctx context.Context, key string) (*repository.ObjectInfo, error) {
	start := time.Now()
	info, err := s.next.Head(ctx, key)
	observe(metrics.StorageOpHead, start, err)
	return info, err
}

func (s *instrumentedStorage) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	observe(metrics.StorageOpDelete, start, err)
	return err
}

func (s *instrumentedStorage) List(ctx context.Context, prefix string) ([]repository.ObjectInfo, error) {
	start := time.Now()
	objects, err := s.next.List(ctx, prefix)
	observe(metrics.StorageOpList, start, err)
	return objects, err
}

func (s *instrumentedStorage) PublicURL(key string) string {
	return s.next.PublicURL(key)
}

func (s *instrumentedStorage) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func observe(operation string, start time.Time, err error) {
	metrics.StorageOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	status := metrics.StorageStatusSuccess
	switch {
	case errors.Is(err, repository.ErrObjectNotFound):
		status = metrics.StorageStatusNotFound
	case err != nil:
		status = metrics.StorageStatusError
	}
	metrics.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
}
