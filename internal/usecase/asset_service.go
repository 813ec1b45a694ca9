package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NumaanisCoder/LI-backend/internal/domain/model"
	"github.com/NumaanisCoder/LI-backend/internal/domain/repository"
	"github.com/NumaanisCoder/LI-backend/internal/infrastructure/metrics"
)

// UploadVideoOutput contains the result of storing a plain asset.
type UploadVideoOutput struct {
	Key      string
	Location string
}

// UploadAudioOutput contains the result of storing an identified asset.
type UploadAudioOutput struct {
	Asset     model.Asset
	CreatedAt time.Time
}

// AssetService defines the signed-asset operations exposed over HTTP.
type AssetService interface {
	// UploadVideo stores a plain asset under {unixMillis}-{fileName} and returns its public URL.
	UploadVideo(ctx context.Context, upload *model.Upload) (*UploadVideoOutput, error)

	// ListVideos returns every object in the bucket with a freshly signed URL.
	// Any failure aborts the whole listing.
	ListVideos(ctx context.Context) ([]model.Asset, error)

	// UploadAudio stores an identified asset under audio/{identifier} and signs it.
	UploadAudio(ctx context.Context, upload *model.Upload) (*UploadAudioOutput, error)

	// ListAudio returns identified assets with recovered names and signed URLs.
	// Objects whose metadata cannot be fetched are omitted.
	ListAudio(ctx context.Context) ([]model.Asset, error)

	// GetAudio returns one identified asset with a signed URL.
	// Returns repository.ErrObjectNotFound if the identifier is unknown.
	GetAudio(ctx context.Context, id string) (*model.Asset, error)

	// DeleteAudio removes an identified asset. Unknown identifiers succeed.
	DeleteAudio(ctx context.Context, id string) error
}

// AssetServiceConfig holds configuration for AssetService.
type AssetServiceConfig struct {
	SignedURLExpiry time.Duration
	// ListConcurrency bounds per-object storage calls in list operations.
	ListConcurrency int
	Now             func() time.Time
	NewID           func() uuid.UUID
}

// DefaultAssetServiceConfig returns the default configuration.
func DefaultAssetServiceConfig() AssetServiceConfig {
	return AssetServiceConfig{
		SignedURLExpiry: time.Hour,
		ListConcurrency: 16,
		Now:             time.Now,
		NewID:           uuid.New,
	}
}

type assetService struct {
	storage repository.ObjectStorage

	signedURLExpiry time.Duration
	listConcurrency int
	now             func() time.Time
	newID           func() uuid.UUID
}

// NewAssetService creates a new AssetService instance.
func NewAssetService(storage repository.ObjectStorage, cfg AssetServiceConfig) AssetService {
	defaults := DefaultAssetServiceConfig()
	if cfg.SignedURLExpiry <= 0 {
		cfg.SignedURLExpiry = defaults.SignedURLExpiry
	}
	if cfg.ListConcurrency <= 0 {
		cfg.ListConcurrency = defaults.ListConcurrency
	}
	if cfg.Now == nil {
		cfg.Now = defaults.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = defaults.NewID
	}

	return &assetService{
		storage:         storage,
		signedURLExpiry: cfg.SignedURLExpiry,
		listConcurrency: cfg.ListConcurrency,
		now:             cfg.Now,
		newID:           cfg.NewID,
	}
}

// UploadVideo stores the payload publicly addressable under a timestamped key.
func (s *assetService) UploadVideo(ctx context.Context, upload *model.Upload) (*UploadVideoOutput, error) {
	if upload == nil {
		return nil, model.ErrMissingFile
	}

	key := model.PlainKey(s.now(), upload.FileName)

	if err := s.storage.Put(ctx, key, bytes.NewReader(upload.Body), upload.Size, upload.ContentType, nil); err != nil {
		return nil, fmt.Errorf("put video: %w", err)
	}
	metrics.UploadSizeBytes.WithLabelValues(model.KindVideo.String()).Observe(float64(upload.Size))

	return &UploadVideoOutput{
		Key:      key,
		Location: s.storage.PublicURL(key),
	}, nil
}

// ListVideos enumerates the bucket root and signs every object concurrently.
func (s *assetService) ListVideos(ctx context.Context) ([]model.Asset, error) {
	objects, err := s.storage.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	assets := make([]model.Asset, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.listConcurrency)

	for i, obj := range objects {
		g.Go(func() error {
			signedURL, err := s.storage.PresignGet(gctx, obj.Key, s.signedURLExpiry)
			if err != nil {
				return fmt.Errorf("sign %s: %w", obj.Key, err)
			}
			assets[i] = model.Asset{
				Key:          obj.Key,
				Name:         obj.Key,
				URL:          signedURL,
				Size:         obj.Size,
				LastModified: obj.LastModified,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// UploadAudio stores the payload under an opaque identifier and keeps the original
// file name as object metadata.
func (s *assetService) UploadAudio(ctx context.Context, upload *model.Upload) (*UploadAudioOutput, error) {
	if upload == nil {
		return nil, model.ErrMissingFile
	}

	id := model.NewAudioIdentifier(s.now(), s.newID(), upload.FileName)
	key := model.AudioKey(id)
	metadata := map[string]string{model.OriginalNameKey: upload.FileName}

	if err := s.storage.Put(ctx, key, bytes.NewReader(upload.Body), upload.Size, upload.ContentType, metadata); err != nil {
		return nil, fmt.Errorf("put audio: %w", err)
	}
	metrics.UploadSizeBytes.WithLabelValues(model.KindAudio.String()).Observe(float64(upload.Size))

	signedURL, err := s.storage.PresignGet(ctx, key, s.signedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign audio: %w", err)
	}

	return &UploadAudioOutput{
		Asset: model.Asset{
			Key:  key,
			ID:   id,
			Name: upload.FileName,
			URL:  signedURL,
			Type: upload.ContentType,
			Size: upload.Size,
		},
		CreatedAt: s.now(),
	}, nil
}

// ListAudio enumerates the audio prefix, recovering names and signing concurrently.
// Enumeration order is preserved for the surviving objects.
func (s *assetService) ListAudio(ctx context.Context) ([]model.Asset, error) {
	objects, err := s.storage.List(ctx, model.AudioPrefix)
	if err != nil {
		return nil, fmt.Errorf("list audio: %w", err)
	}

	slots := make([]*model.Asset, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.listConcurrency)

	for i, obj := range objects {
		g.Go(func() error {
			info, err := s.storage.Head(gctx, obj.Key)
			if err != nil {
				// A cancelled listing drops nothing.
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				slog.WarnContext(gctx, "dropping object from audio listing",
					"key", obj.Key,
					"error", err,
				)
				metrics.ListDroppedObjectsTotal.Inc()
				return nil
			}

			signedURL, err := s.storage.PresignGet(gctx, obj.Key, s.signedURLExpiry)
			if err != nil {
				return fmt.Errorf("sign %s: %w", obj.Key, err)
			}

			id := model.TrailingSegment(obj.Key)
			slots[i] = &model.Asset{
				Key:          obj.Key,
				ID:           id,
				Name:         model.DisplayName(info.Metadata, id),
				URL:          signedURL,
				Type:         model.Extension(obj.Key),
				Size:         obj.Size,
				LastModified: obj.LastModified,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	assets := make([]model.Asset, 0, len(slots))
	for _, a := range slots {
		if a != nil {
			assets = append(assets, *a)
		}
	}
	return assets, nil
}

// GetAudio resolves the display name from metadata and signs the object.
func (s *assetService) GetAudio(ctx context.Context, id string) (*model.Asset, error) {
	if id == "" {
		return nil, model.ErrEmptyIdentifier
	}

	key := model.AudioKey(id)
	info, err := s.storage.Head(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("head audio: %w", err)
	}

	signedURL, err := s.storage.PresignGet(ctx, key, s.signedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign audio: %w", err)
	}

	return &model.Asset{
		Key:          key,
		ID:           id,
		Name:         model.DisplayName(info.Metadata, id),
		URL:          signedURL,
		Size:         info.Size,
		Type:         info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

// DeleteAudio removes audio/{id} without checking for existence first.
func (s *assetService) DeleteAudio(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrEmptyIdentifier
	}

	if err := s.storage.Delete(ctx, model.AudioKey(id)); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil
		}
		return fmt.Errorf("delete audio: %w", err)
	}
	return nil
}
