package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/NumaanisCoder/LI-backend/internal/domain/repository"
)

// maxListKeys mirrors the default page size of an S3 ListObjectsV2 call.
const maxListKeys = 1000

// minioClient defines the interface for MinIO operations.
// This abstraction allows for easier unit testing with mocks.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// MinIOConfig holds configuration for the MinIO client.
type MinIOConfig struct {
	Endpoint       string
	PublicEndpoint string // Optional: external-facing endpoint for presigned and public URLs
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

// MinIOClient wraps a MinIO client and implements repository.ObjectStorage.
type MinIOClient struct {
	client          minioClient
	presignedClient minioClient // Separate client for presigned URLs (may use public endpoint)
	bucket          string
	publicBase      string
}

var _ repository.ObjectStorage = (*MinIOClient)(nil)

// NewMinIOClient creates a new MinIO client.
// It verifies the bucket exists during initialization to fail fast on misconfiguration.
// If PublicEndpoint is set, a separate client is created for presigned URL generation.
func NewMinIOClient(ctx context.Context, cfg MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	var presignedClient minioClient = client
	publicEndpoint := cfg.Endpoint
	if cfg.PublicEndpoint != "" {
		pc, err := minio.New(cfg.PublicEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create presigned minio client: %w", err)
		}
		presignedClient = pc
		publicEndpoint = cfg.PublicEndpoint
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return newMinIOClient(ctx, client, presignedClient, cfg.Bucket, scheme+"://"+publicEndpoint)
}

// newMinIOClient creates a MinIOClient with a given minioClient implementation.
// This is used for dependency injection in tests.
func newMinIOClient(ctx context.Context, client, presignedClient minioClient, bucket, publicBase string) (*MinIOClient, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrBucketNotFound, bucket)
	}

	return &MinIOClient{
		client:          client,
		presignedClient: presignedClient,
		bucket:          bucket,
		publicBase:      strings.TrimRight(publicBase, "/"),
	}, nil
}

// Put stores an object with its content type and user metadata.
func (c *MinIOClient) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error {
	_, err := c.client.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// PresignGet creates a presigned URL for downloading an object.
// Uses presignedClient which may be configured with a public endpoint.
func (c *MinIOClient) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presignedURL, err := c.presignedClient.PresignedGetObject(ctx, c.bucket, key, expiry, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return presignedURL.String(), nil
}

// Head returns object attributes and lower-cased user metadata.
func (c *MinIOClient) Head(ctx context.Context, key string) (*repository.ObjectInfo, error) {
	info, err := c.client.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinIONotFound(err) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	metadata := make(map[string]string, len(info.UserMetadata))
	for k, v := range info.UserMetadata {
		metadata[strings.ToLower(k)] = v
	}

	return &repository.ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
		Metadata:     metadata,
	}, nil
}

// Delete removes an object from the storage.
func (c *MinIOClient) Delete(ctx context.Context, key string) error {
	err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if isMinIONotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// List returns at most one S3-sized page of objects under prefix.
func (c *MinIOClient) List(ctx context.Context, prefix string) ([]repository.ObjectInfo, error) {
	// Cancelling stops the listing goroutine once the page is full.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := make([]repository.ObjectInfo, 0)
	for obj := range c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		objects = append(objects, repository.ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
		if len(objects) == maxListKeys {
			break
		}
	}
	return objects, nil
}

// PublicURL returns the path-style address of key on the public endpoint.
func (c *MinIOClient) PublicURL(key string) string {
	return c.publicBase + "/" + c.bucket + "/" + key
}

// Ping verifies the MinIO connection is alive by checking bucket access.
func (c *MinIOClient) Ping(ctx context.Context) error {
	_, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to ping minio: %w", err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (c *MinIOClient) Bucket() string {
	return c.bucket
}

func isMinIONotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
		return true
	}
	var errResp minio.ErrorResponse
	return errors.As(err, &errResp) && errResp.StatusCode == http.StatusNotFound
}
