package usecase

import (
	"context"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/NumaanisCoder/LI-backend/internal/domain/repository"
)

// mockObjectStorage provides a configurable mock for ObjectStorage.
type mockObjectStorage struct {
	putFn        func(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error
	presignGetFn func(ctx context.Context, key string, expiry time.Duration) (string, error)
	headFn       func(ctx context.Context, key string) (*repository.ObjectInfo, error)
	deleteFn     func(ctx context.Context, key string) error
	listFn       func(ctx context.Context, prefix string) ([]repository.ObjectInfo, error)
}

func (m *mockObjectStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error {
	if m.putFn != nil {
		return m.putFn(ctx, key, reader, size, contentType, metadata)
	}
	return nil
}

func (m *mockObjectStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.presignGetFn != nil {
		return m.presignGetFn(ctx, key, expiry)
	}
	return "http://example.com/" + key + "?signature=abc", nil
}

func (m *mockObjectStorage) Head(ctx context.Context, key string) (*repository.ObjectInfo, error) {
	if m.headFn != nil {
		return m.headFn(ctx, key)
	}
	return &repository.ObjectInfo{Key: key}, nil
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockObjectStorage) List(ctx context.Context, prefix string) ([]repository.ObjectInfo, error) {
	if m.listFn != nil {
		return m.listFn(ctx, prefix)
	}
	return nil, nil
}

func (m *mockObjectStorage) PublicURL(key string) string {
	return "https://bucket.s3.region.amazonaws.com/" + key
}

func (m *mockObjectStorage) Ping(ctx context.Context) error {
	return nil
}

// memoryObject is one object held by memoryStorage.
type memoryObject struct {
	body         []byte
	contentType  string
	metadata     map[string]string
	lastModified time.Time
}

// memoryStorage is an in-memory ObjectStorage whose signed URLs can be resolved
// back to object bytes with fetch.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string]memoryObject
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string]memoryObject)}
}

func (m *memoryStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{body: body, contentType: contentType, metadata: metadata, lastModified: time.Now()}
	return nil
}

func (m *memoryStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "mem://bucket/" + url.PathEscape(key) + "?expires=" + expiry.String(), nil
}

func (m *memoryStorage) Head(ctx context.Context, key string) (*repository.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	return &repository.ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.body)),
		ContentType:  obj.contentType,
		LastModified: obj.lastModified,
		Metadata:     obj.metadata,
	}, nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) List(ctx context.Context, prefix string) ([]repository.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var infos []repository.ObjectInfo
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, repository.ObjectInfo{Key: key, Size: int64(len(obj.body)), LastModified: obj.lastModified})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (m *memoryStorage) PublicURL(key string) string {
	return "mem://bucket/" + url.PathEscape(key)
}

func (m *memoryStorage) Ping(ctx context.Context) error {
	return nil
}

// fetch resolves a URL produced by PresignGet or PublicURL to the stored bytes.
func (m *memoryStorage) fetch(rawURL string) ([]byte, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "mem" {
		return nil, false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u.EscapedPath(), "/"))
	if err != nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj.body, ok
}
