package media

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"guestgallery/models"
)

// MemoryStore keeps assets in process. It backs local development (MEDIA_DRIVER=memory)
// and the tests of the packages that sit on top of the media store.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject
	now     func() time.Time

	// FailUploads makes every upload fail with a rejected UploadError.
	FailUploads bool
}

type memoryObject struct {
	data      []byte
	meta      map[string]string
	createdAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]memoryObject{}, now: time.Now}
}

func (m *MemoryStore) Driver() string { return "memory" }

func (m *MemoryStore) Upload(_ context.Context, asset Asset, folder string) (*models.AssetInfo, error) {
	if err := CheckConstraints(asset.Filename, asset.Size); err != nil {
		return nil, err
	}
	if m.FailUploads {
		return nil, rejected(fmt.Errorf("memory store configured to reject uploads"))
	}
	data, err := io.ReadAll(asset.Body)
	if err != nil {
		return nil, rejected(err)
	}

	key := NewAssetID(folder, asset.Filename)
	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, meta: objectMetadata(asset), createdAt: m.now()}
	m.mu.Unlock()

	return &models.AssetInfo{URL: m.publicURL(key), AssetID: key, OriginalFilename: asset.Filename}, nil
}

func (m *MemoryStore) ListByFolder(_ context.Context, prefix string, maxResults int) ([]Descriptor, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	descriptors := []Descriptor{}
	for _, key := range keys {
		if len(descriptors) >= maxResults {
			break
		}
		obj := m.objects[key]
		descriptors = append(descriptors, Descriptor{
			AssetID:   key,
			URL:       m.publicURL(key),
			Filename:  descriptorFilename(key, obj.meta),
			CreatedAt: obj.createdAt,
			Context:   obj.meta,
		})
	}
	return descriptors, nil
}

func (m *MemoryStore) PresignURL(_ context.Context, assetID string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("%s?expires=%d", m.publicURL(assetID), m.now().Add(ttl).Unix()), nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

// Object returns the stored bytes of an asset.
func (m *MemoryStore) Object(assetID string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[assetID]
	return obj.data, ok
}

func (m *MemoryStore) publicURL(key string) string {
	return "memory://" + key
}
