package assets

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/feral-file/nft-registry/internal/domain"
)

// ErrNotFound is returned when an asset key does not exist.
var ErrNotFound = errors.New("asset not found")

// SVGContentType is the content type of mintable vector assets.
const SVGContentType = "image/svg+xml"

// Asset is an opaque blob keyed by a string identifier.
type Asset struct {
	Key         string           `json:"key"`
	ContentType string           `json:"content_type"`
	Data        []byte           `json:"data"`
	Description *string          `json:"description,omitempty"`
	UploadedBy  domain.Identity  `json:"uploaded_by"`
	CreatedAt   domain.Timestamp `json:"created_at"`
	ModifiedAt  domain.Timestamp `json:"modified_at"`
}

// Metadata describes an asset without its payload.
type Metadata struct {
	Key         string           `json:"key"`
	ContentType string           `json:"content_type"`
	Size        int              `json:"size"`
	CreatedAt   domain.Timestamp `json:"created_at"`
	ModifiedAt  domain.Timestamp `json:"modified_at"`
	Description *string          `json:"description,omitempty"`
	UploadedBy  domain.Identity  `json:"uploaded_by"`
}

// Meta returns the asset's metadata view.
func (a *Asset) Meta() Metadata {
	return Metadata{
		Key:         a.Key,
		ContentType: a.ContentType,
		Size:        len(a.Data),
		CreatedAt:   a.CreatedAt,
		ModifiedAt:  a.ModifiedAt,
		Description: a.Description,
		UploadedBy:  a.UploadedBy,
	}
}

// Store is the opaque blob store consumed by the registry. Implementations
// must be safe for concurrent use.
type Store interface {
	// Put stores or overwrites an asset.
	Put(ctx context.Context, asset Asset) error
	// Get retrieves an asset by key, ErrNotFound when absent.
	Get(ctx context.Context, key string) (*Asset, error)
	// List returns metadata for all assets in key order.
	List(ctx context.Context) ([]Metadata, error)
	// Delete removes an asset; no-op when absent.
	Delete(ctx context.Context, key string) error
	// Dump returns full copies of all assets in key order, for snapshots.
	Dump(ctx context.Context) ([]Asset, error)
}

// MemoryStore is an in-memory Store, used in tests and as the fallback when
// no database path is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	assets map[string]Asset
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{assets: make(map[string]Asset)}
}

func (s *MemoryStore) Put(_ context.Context, asset Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.Key] = asset
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &asset, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Metadata, 0, len(s.assets))
	for _, asset := range s.assets {
		out = append(out, asset.Meta())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assets, key)
	return nil
}

func (s *MemoryStore) Dump(_ context.Context) ([]Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		out = append(out, asset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
