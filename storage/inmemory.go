package storage

import (
	"context"
	"sync"

	"go-link-shortener/types"
	"go.uber.org/zap"
)

// InMemoryStorage implements the Storage interface using an in-memory map.
// Contents are lost when the process exits.
type InMemoryStorage struct {
	links    map[string]types.Link // short code to link
	order    []string              // short codes in creation order
	mu       sync.RWMutex
	capacity int
	logger   *zap.Logger
}

// NewInMemoryStorage creates and returns a new InMemoryStorage instance
func NewInMemoryStorage(capacity int, logger *zap.Logger) *InMemoryStorage {
	if capacity <= 0 {
		capacity = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStorage{
		links:    make(map[string]types.Link),
		capacity: capacity,
		logger:   logger,
	}
}

// Create adds a new link keyed by its short code.
func (s *InMemoryStorage) Create(ctx context.Context, link types.Link) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Create operation cancelled", zap.String("shortCode", link.ShortCode))
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[link.ShortCode]; exists {
		s.logger.Warn("Attempt to create duplicate short code", zap.String("shortCode", link.ShortCode))
		return ErrShortCodeExists
	}
	if len(s.links) >= s.capacity {
		s.logger.Error("Storage capacity reached. Cannot create link", zap.String("shortCode", link.ShortCode))
		return ErrStorageCapacityReached
	}

	s.links[link.ShortCode] = link
	s.order = append(s.order, link.ShortCode)
	s.logger.Info("Link created",
		zap.String("shortCode", link.ShortCode),
		zap.String("originalURL", link.OriginalURL),
		zap.Time("createdAt", link.CreatedAt))
	return nil
}

// Get retrieves the link for a short code.
func (s *InMemoryStorage) Get(ctx context.Context, shortCode string) (types.Link, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("Get operation cancelled", zap.String("shortCode", shortCode))
		return types.Link{}, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	link, exists := s.links[shortCode]
	if !exists {
		return types.Link{}, ErrLinkNotFound
	}
	s.logger.Debug("Link retrieved", zap.String("shortCode", shortCode))
	return link, nil
}

// Exists reports whether a short code is already stored.
func (s *InMemoryStorage) Exists(ctx context.Context, shortCode string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.links[shortCode]
	return exists, nil
}

// List returns a copy of all links in creation order.
func (s *InMemoryStorage) List(ctx context.Context) ([]types.Link, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("List operation cancelled")
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]types.Link, 0, len(s.order))
	for _, code := range s.order {
		links = append(links, s.links[code])
	}
	return links, nil
}

// Delete removes a link by short code.
func (s *InMemoryStorage) Delete(ctx context.Context, shortCode string) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Delete operation cancelled", zap.String("shortCode", shortCode))
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[shortCode]; !exists {
		s.logger.Warn("Attempt to delete non-existent short code", zap.String("shortCode", shortCode))
		return ErrLinkNotFound
	}

	delete(s.links, shortCode)
	for i, code := range s.order {
		if code == shortCode {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Info("Link deleted", zap.String("shortCode", shortCode))
	return nil
}

// Len returns the number of stored links.
func (s *InMemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}
