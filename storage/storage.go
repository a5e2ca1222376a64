// Package storage provides interfaces and common errors for link storage operations.
package storage

import (
	"context"
	"errors"

	"go-link-shortener/types"
)

// Common errors returned by storage operations.
var (
	ErrShortCodeExists        = errors.New("short code already exists")
	ErrLinkNotFound           = errors.New("link not found")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

// Storage interface defines the methods for link storage operations.
type Storage interface {
	Create(ctx context.Context, link types.Link) error
	Get(ctx context.Context, shortCode string) (types.Link, error)
	Exists(ctx context.Context, shortCode string) (bool, error)
	List(ctx context.Context) ([]types.Link, error)
	Delete(ctx context.Context, shortCode string) error
}
