package mocks

import (
	"context"
	"go-link-shortener/types"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, link types.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockStorage) Get(ctx context.Context, shortCode string) (types.Link, error) {
	args := m.Called(ctx, shortCode)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockStorage) Exists(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context) ([]types.Link, error) {
	args := m.Called(ctx)
	links, _ := args.Get(0).([]types.Link)
	return links, args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}
