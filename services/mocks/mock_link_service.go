package mocks

import (
	"context"
	"go-link-shortener/types"

	"github.com/stretchr/testify/mock"
)

// MockLinkService is a mock LinkService interface
type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) CreateLink(ctx context.Context, req types.LinkRequest) (types.Link, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockLinkService) GetLink(ctx context.Context, shortCode string) (types.Link, error) {
	args := m.Called(ctx, shortCode)
	return args.Get(0).(types.Link), args.Error(1)
}

func (m *MockLinkService) ListLinks(ctx context.Context) ([]types.Link, error) {
	args := m.Called(ctx)
	links, _ := args.Get(0).([]types.Link)
	return links, args.Error(1)
}

func (m *MockLinkService) DeleteLink(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

func (m *MockLinkService) Analytics(ctx context.Context, tf types.Timeframe) (types.Summary, error) {
	args := m.Called(ctx, tf)
	return args.Get(0).(types.Summary), args.Error(1)
}

func (m *MockLinkService) Summarize(ctx context.Context, links []types.AnalyticsLink, tf types.Timeframe) (types.Summary, error) {
	args := m.Called(ctx, links, tf)
	return args.Get(0).(types.Summary), args.Error(1)
}
