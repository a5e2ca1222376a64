package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockLinkHandler struct {
	mock.Mock
}

func (m *MockLinkHandler) CreateLink(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) GetLink(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) ListLinks(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) DeleteLink(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) GetAnalytics(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) PostAnalytics(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) HealthCheck(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) Metrics(c *gin.Context) {
	m.Called(c)
}

func (m *MockLinkHandler) RateLimitMiddleware() gin.HandlerFunc {
	args := m.Called()
	return args.Get(0).(gin.HandlerFunc)
}

func (m *MockLinkHandler) Close() {
	m.Called()
}
