// Package handlers provides HTTP request handlers for the link shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go-link-shortener/config"
	"go-link-shortener/metrics"
	"go-link-shortener/services"
	"go-link-shortener/types"
	"go-link-shortener/utils"
	"go.uber.org/zap"
)

const (
	invalidRequestBody  = "Invalid request body"
	errorCreatingLink   = "Error creating short link"
	errorRetrievingLink = "Error retrieving link"
	errorListingLinks   = "Error listing links"
	errorDeletingLink   = "Error deleting link"
	errorAnalytics      = "Error computing analytics"
	errorTimeout        = "Request timed out"
	storageCapacityFull = "Storage capacity reached"
	shortCodeExists     = "Short code already exists"
	linkNotFound        = "Link not found"
	unknownTimeframe    = "Unknown timeframe, expected today, week or all"
)

// LinkHandlerInterface defines the methods that a link handler should implement.
type LinkHandlerInterface interface {
	CreateLink(c *gin.Context)
	GetLink(c *gin.Context)
	ListLinks(c *gin.Context)
	DeleteLink(c *gin.Context)
	GetAnalytics(c *gin.Context)
	PostAnalytics(c *gin.Context)
	HealthCheck(c *gin.Context)
	Metrics(c *gin.Context)
	RateLimitMiddleware() gin.HandlerFunc
	Close()
}

// handleError is a helper function to handle errors and send appropriate responses
func (h *LinkHandler) handleError(c *gin.Context, err error, customMessages map[error]string) {
	var statusCode int
	var errorMessage string

	switch {
	case errors.Is(err, services.ErrInvalidURL):
		statusCode = http.StatusBadRequest
		errorMessage = services.ErrInvalidURL.Error()
	case errors.Is(err, services.ErrUnknownTimeframe):
		statusCode = http.StatusBadRequest
		errorMessage = unknownTimeframe
	case errors.Is(err, services.ErrShortCodeExists):
		statusCode = http.StatusConflict
		errorMessage = customMessages[services.ErrShortCodeExists]
	case errors.Is(err, services.ErrStorageCapacityReached):
		statusCode = http.StatusInsufficientStorage
		errorMessage = customMessages[services.ErrStorageCapacityReached]
	case errors.Is(err, services.ErrLinkNotFound):
		statusCode = http.StatusNotFound
		errorMessage = customMessages[services.ErrLinkNotFound]
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusRequestTimeout
		errorMessage = customMessages[context.DeadlineExceeded]
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errorMessage = customMessages[nil]
		if errorMessage == "" {
			errorMessage = "Internal server error"
		}
	}

	c.JSON(statusCode, gin.H{"error": errorMessage})
}

// LinkHandler struct holds the dependencies for handling link-related operations.
type LinkHandler struct {
	service  services.LinkService
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics

	done      chan struct{}
	closeOnce sync.Once
}

// Close stops background work started by the handler, such as rate limiter cleanup.
func (h *LinkHandler) Close() {
	h.closeOnce.Do(func() {
		if h.done != nil {
			close(h.done)
		}
	})
}

// NewValidator returns a validator with the httpurl tag registered.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return utils.IsHTTPURL(fl.Field().String())
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// NewLinkHandler creates and returns a new LinkHandler instance.
// m may be nil, in which case nothing is recorded and /metrics answers 404.
func NewLinkHandler(ctx context.Context, service services.LinkService, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (LinkHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.RateLimit <= 0 || cfg.RatePeriod <= 0 {
		return nil, errors.New("invalid rate limit configuration")
	}

	validate, err := NewValidator()
	if err != nil {
		return nil, err
	}

	handler := &LinkHandler{
		service:  service,
		validate: validate,
		config:   cfg,
		logger:   logger,
		metrics:  m,
		done:     make(chan struct{}),
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// CreateLink handles a link submission.
// It validates the URL, synthesizes the link record and stores it.
func (h *LinkHandler) CreateLink(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	var input types.LinkRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.logger.Info("Rejected link submission", zap.Error(err), zap.String("url", input.URL))
		h.metrics.SubmissionRejected()
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrInvalidURL.Error()})
		return
	}

	link, err := h.service.CreateLink(ctx, input)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrShortCodeExists:        shortCodeExists,
			services.ErrStorageCapacityReached: storageCapacityFull,
			context.DeadlineExceeded:           errorTimeout,
			nil:                                errorCreatingLink,
		})
		return
	}

	c.JSON(http.StatusCreated, link)
}

// GetLink returns the stored record for a short code.
// It does not redirect and does not count a click.
func (h *LinkHandler) GetLink(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	shortCode := c.Param("short_code")

	link, err := h.service.GetLink(ctx, shortCode)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrLinkNotFound: linkNotFound,
			context.DeadlineExceeded: errorTimeout,
			nil:                      errorRetrievingLink,
		})
		return
	}

	c.JSON(http.StatusOK, link)
}

// ListLinks returns every stored link in creation order.
func (h *LinkHandler) ListLinks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	links, err := h.service.ListLinks(ctx)
	if err != nil {
		h.handleError(c, err, map[error]string{
			context.DeadlineExceeded: errorTimeout,
			nil:                      errorListingLinks,
		})
		return
	}
	if links == nil {
		links = []types.Link{}
	}

	c.JSON(http.StatusOK, types.ListResponse{Links: links, Count: len(links)})
}

// DeleteLink removes a link.
// It returns 204 No Content on success.
func (h *LinkHandler) DeleteLink(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	shortCode := c.Param("short_code")

	err := h.service.DeleteLink(ctx, shortCode)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrLinkNotFound: linkNotFound,
			context.DeadlineExceeded: errorTimeout,
			nil:                      errorDeletingLink,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
