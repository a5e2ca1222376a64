package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-link-shortener/analytics"
	"go-link-shortener/form"
	"go-link-shortener/metrics"
	"go-link-shortener/storage"
	"go-link-shortener/types"
	"go-link-shortener/urlgen"
	"go-link-shortener/utils"
)

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrShortCodeExists):
		return ErrShortCodeExists
	case errors.Is(err, storage.ErrStorageCapacityReached):
		return ErrStorageCapacityReached
	case errors.Is(err, storage.ErrLinkNotFound):
		return ErrLinkNotFound
	default:
		return err
	}
}

var (
	ErrShortCodeExists        = errors.New("short code already exists")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
	ErrLinkNotFound           = errors.New("link not found")
	ErrInvalidURL             = utils.ErrInvalidURL
	ErrUnknownTimeframe       = analytics.ErrUnknownTimeframe
)

type LinkService interface {
	CreateLink(ctx context.Context, req types.LinkRequest) (types.Link, error)
	GetLink(ctx context.Context, shortCode string) (types.Link, error)
	ListLinks(ctx context.Context) ([]types.Link, error)
	DeleteLink(ctx context.Context, shortCode string) error
	Analytics(ctx context.Context, tf types.Timeframe) (types.Summary, error)
	Summarize(ctx context.Context, links []types.AnalyticsLink, tf types.Timeframe) (types.Summary, error)
}

// maxCreateAttempts bounds how often a generated code is redrawn after losing a race on Create.
const maxCreateAttempts = 3

// Option configures a link service.
type Option func(*linkService)

// WithClock replaces time.Now as the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *linkService) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString for link identifiers.
func WithIDGenerator(newID func() string) Option {
	return func(s *linkService) { s.newID = newID }
}

// WithCodeGenerator replaces urlgen.GenerateUnique.
func WithCodeGenerator(gen func(taken func(string) bool) (string, error)) Option {
	return func(s *linkService) { s.generate = gen }
}

// WithMetrics records created links and analytics computations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *linkService) { s.metrics = m }
}

type linkService struct {
	store    storage.Storage
	baseURL  string
	now      func() time.Time
	newID    func() string
	generate func(taken func(string) bool) (string, error)
	metrics  *metrics.Metrics
}

func NewLinkService(store storage.Storage, baseURL string, opts ...Option) LinkService {
	if baseURL == "" {
		baseURL = form.DefaultBaseURL
	}
	s := &linkService{
		store:    store,
		baseURL:  baseURL,
		now:      time.Now,
		newID:    uuid.NewString,
		generate: urlgen.GenerateUnique,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *linkService) CreateLink(ctx context.Context, req types.LinkRequest) (types.Link, error) {
	if err := utils.ValidateURL(req.URL); err != nil {
		return types.Link{}, err
	}

	id := s.newID()
	expiry := utils.ExpiryOrDefault(string(req.ExpiryMinutes))

	for attempt := 1; ; attempt++ {
		code := req.CustomCode
		if code == "" {
			generated, err := s.generateCode(ctx)
			if err != nil {
				return types.Link{}, err
			}
			code = generated
		}

		link := form.NewLink(id, req.URL, code, s.baseURL, expiry, s.now())

		err := s.store.Create(ctx, link)
		if err == nil {
			s.metrics.LinkCreated()
			return link, nil
		}
		// A generated code can be taken between the Exists check and Create.
		if req.CustomCode == "" && errors.Is(err, storage.ErrShortCodeExists) {
			if attempt < maxCreateAttempts {
				continue
			}
			return types.Link{}, urlgen.ErrCodeSpaceExhausted
		}
		return types.Link{}, handleStorageError(err)
	}
}

// generateCode returns a code the store does not hold yet.
// It stops at the first lookup failure.
func (s *linkService) generateCode(ctx context.Context) (string, error) {
	var lookupErr error
	code, err := s.generate(func(c string) bool {
		taken, err := s.store.Exists(ctx, c)
		if err != nil {
			lookupErr = err
			return false
		}
		return taken
	})
	if lookupErr != nil {
		return "", handleStorageError(lookupErr)
	}
	return code, err
}

func (s *linkService) GetLink(ctx context.Context, shortCode string) (types.Link, error) {
	link, err := s.store.Get(ctx, shortCode)
	if err != nil {
		return types.Link{}, handleStorageError(err)
	}
	return link, nil
}

func (s *linkService) ListLinks(ctx context.Context) ([]types.Link, error) {
	links, err := s.store.List(ctx)
	if err != nil {
		return nil, handleStorageError(err)
	}
	return links, nil
}

func (s *linkService) DeleteLink(ctx context.Context, shortCode string) error {
	if err := s.store.Delete(ctx, shortCode); err != nil {
		return handleStorageError(err)
	}
	return nil
}

// Analytics summarizes the stored links.
func (s *linkService) Analytics(ctx context.Context, tf types.Timeframe) (types.Summary, error) {
	links, err := s.store.List(ctx)
	if err != nil {
		return types.Summary{}, handleStorageError(err)
	}
	return s.Summarize(ctx, analytics.FromLinks(links), tf)
}

// Summarize aggregates a collection supplied by the caller.
func (s *linkService) Summarize(ctx context.Context, links []types.AnalyticsLink, tf types.Timeframe) (types.Summary, error) {
	if err := ctx.Err(); err != nil {
		return types.Summary{}, err
	}
	tf = analytics.Normalize(tf)
	summary := analytics.Compute(links, tf, s.now())
	s.metrics.AnalyticsComputed(string(tf))
	return summary, nil
}
