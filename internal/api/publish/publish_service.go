package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-content/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

const DefaultRetention = 24 * time.Hour

// ErrNotFound is returned for unknown or expired publications.
var ErrNotFound = errors.New("publication not found")

var _ PublishService = (*PublishServiceImpl)(nil)

// PublishService simulates publishing. Nothing leaves the process.
type PublishService interface {
	Publish(ctx context.Context, req types.PublishRequest) (*types.Publication, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Publication, error)
}

type PublishServiceImpl struct {
	logger    *slog.Logger
	store     *cache.Cache
	retention time.Duration
	metrics   *metrics.AppMetrics
	now       func() time.Time
}

func NewPublishService(retention time.Duration, appMetrics *metrics.AppMetrics, logger *slog.Logger) *PublishServiceImpl {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &PublishServiceImpl{
		logger:    logger,
		store:     cache.New(retention, time.Hour),
		retention: retention,
		metrics:   appMetrics,
		now:       time.Now,
	}
}

func (s *PublishServiceImpl) Publish(ctx context.Context, req types.PublishRequest) (*types.Publication, error) {
	ctx, span := otel.Tracer("PublishService").Start(ctx, "Publish", trace.WithAttributes(
		attribute.Int("request.platforms", len(req.Platforms)),
	))
	defer span.End()

	if err := validatePublish(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	now := s.now().UTC()
	pub := &types.Publication{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Platforms:   req.Platforms,
		Status:      types.PublicationSimulated,
		PublishedAt: now,
		ExpiresAt:   now.Add(s.retention),
	}
	s.store.Set(pub.ID.String(), pub, cache.DefaultExpiration)

	for _, p := range pub.Platforms {
		s.metrics.PublicationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("platform", string(p))))
	}
	s.logger.InfoContext(ctx, "Simulated publication stored",
		slog.String("publication_id", pub.ID.String()),
		slog.Int("platforms", len(pub.Platforms)))
	span.SetAttributes(attribute.String("publication.id", pub.ID.String()))
	span.SetStatus(codes.Ok, "Publication stored")
	return pub, nil
}

func (s *PublishServiceImpl) Get(ctx context.Context, id uuid.UUID) (*types.Publication, error) {
	_, span := otel.Tracer("PublishService").Start(ctx, "Get", trace.WithAttributes(
		attribute.String("publication.id", id.String()),
	))
	defer span.End()

	v, found := s.store.Get(id.String())
	if !found {
		span.SetStatus(codes.Error, "Not found")
		return nil, ErrNotFound
	}
	span.SetStatus(codes.Ok, "Publication found")
	return v.(*types.Publication), nil
}

func validatePublish(req types.PublishRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return &types.ValidationError{Field: "content", Message: "is required"}
	}
	if len(req.Platforms) == 0 {
		return &types.ValidationError{Field: "platforms", Message: "at least one platform is required"}
	}
	for _, p := range req.Platforms {
		if !p.Valid() {
			return &types.ValidationError{Field: "platforms", Message: fmt.Sprintf("unsupported platform %q", p)}
		}
	}
	return nil
}
