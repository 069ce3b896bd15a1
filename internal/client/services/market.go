package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/freelancehub/internal/client/client"
	"github.com/dmitrijs2005/freelancehub/internal/client/models"
	"github.com/dmitrijs2005/freelancehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
)

const (
	featuredKey   = "featured_jobs"
	categoriesKey = "categories"
)

func clientJobsKey(clientID string) string { return "client_jobs:" + clientID }

// MarketService covers the marketplace endpoints. Read calls that reach the
// server refresh the cache; when the server is unavailable they answer from
// the cache and report stale=true.
type MarketService interface {
	CategoryCounts(ctx context.Context) (counts map[string]int, stale bool, err error)
	FeaturedJobs(ctx context.Context) (jobs []models.Job, stale bool, err error)
	ClientJobs(ctx context.Context, clientID string) (jobs []models.Job, stale bool, err error)
	RegisterFreelancer(ctx context.Context, f *models.Freelancer) error
	RegisterClient(ctx context.Context, c *models.Client) error
	PostJob(ctx context.Context, j *models.Job) (string, error)
}

type marketService struct {
	client client.Client
	cache  metadata.Repository
	logger logging.Logger
}

func NewMarketService(c client.Client, cache metadata.Repository, logger logging.Logger) MarketService {
	return &marketService{client: c, cache: cache, logger: logger}
}

// cached runs fetch and stores its result under key. On ErrUnavailable it
// decodes the cached copy into out instead. A failed cache write is logged
// and the fresh value is still returned.
func cached[T any](ctx context.Context, s *marketService, key string, fetch func() (T, error)) (T, bool, error) {
	cache := s.cache
	v, err := fetch()
	if err == nil {
		data, mErr := json.Marshal(v)
		if mErr == nil {
			mErr = cache.Set(ctx, key, data)
		}
		if mErr != nil {
			s.logger.Warn(ctx, "cache write failed", "key", key, "error", mErr)
		}
		return v, false, nil
	}

	var zero T
	if !errors.Is(err, client.ErrUnavailable) {
		return zero, false, err
	}

	data, cErr := cache.Get(ctx, key)
	if cErr != nil {
		return zero, false, cErr
	}
	if data == nil {
		return zero, false, fmt.Errorf("%w: %w", client.ErrLocalDataNotAvailable, err)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, false, fmt.Errorf("%w: %v", client.ErrLocalDataNotAvailable, err)
	}
	return out, true, nil
}

func (s *marketService) CategoryCounts(ctx context.Context) (map[string]int, bool, error) {
	return cached(ctx, s, categoriesKey, func() (map[string]int, error) {
		return s.client.CategoryCounts(ctx)
	})
}

func (s *marketService) FeaturedJobs(ctx context.Context) ([]models.Job, bool, error) {
	return cached(ctx, s, featuredKey, func() ([]models.Job, error) {
		return s.client.FeaturedJobs(ctx)
	})
}

func (s *marketService) ClientJobs(ctx context.Context, clientID string) ([]models.Job, bool, error) {
	return cached(ctx, s, clientJobsKey(clientID), func() ([]models.Job, error) {
		return s.client.ClientJobs(ctx, clientID)
	})
}

func (s *marketService) RegisterFreelancer(ctx context.Context, f *models.Freelancer) error {
	return s.client.RegisterFreelancer(ctx, f)
}

func (s *marketService) RegisterClient(ctx context.Context, c *models.Client) error {
	return s.client.RegisterClient(ctx, c)
}

func (s *marketService) PostJob(ctx context.Context, j *models.Job) (string, error) {
	return s.client.PostJob(ctx, j)
}
