package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/freelancehub/internal/client/client"
	"github.com/dmitrijs2005/freelancehub/internal/client/models"
	"github.com/dmitrijs2005/freelancehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarket_ReadsFallBackToCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		counts:   map[string]int{"Design": 2},
		featured: []models.Job{{JobID: "JB000001", Title: "Logo"}},
		byClient: map[string][]models.Job{"CL1": {{JobID: "JB000002", ClientID: "CL1"}}},
	}
	svc := NewMarketService(fc, newCache(t), logging.Discard())

	counts, stale, err := svc.CategoryCounts(ctx)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, 2, counts["Design"])

	_, _, err = svc.FeaturedJobs(ctx)
	require.NoError(t, err)
	_, _, err = svc.ClientJobs(ctx, "CL1")
	require.NoError(t, err)

	fc.err = client.ErrUnavailable

	counts, stale, err = svc.CategoryCounts(ctx)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, map[string]int{"Design": 2}, counts)

	jobs, stale, err := svc.FeaturedJobs(ctx)
	require.NoError(t, err)
	assert.True(t, stale)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Logo", jobs[0].Title)

	jobs, stale, err = svc.ClientJobs(ctx, "CL1")
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, "JB000002", jobs[0].JobID)

	_, _, err = svc.ClientJobs(ctx, "CL2")
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
	assert.ErrorIs(t, err, client.ErrUnavailable)
}

func TestMarket_APIErrorIsNotMasked(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{featured: []models.Job{{JobID: "JB000001"}}}
	svc := NewMarketService(fc, newCache(t), logging.Discard())
	_, _, err := svc.FeaturedJobs(ctx)
	require.NoError(t, err)

	apiErr := &client.APIError{StatusCode: 500, Message: "Failed to fetch featured jobs"}
	fc.err = apiErr
	_, stale, err := svc.FeaturedJobs(ctx)
	assert.False(t, stale)
	assert.True(t, errors.Is(err, apiErr))
}

func TestMarket_Writes(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{jobID: "JB000007"}
	svc := NewMarketService(fc, newCache(t), logging.Discard())

	require.NoError(t, svc.RegisterFreelancer(ctx, &models.Freelancer{UserID: "FL1"}))
	require.NoError(t, svc.RegisterClient(ctx, &models.Client{UserID: "CL1"}))
	id, err := svc.PostJob(ctx, &models.Job{Title: "Logo"})
	require.NoError(t, err)
	assert.Equal(t, "JB000007", id)
	assert.Equal(t, []string{"freelancer:FL1", "client:CL1", "job:Logo"}, fc.calls)
}

type failingSetCache struct {
	metadata.Repository
	err error
}

func (c failingSetCache) Set(ctx context.Context, key string, value []byte) error {
	return c.err
}

func TestMarket_CacheWriteFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	fc := &fakeClient{featured: []models.Job{{JobID: "JB000001", Title: "Logo"}}}
	cache := failingSetCache{Repository: newCache(t), err: errors.New("disk full")}
	svc := NewMarketService(fc, cache, logging.New("warn", "json", &buf))

	jobs, stale, err := svc.FeaturedJobs(ctx)
	require.NoError(t, err)
	assert.False(t, stale)
	require.Len(t, jobs, 1)

	assert.Contains(t, buf.String(), `"msg":"cache write failed"`)
	assert.Contains(t, buf.String(), `"key":"featured_jobs"`)
	assert.Contains(t, buf.String(), "disk full")
}
