// Package indexes maintains the denormalized lists and lookups kept beside the
// entity records: category membership, the featured jobs list and the mobile
// number reverse index.
package indexes

import (
	"context"

	"github.com/dmitrijs2005/freelancehub/internal/server/models"
)

const (
	FeaturedJobsKey = "featured_jobs"
	// FeaturedJobsCap bounds the featured list; older ids are truncated.
	FeaturedJobsCap = 20

	MobilePrefix = "mobile:"
)

func CategoryKey(category string) string {
	return "category:" + category + ":freelancers"
}

func MobileKey(mobile string) string {
	return MobilePrefix + mobile
}

type Repository interface {
	AddToCategory(ctx context.Context, category, freelancerID string) error
	CategoryMembers(ctx context.Context, category string) ([]string, error)
	CategoryCounts(ctx context.Context, categories []string) (map[string]int, error)

	PushFeaturedJob(ctx context.Context, jobID string) error
	FeaturedJobIDs(ctx context.Context) ([]string, error)

	ClaimMobile(ctx context.Context, mobile string, entry models.MobileEntry) error
	LookupMobile(ctx context.Context, mobile string) (*models.MobileEntry, error)
	ReleaseMobile(ctx context.Context, mobile string, entry models.MobileEntry) error
	ListMobiles(ctx context.Context) (map[string]models.MobileEntry, error)
}
