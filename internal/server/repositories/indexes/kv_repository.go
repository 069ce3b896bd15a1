package indexes

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
)

// KVRepository stores every index as a JSON value and mutates it only through
// kv.Store.Update, so concurrent writers never lose each other's entries.
type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

// AddToCategory appends the id unless it is already a member.
func (r *KVRepository) AddToCategory(ctx context.Context, category, freelancerID string) error {
	err := kv.UpdateJSON(ctx, r.store, CategoryKey(category), func(ids []string, _ bool) ([]string, error) {
		if slices.Contains(ids, freelancerID) {
			return nil, kv.ErrSkip
		}
		if ids == nil {
			ids = []string{}
		}
		return append(ids, freelancerID), nil
	})
	if err != nil {
		return fmt.Errorf("kv error: %w", err)
	}
	return nil
}

func (r *KVRepository) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	ids, _, err := kv.GetJSON[[]string](ctx, r.store, CategoryKey(category))
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// CategoryCounts reports the index length for each category, 0 when absent.
func (r *KVRepository) CategoryCounts(ctx context.Context, categories []string) (map[string]int, error) {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		ids, err := r.CategoryMembers(ctx, c)
		if err != nil {
			return nil, err
		}
		counts[c] = len(ids)
	}
	return counts, nil
}

// PushFeaturedJob puts the id at the head of the featured list and truncates
// the list to FeaturedJobsCap.
func (r *KVRepository) PushFeaturedJob(ctx context.Context, jobID string) error {
	err := kv.UpdateJSON(ctx, r.store, FeaturedJobsKey, func(ids []string, _ bool) ([]string, error) {
		next := make([]string, 0, min(len(ids)+1, FeaturedJobsCap))
		next = append(next, jobID)
		for _, id := range ids {
			if len(next) == FeaturedJobsCap {
				break
			}
			next = append(next, id)
		}
		return next, nil
	})
	if err != nil {
		return fmt.Errorf("kv error: %w", err)
	}
	return nil
}

func (r *KVRepository) FeaturedJobIDs(ctx context.Context) ([]string, error) {
	ids, _, err := kv.GetJSON[[]string](ctx, r.store, FeaturedJobsKey)
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// outranks reports whether a should own a mobile number currently held by b.
// Freelancers win over clients; within a type the smaller id wins.
func outranks(a, b models.MobileEntry) bool {
	if a.UserType != b.UserType {
		return a.UserType == models.UserTypeFreelancer
	}
	return a.UserID < b.UserID
}

// ClaimMobile points mobile at entry unless a higher ranked user holds it.
func (r *KVRepository) ClaimMobile(ctx context.Context, mobile string, entry models.MobileEntry) error {
	if mobile == "" {
		return nil
	}

	err := kv.UpdateJSON(ctx, r.store, MobileKey(mobile), func(cur models.MobileEntry, found bool) (models.MobileEntry, error) {
		if found && (cur == entry || !outranks(entry, cur)) {
			return cur, kv.ErrSkip
		}
		return entry, nil
	})
	if err != nil {
		return fmt.Errorf("kv error: %w", err)
	}
	return nil
}

func (r *KVRepository) LookupMobile(ctx context.Context, mobile string) (*models.MobileEntry, error) {
	if mobile == "" {
		return nil, common.ErrorNotFound
	}

	e, found, err := kv.GetJSON[models.MobileEntry](ctx, r.store, MobileKey(mobile))
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return &e, nil
}

// ReleaseMobile removes the mapping if, and only if, it still points at entry.
// The comparison and the delete are one atomic step.
func (r *KVRepository) ReleaseMobile(ctx context.Context, mobile string, entry models.MobileEntry) error {
	if mobile == "" {
		return nil
	}

	err := kv.UpdateJSON(ctx, r.store, MobileKey(mobile), func(cur models.MobileEntry, found bool) (models.MobileEntry, error) {
		if !found || cur != entry {
			return cur, kv.ErrSkip
		}
		return cur, kv.ErrDelete
	})
	if err != nil {
		return fmt.Errorf("kv error: %w", err)
	}
	return nil
}

func (r *KVRepository) ListMobiles(ctx context.Context) (map[string]models.MobileEntry, error) {
	recs, err := r.store.GetByPrefix(ctx, MobilePrefix)
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}

	entries, err := kv.Decode[models.MobileEntry](recs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.MobileEntry, len(recs))
	for i, rec := range recs {
		out[strings.TrimPrefix(rec.Key, MobilePrefix)] = entries[i]
	}
	return out, nil
}
