// Package freelancers persists freelancer profiles under freelancer:<userId>.
package freelancers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/indexes"
)

type KVRepository struct {
	store   kv.Store
	indexes indexes.Repository
}

func NewKVRepository(store kv.Store, idx indexes.Repository) *KVRepository {
	return &KVRepository{store: store, indexes: idx}
}

func (r *KVRepository) Create(ctx context.Context, f *models.Freelancer) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode freelancer: %w", err)
	}

	err = r.store.Update(ctx, Key(f.UserID), func(_ []byte, found bool) ([]byte, error) {
		if found {
			return nil, common.ErrorAlreadyExists
		}
		return raw, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("kv error: %w", err)
	}

	return r.index(ctx, f)
}

func (r *KVRepository) Put(ctx context.Context, f *models.Freelancer) error {
	if err := kv.SetJSON(ctx, r.store, Key(f.UserID), f); err != nil {
		return fmt.Errorf("kv error: %w", err)
	}
	return r.index(ctx, f)
}

func (r *KVRepository) index(ctx context.Context, f *models.Freelancer) error {
	seen := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		if err := r.indexes.AddToCategory(ctx, c, f.UserID); err != nil {
			return err
		}
	}

	return r.indexes.ClaimMobile(ctx, f.Mobile(), models.MobileEntry{
		UserID:   f.UserID,
		UserType: models.UserTypeFreelancer,
	})
}

func (r *KVRepository) GetByID(ctx context.Context, userID string) (*models.Freelancer, error) {
	f, found, err := kv.GetJSON[models.Freelancer](ctx, r.store, Key(userID))
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

// ListAll returns every freelancer in key order.
func (r *KVRepository) ListAll(ctx context.Context) ([]*models.Freelancer, error) {
	recs, err := r.store.GetByPrefix(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}

	items, err := kv.Decode[models.Freelancer](recs)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Freelancer, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
