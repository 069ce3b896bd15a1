// Package clients persists client profiles under client:<userId>.
package clients

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

// Create is create-if-absent; an existing id yields common.ErrorAlreadyExists.
func (r *KVRepository) Create(ctx context.Context, c *models.Client) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode client: %w", err)
	}

	err = r.store.Update(ctx, Key(c.UserID), func(_ []byte, found bool) ([]byte, error) {
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

	return r.claimMobile(ctx, c)
}

func (r *KVRepository) Put(ctx context.Context, c *models.Client) error {
	if err := kv.SetJSON(ctx, r.store, Key(c.UserID), c); err != nil {
		return fmt.Errorf("kv error: %w", err)
	}
	return r.claimMobile(ctx, c)
}

func (r *KVRepository) claimMobile(ctx context.Context, c *models.Client) error {
	return r.indexes.ClaimMobile(ctx, c.Mobile(), models.MobileEntry{
		UserID:   c.UserID,
		UserType: models.UserTypeClient,
	})
}

func (r *KVRepository) GetByID(ctx context.Context, userID string) (*models.Client, error) {
	c, found, err := kv.GetJSON[models.Client](ctx, r.store, Key(userID))
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *KVRepository) ListAll(ctx context.Context) ([]*models.Client, error) {
	recs, err := r.store.GetByPrefix(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}

	items, err := kv.Decode[models.Client](recs)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Client, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
