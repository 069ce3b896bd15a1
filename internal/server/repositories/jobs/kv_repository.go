// Package jobs persists job postings under job:<jobId>.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

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

func (r *KVRepository) Create(ctx context.Context, j *models.Job) error {
	raw, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	err = r.store.Update(ctx, Key(j.JobID), func(_ []byte, found bool) ([]byte, error) {
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

	return r.indexes.PushFeaturedJob(ctx, j.JobID)
}

func (r *KVRepository) GetByID(ctx context.Context, jobID string) (*models.Job, error) {
	j, found, err := kv.GetJSON[models.Job](ctx, r.store, Key(jobID))
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return &j, nil
}

func (r *KVRepository) ListAll(ctx context.Context) ([]*models.Job, error) {
	recs, err := r.store.GetByPrefix(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("kv error: %w", err)
	}

	items, err := kv.Decode[models.Job](recs)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Job, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

func (r *KVRepository) ListByClient(ctx context.Context, clientID string) ([]*models.Job, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Job, 0)
	for _, j := range all {
		if j.ClientID == clientID {
			out = append(out, j)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].PostedAt.After(out[b].PostedAt)
	})
	return out, nil
}
