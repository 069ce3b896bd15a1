// Package repomanager wires every repository to one shared kv.Store.
package repomanager

import (
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/clients"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/freelancers"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/indexes"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/jobs"
)

// KVRepositoryManager hands out repositories that share one store and one
// index repository.
type KVRepositoryManager struct {
	store       kv.Store
	indexes     *indexes.KVRepository
	freelancers *freelancers.KVRepository
	clients     *clients.KVRepository
	jobs        *jobs.KVRepository
}

// NewKVRepositoryManager constructs a RepositoryManager over store.
func NewKVRepositoryManager(store kv.Store) *KVRepositoryManager {
	idx := indexes.NewKVRepository(store)
	return &KVRepositoryManager{
		store:       store,
		indexes:     idx,
		freelancers: freelancers.NewKVRepository(store, idx),
		clients:     clients.NewKVRepository(store, idx),
		jobs:        jobs.NewKVRepository(store, idx),
	}
}

func (m *KVRepositoryManager) Store() kv.Store                     { return m.store }
func (m *KVRepositoryManager) Indexes() indexes.Repository         { return m.indexes }
func (m *KVRepositoryManager) Freelancers() freelancers.Repository { return m.freelancers }
func (m *KVRepositoryManager) Clients() clients.Repository         { return m.clients }
func (m *KVRepositoryManager) Jobs() jobs.Repository               { return m.jobs }
