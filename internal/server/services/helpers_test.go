package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/config"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/directory"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/repomanager"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func freezeTime(t *testing.T) {
	t.Helper()
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return fixedNow }
}

type env struct {
	store       kv.Store
	rm          *repomanager.KVRepositoryManager
	dir         *directory.Directory
	freelancers *FreelancerService
	clients     *ClientService
	jobs        *JobService
	auth        *AuthService
	debug       *DebugService
}

func newEnv(t *testing.T, store kv.Store) *env {
	t.Helper()
	if store == nil {
		store = kv.NewMemoryStore()
	}
	log := logging.Discard()
	rm := repomanager.NewKVRepositoryManager(store)
	dir := directory.New(rm.Freelancers(), rm.Clients(), rm.Indexes(), true, log)
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}

	return &env{
		store:       store,
		rm:          rm,
		dir:         dir,
		freelancers: NewFreelancerService(rm, log),
		clients:     NewClientService(rm, log),
		jobs:        NewJobService(rm, log),
		auth:        NewAuthService(dir, cfg, log),
		debug:       NewDebugService(rm, log),
	}
}
