package repomanager

import (
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/clients"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/freelancers"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/indexes"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/jobs"
)

type RepositoryManager interface {
	Store() kv.Store
	Indexes() indexes.Repository
	Freelancers() freelancers.Repository
	Clients() clients.Repository
	Jobs() jobs.Repository
}
