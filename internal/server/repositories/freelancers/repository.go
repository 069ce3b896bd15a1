package freelancers

import (
	"context"

	"github.com/dmitrijs2005/freelancehub/internal/server/models"
)

const Prefix = "freelancer:"

func Key(userID string) string {
	return Prefix + userID
}

type Repository interface {
	// Create stores a new freelancer, failing with common.ErrorAlreadyExists
	// when the id is taken, then adds the id to its category indexes and
	// claims its mobile number.
	Create(ctx context.Context, f *models.Freelancer) error
	// Put overwrites unconditionally and maintains the same indexes.
	Put(ctx context.Context, f *models.Freelancer) error
	GetByID(ctx context.Context, userID string) (*models.Freelancer, error)
	ListAll(ctx context.Context) ([]*models.Freelancer, error)
}
