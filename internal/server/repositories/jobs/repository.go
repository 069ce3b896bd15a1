package jobs

import (
	"context"

	"github.com/dmitrijs2005/freelancehub/internal/server/models"
)

const Prefix = "job:"

func Key(jobID string) string {
	return Prefix + jobID
}

type Repository interface {
	// Create stores a new job and pushes it onto the featured list.
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, jobID string) (*models.Job, error)
	ListAll(ctx context.Context) ([]*models.Job, error)
	// ListByClient returns the client's jobs, newest first.
	ListByClient(ctx context.Context, clientID string) ([]*models.Job, error)
}
