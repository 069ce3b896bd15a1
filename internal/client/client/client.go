package client

import (
	"context"

	"github.com/dmitrijs2005/freelancehub/internal/client/models"
)

type Client interface {
	Health(ctx context.Context) error
	Login(ctx context.Context, mobile string, password []byte) (*models.Session, error)
	CheckMobile(ctx context.Context, mobile string) (bool, string, error)
	CategoryCounts(ctx context.Context) (map[string]int, error)
	FeaturedJobs(ctx context.Context) ([]models.Job, error)
	ClientJobs(ctx context.Context, clientID string) ([]models.Job, error)
	RegisterFreelancer(ctx context.Context, f *models.Freelancer) error
	RegisterClient(ctx context.Context, c *models.Client) error
	PostJob(ctx context.Context, j *models.Job) (string, error)
}
