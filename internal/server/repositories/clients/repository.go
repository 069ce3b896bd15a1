package clients

import (
	"context"

	"github.com/dmitrijs2005/freelancehub/internal/server/models"
)

const Prefix = "client:"

func Key(userID string) string {
	return Prefix + userID
}

type Repository interface {
	Create(ctx context.Context, c *models.Client) error
	Put(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, userID string) (*models.Client, error)
	ListAll(ctx context.Context) ([]*models.Client, error)
}
