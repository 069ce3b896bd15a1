package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/repomanager"
)

type ClientService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewClientService(m repomanager.RepositoryManager, logger logging.Logger) *ClientService {
	return &ClientService{repomanager: m, logger: logger.With("module", "clients")}
}

func (s *ClientService) Register(ctx context.Context, c *models.Client) error {
	if c.UserID == "" {
		return fmt.Errorf("%w: userId is required", common.ErrorValidation)
	}

	c.Type = models.UserTypeClient
	c.Status = models.StatusActive
	c.CreatedAt = now().UTC()
	if c.Profile == nil {
		c.Profile = models.Profile{}
	}
	if c.MobileNumber == "" {
		c.MobileNumber = c.ProfileMobile()
	}

	if err := s.repomanager.Clients().Create(ctx, c); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("client %s %w", c.UserID, err)
		}
		return err
	}

	s.logger.Info(ctx, "client registered", "userId", c.UserID)
	return nil
}
