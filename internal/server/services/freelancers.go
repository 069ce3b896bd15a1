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

type FreelancerService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewFreelancerService(m repomanager.RepositoryManager, logger logging.Logger) *FreelancerService {
	return &FreelancerService{repomanager: m, logger: logger.With("module", "freelancers")}
}

// Register stores a new freelancer profile. The server owns type, status and
// createdAt; the mobile number is copied from the profile into the canonical
// mobileNumber field when the caller did not supply it.
func (s *FreelancerService) Register(ctx context.Context, f *models.Freelancer) error {
	if f.UserID == "" {
		return fmt.Errorf("%w: userId is required", common.ErrorValidation)
	}

	f.Type = models.UserTypeFreelancer
	f.Status = models.StatusActive
	f.CreatedAt = now().UTC()
	if f.Skills == nil {
		f.Skills = []string{}
	}
	if f.Categories == nil {
		f.Categories = []string{}
	}
	if f.Profile == nil {
		f.Profile = models.Profile{}
	}
	if f.MobileNumber == "" {
		f.MobileNumber = f.ProfileMobile()
	}

	if err := s.repomanager.Freelancers().Create(ctx, f); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("freelancer %s %w", f.UserID, err)
		}
		return err
	}

	s.logger.Info(ctx, "freelancer registered", "userId", f.UserID, "categories", len(f.Categories))
	return nil
}

// CategoryCounts returns the member count of every known category.
func (s *FreelancerService) CategoryCounts(ctx context.Context) (map[string]int, error) {
	return s.repomanager.Indexes().CategoryCounts(ctx, models.Categories)
}
