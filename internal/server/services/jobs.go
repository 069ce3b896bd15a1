package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/ids"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/repomanager"
)

// DefaultFeaturedLimit is how many featured ids are looked at per request.
const DefaultFeaturedLimit = 10

type JobService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewJobService(m repomanager.RepositoryManager, logger logging.Logger) *JobService {
	return &JobService{repomanager: m, logger: logger.With("module", "jobs")}
}

// Post stores a job and returns its id, generating one when absent.
func (s *JobService) Post(ctx context.Context, j *models.Job) (string, error) {
	if j.JobID == "" {
		j.JobID = ids.FallbackJobID()
	}

	j.Status = models.StatusActive
	j.PostedAt = now().UTC()
	j.Applicants = []string{}
	if j.SkillsRequired == nil {
		j.SkillsRequired = []string{}
	}

	if err := s.repomanager.Jobs().Create(ctx, j); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", fmt.Errorf("job %s %w", j.JobID, err)
		}
		return "", err
	}

	s.logger.Info(ctx, "job posted", "jobId", j.JobID, "clientId", j.ClientID)
	return j.JobID, nil
}

// Featured looks at the first limit ids of the featured list and returns the
// active jobs among them in list order. Missing and inactive jobs are skipped.
func (s *JobService) Featured(ctx context.Context, limit int) ([]*models.Job, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	featured, err := s.repomanager.Indexes().FeaturedJobIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(featured) > limit {
		featured = featured[:limit]
	}

	out := make([]*models.Job, 0, len(featured))
	for _, id := range featured {
		j, err := s.repomanager.Jobs().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, err
		}
		if j.Status != models.StatusActive {
			continue
		}
		out = append(out, j)
	}

	return out, nil
}

func (s *JobService) ByClient(ctx context.Context, clientID string) ([]*models.Job, error) {
	return s.repomanager.Jobs().ListByClient(ctx, clientID)
}
