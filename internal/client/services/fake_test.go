package services

import (
	"context"

	"github.com/dmitrijs2005/freelancehub/internal/client/models"
)

type fakeClient struct {
	err        error
	session    *models.Session
	registered bool
	userType   string
	counts     map[string]int
	featured   []models.Job
	byClient   map[string][]models.Job
	jobID      string
	calls      []string
}

func (f *fakeClient) Health(ctx context.Context) error {
	f.calls = append(f.calls, "health")
	return f.err
}

func (f *fakeClient) Login(ctx context.Context, mobile string, password []byte) (*models.Session, error) {
	f.calls = append(f.calls, "login")
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeClient) CheckMobile(ctx context.Context, mobile string) (bool, string, error) {
	f.calls = append(f.calls, "check")
	return f.registered, f.userType, f.err
}

func (f *fakeClient) CategoryCounts(ctx context.Context) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

func (f *fakeClient) FeaturedJobs(ctx context.Context) ([]models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.featured, nil
}

func (f *fakeClient) ClientJobs(ctx context.Context, clientID string) ([]models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byClient[clientID], nil
}

func (f *fakeClient) RegisterFreelancer(ctx context.Context, fl *models.Freelancer) error {
	f.calls = append(f.calls, "freelancer:"+fl.UserID)
	return f.err
}

func (f *fakeClient) RegisterClient(ctx context.Context, c *models.Client) error {
	f.calls = append(f.calls, "client:"+c.UserID)
	return f.err
}

func (f *fakeClient) PostJob(ctx context.Context, j *models.Job) (string, error) {
	f.calls = append(f.calls, "job:"+j.Title)
	return f.jobID, f.err
}
