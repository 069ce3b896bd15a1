package services

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/clients"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/freelancers"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/indexes"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/repomanager"
)

// dumpPrefixes lists the key families shown by AllData, in output order.
var dumpPrefixes = []string{
	freelancers.Prefix,
	clients.Prefix,
	jobs.Prefix,
	"category:",
	indexes.FeaturedJobsKey,
	"next_id:",
	indexes.MobilePrefix,
}

type DemoAccount struct {
	Type   string `json:"type"`
	Mobile string `json:"mobile"`
	Name   string `json:"name"`
}

// DemoOutcome describes what InitDemoData did. When Created is false the
// store already held users and nothing was written.
type DemoOutcome struct {
	Created  bool
	Accounts []DemoAccount

	Reason            string
	Freelancers       int
	Clients           int
	FreelancerMobiles []string
	ClientMobiles     []string
}

// MobileInfo is one row of the mobile-check debug listing.
type MobileInfo struct {
	Type        string   `json:"type"`
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Mobile      string   `json:"mobile"`
	ProfileKeys []string `json:"profileKeys"`
}

type DebugService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewDebugService(m repomanager.RepositoryManager, logger logging.Logger) *DebugService {
	return &DebugService{repomanager: m, logger: logger.With("module", "debug")}
}

// AllData dumps every application record grouped by key family.
func (s *DebugService) AllData(ctx context.Context) ([]kv.Record, error) {
	store := s.repomanager.Store()

	out := make([]kv.Record, 0)
	for _, p := range dumpPrefixes {
		recs, err := store.GetByPrefix(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

var demoAccounts = []DemoAccount{
	{Type: models.UserTypeFreelancer, Mobile: "9876543210", Name: "Demo Freelancer"},
	{Type: models.UserTypeClient, Mobile: "9876543211", Name: "Demo Client"},
}

func demoFreelancer() *models.Freelancer {
	return &models.Freelancer{
		UserID:     "FL000001",
		Name:       "Demo Freelancer",
		Email:      "freelancer@demo.com",
		Country:    "india",
		Skills:     []string{"React", "Node.js", "JavaScript"},
		Categories: []string{"Development & IT"},
		Profile: models.Profile{
			"mobileNo":    "9876543210",
			"briefAbout":  "Experienced web developer specializing in React and Node.js",
			"experience":  "3+ years",
			"dateOfBirth": "1990-01-01",
			"address":     "Demo Address",
			"city":        "Mumbai",
			"state":       "Maharashtra",
			"pincode":     "400001",
			"panNo":       "ABCDE1234F",
			"aadhaarNo":   "123456789012",
		},
		Type:         models.UserTypeFreelancer,
		CreatedAt:    now().UTC(),
		Status:       models.StatusActive,
		MobileNumber: "9876543210",
	}
}

func demoClient() *models.Client {
	return &models.Client{
		UserID:              "CL000001",
		Name:                "Demo Client",
		Email:               "client@demo.com",
		Country:             "india",
		CompanyName:         "Demo Company",
		BusinessDescription: "Tech startup looking for talented developers",
		Profile: models.Profile{
			"mobile":              "9876543211",
			"businessDescription": "Tech startup looking for talented developers",
			"expertiseNeeded":     "Web Development",
			"address":             "Demo Address",
			"city":                "Delhi",
			"state":               "Delhi",
			"pincode":             "110001",
		},
		Type:         models.UserTypeClient,
		CreatedAt:    now().UTC(),
		Status:       models.StatusActive,
		MobileNumber: "9876543211",
	}
}

// InitDemoData seeds one freelancer and one client unless any user exists.
func (s *DebugService) InitDemoData(ctx context.Context) (*DemoOutcome, error) {
	fs, err := s.repomanager.Freelancers().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := s.repomanager.Clients().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(fs) > 0 || len(cs) > 0 {
		out := &DemoOutcome{Freelancers: len(fs), Clients: len(cs)}
		if len(fs) > 0 {
			out.Reason = "freelancers found"
			out.FreelancerMobiles = make([]string, 0, len(fs))
			for _, f := range fs {
				out.FreelancerMobiles = append(out.FreelancerMobiles, f.Mobile())
			}
		} else {
			out.Reason = "clients found"
			out.ClientMobiles = make([]string, 0, len(cs))
			for _, c := range cs {
				out.ClientMobiles = append(out.ClientMobiles, c.Mobile())
			}
		}
		s.logger.Info(ctx, "demo data already exists", "freelancers", len(fs), "clients", len(cs))
		return out, nil
	}

	if err := s.repomanager.Freelancers().Create(ctx, demoFreelancer()); err != nil {
		return nil, err
	}
	if err := s.repomanager.Clients().Create(ctx, demoClient()); err != nil {
		return nil, err
	}

	// kept for key-layout compatibility; nothing reads these counters
	store := s.repomanager.Store()
	for _, key := range []string{"next_id:freelancer", "next_id:client"} {
		if err := kv.SetJSON(ctx, store, key, 2); err != nil {
			return nil, err
		}
	}

	s.logger.Info(ctx, "demo data created")
	return &DemoOutcome{Created: true, Accounts: demoAccounts}, nil
}

// ForceDemoData overwrites the demo users unconditionally.
func (s *DebugService) ForceDemoData(ctx context.Context) ([]DemoAccount, error) {
	if err := s.repomanager.Freelancers().Put(ctx, demoFreelancer()); err != nil {
		return nil, err
	}
	if err := s.repomanager.Clients().Put(ctx, demoClient()); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "demo data force created")
	return demoAccounts, nil
}

// MobileCheck lists every user with the mobile number the directory sees.
func (s *DebugService) MobileCheck(ctx context.Context) ([]MobileInfo, error) {
	fs, err := s.repomanager.Freelancers().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := s.repomanager.Clients().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MobileInfo, 0, len(fs)+len(cs))
	for _, f := range fs {
		out = append(out, MobileInfo{
			Type:        models.UserTypeFreelancer,
			Key:         freelancers.Key(f.UserID),
			Name:        f.Name,
			Mobile:      f.Mobile(),
			ProfileKeys: sortedKeys(f.Profile),
		})
	}
	for _, c := range cs {
		out = append(out, MobileInfo{
			Type:        models.UserTypeClient,
			Key:         clients.Key(c.UserID),
			Name:        c.Name,
			Mobile:      c.Mobile(),
			ProfileKeys: sortedKeys(c.Profile),
		})
	}
	return out, nil
}

func sortedKeys(p models.Profile) []string {
	keys := p.Keys()
	sort.Strings(keys)
	return keys
}
