// Package directory resolves a mobile number to the user that registered it.
//
// Lookups go through the mobile reverse index. When the index has no entry, or
// the entry no longer matches its record, the directory falls back to scanning
// freelancers and then clients in key order, which yields the same winner the
// index tie-break would pick.
package directory

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/clients"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/freelancers"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/indexes"
)

type Directory struct {
	freelancers  freelancers.Repository
	clients      clients.Repository
	indexes      indexes.Repository
	scanFallback bool
	logger       logging.Logger
}

func New(f freelancers.Repository, c clients.Repository, idx indexes.Repository, scanFallback bool, logger logging.Logger) *Directory {
	return &Directory{
		freelancers:  f,
		clients:      c,
		indexes:      idx,
		scanFallback: scanFallback,
		logger:       logger.With("module", "directory"),
	}
}

// FindByMobile returns common.ErrorNotFound when no user has the number.
func (d *Directory) FindByMobile(ctx context.Context, mobile string) (*models.UserRecord, error) {
	if mobile == "" {
		return nil, common.ErrorNotFound
	}

	u, err := d.fromIndex(ctx, mobile)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if !d.scanFallback {
		return nil, common.ErrorNotFound
	}

	d.logger.Debug(ctx, "mobile index miss, scanning", "mobile", mobile)
	return d.scan(ctx, mobile)
}

// MobileExists reports presence and, if present, the owner's user type.
func (d *Directory) MobileExists(ctx context.Context, mobile string) (bool, string, error) {
	u, err := d.FindByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, "", nil
		}
		return false, "", err
	}
	return true, u.UserType, nil
}

func (d *Directory) fromIndex(ctx context.Context, mobile string) (*models.UserRecord, error) {
	e, err := d.indexes.LookupMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}

	switch e.UserType {
	case models.UserTypeFreelancer:
		f, err := d.freelancers.GetByID(ctx, e.UserID)
		if err != nil {
			return nil, err
		}
		if !freelancerHasMobile(f, mobile) {
			return nil, common.ErrorNotFound
		}
		return &models.UserRecord{UserType: models.UserTypeFreelancer, Freelancer: f}, nil

	case models.UserTypeClient:
		c, err := d.clients.GetByID(ctx, e.UserID)
		if err != nil {
			return nil, err
		}
		if !clientHasMobile(c, mobile) {
			return nil, common.ErrorNotFound
		}
		return &models.UserRecord{UserType: models.UserTypeClient, Client: c}, nil
	}

	d.logger.Warn(ctx, "mobile index entry with unknown user type", "mobile", mobile, "userType", e.UserType)
	return nil, common.ErrorNotFound
}

func (d *Directory) scan(ctx context.Context, mobile string) (*models.UserRecord, error) {
	fs, err := d.freelancers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range fs {
		if freelancerHasMobile(f, mobile) {
			return &models.UserRecord{UserType: models.UserTypeFreelancer, Freelancer: f}, nil
		}
	}

	cs, err := d.clients.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cs {
		if clientHasMobile(c, mobile) {
			return &models.UserRecord{UserType: models.UserTypeClient, Client: c}, nil
		}
	}

	return nil, common.ErrorNotFound
}

// A user answers only to its canonical number, the one the index claims. A
// freelancer whose profile carries mobileNo X and mobile M is not found by M,
// so a client registered with M owns it through both the index and the scan.
func freelancerHasMobile(f *models.Freelancer, mobile string) bool {
	return mobile != "" && f.Mobile() == mobile
}

func clientHasMobile(c *models.Client, mobile string) bool {
	return mobile != "" && c.Mobile() == mobile
}
