package directory

import (
	"context"
	"errors"
	"slices"

	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/server/models"
)

// ReindexReport summarizes one Reindex pass.
type ReindexReport struct {
	Freelancers     int
	Clients         int
	MobilesClaimed  int
	MobilesReleased int
	CategoryAdds    int
	// Mobiles is the number of distinct numbers indexed after the pass.
	Mobiles         int
	CategorySizes   map[string]int
}

// Reindex repairs the mobile and category indexes from a full scan. It only
// adds missing category members, never removes them, and drops mobile entries
// whose user is gone or no longer carries the number.
func (d *Directory) Reindex(ctx context.Context) (*ReindexReport, error) {
	fs, err := d.freelancers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := d.clients.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rep := &ReindexReport{
		Freelancers:   len(fs),
		Clients:       len(cs),
		CategorySizes: make(map[string]int),
	}

	owners := make(map[models.MobileEntry]string, len(fs)+len(cs))

	for _, f := range fs {
		e := models.MobileEntry{UserID: f.UserID, UserType: models.UserTypeFreelancer}
		if m := f.Mobile(); m != "" {
			owners[e] = m
			if err := d.indexes.ClaimMobile(ctx, m, e); err != nil {
				return nil, err
			}
			rep.MobilesClaimed++
		}

		for _, c := range f.Categories {
			members, err := d.indexes.CategoryMembers(ctx, c)
			if err != nil {
				return nil, err
			}
			if slices.Contains(members, f.UserID) {
				continue
			}
			if err := d.indexes.AddToCategory(ctx, c, f.UserID); err != nil {
				return nil, err
			}
			rep.CategoryAdds++
		}
	}

	for _, c := range cs {
		e := models.MobileEntry{UserID: c.UserID, UserType: models.UserTypeClient}
		if m := c.Mobile(); m != "" {
			owners[e] = m
			if err := d.indexes.ClaimMobile(ctx, m, e); err != nil {
				return nil, err
			}
			rep.MobilesClaimed++
		}
	}

	mobiles, err := d.indexes.ListMobiles(ctx)
	if err != nil {
		return nil, err
	}
	released := make(map[string]bool)
	for mobile, e := range mobiles {
		if owners[e] == mobile {
			continue
		}
		// the user may have registered after the ListAll snapshot
		cur, err := d.currentMobile(ctx, e)
		if err != nil {
			return nil, err
		}
		if cur == mobile {
			owners[e] = mobile
			continue
		}
		if err := d.indexes.ReleaseMobile(ctx, mobile, e); err != nil {
			return nil, err
		}
		released[mobile] = true
		rep.MobilesReleased++
	}

	// a stale entry may have shadowed a lower ranked but valid owner
	if len(released) > 0 {
		for e, m := range owners {
			if !released[m] {
				continue
			}
			if err := d.indexes.ClaimMobile(ctx, m, e); err != nil {
				return nil, err
			}
		}
	}

	distinct := make(map[string]struct{}, len(owners))
	for _, m := range owners {
		distinct[m] = struct{}{}
	}
	rep.Mobiles = len(distinct)

	counts, err := d.indexes.CategoryCounts(ctx, models.Categories)
	if err != nil {
		return nil, err
	}
	rep.CategorySizes = counts

	d.logger.Info(ctx, "reindex complete",
		"freelancers", rep.Freelancers,
		"clients", rep.Clients,
		"mobilesReleased", rep.MobilesReleased,
		"categoryAdds", rep.CategoryAdds,
	)

	return rep, nil
}

// currentMobile reads the number e's record carries now, or "" when the
// record is gone.
func (d *Directory) currentMobile(ctx context.Context, e models.MobileEntry) (string, error) {
	var (
		m   string
		err error
	)
	switch e.UserType {
	case models.UserTypeFreelancer:
		var f *models.Freelancer
		if f, err = d.freelancers.GetByID(ctx, e.UserID); err == nil {
			m = f.Mobile()
		}
	case models.UserTypeClient:
		var c *models.Client
		if c, err = d.clients.GetByID(ctx, e.UserID); err == nil {
			m = c.Mobile()
		}
	}
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	return m, err
}
