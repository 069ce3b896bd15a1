package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/freelancehub/internal/client/models"
	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/ids"
)

type field struct {
	label string
	dst   *string
}

// prompts reads each labelled value in order into its destination.
func (a *App) prompts(fields []field) error {
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.label, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// resolveID fills a blank id with a generated one and rejects typed ids that
// do not have the FL/CL/JB shape.
func resolveID(id *string, kind ids.Kind) error {
	if *id == "" {
		v, err := ids.New(kind)
		if err != nil {
			return err
		}
		*id = v
		return nil
	}
	if !ids.Validate(*id, kind) {
		return fmt.Errorf("%w: %q is not a valid %s id", common.ErrorValidation, *id, kind)
	}
	return nil
}

func (a *App) RegisterFreelancer(ctx context.Context) error {
	var f models.Freelancer
	if err := a.prompts([]field{
		{"User id (blank to generate)", &f.UserID},
		{"Name", &f.Name},
		{"Email", &f.Email},
		{"Mobile number", &f.MobileNumber},
		{"Country", &f.Country},
	}); err != nil {
		return err
	}
	if err := resolveID(&f.UserID, ids.Freelancer); err != nil {
		return err
	}

	var err error
	if f.Skills, err = GetList(a.reader, "Skills", a.out); err != nil {
		return err
	}
	if f.Categories, err = GetList(a.reader, "Categories", a.out); err != nil {
		return err
	}
	if f.Profile, err = GetProfile(a.reader, a.out); err != nil {
		return err
	}

	if err := a.marketService.RegisterFreelancer(ctx, &f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Freelancer %s registered\n", f.UserID)
	return nil
}

func (a *App) RegisterClient(ctx context.Context) error {
	var c models.Client
	if err := a.prompts([]field{
		{"User id (blank to generate)", &c.UserID},
		{"Name", &c.Name},
		{"Email", &c.Email},
		{"Mobile number", &c.MobileNumber},
		{"Country", &c.Country},
		{"Company name", &c.CompanyName},
		{"Business description", &c.BusinessDescription},
	}); err != nil {
		return err
	}
	if err := resolveID(&c.UserID, ids.Client); err != nil {
		return err
	}

	var err error
	if c.Profile, err = GetProfile(a.reader, a.out); err != nil {
		return err
	}

	if err := a.marketService.RegisterClient(ctx, &c); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Client %s registered\n", c.UserID)
	return nil
}

func (a *App) PostJob(ctx context.Context) error {
	var j models.Job

	clientID, err := a.clientID()
	if err != nil {
		return err
	}
	j.ClientID = clientID
	if j.JobID, err = ids.New(ids.Job); err != nil {
		return err
	}

	if err := a.prompts([]field{
		{"Title", &j.Title},
		{"Description", &j.Description},
		{"Budget", &j.Budget},
		{"Timeline", &j.Timeline},
		{"Category", &j.Category},
		{"Location", &j.Location},
		{"Payment type", &j.PaymentType},
	}); err != nil {
		return err
	}

	if j.SkillsRequired, err = GetList(a.reader, "Skills required", a.out); err != nil {
		return err
	}

	id, err := a.marketService.PostJob(ctx, &j)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Job %s posted\n", id)
	return nil
}
