package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/freelancehub/internal/client/models"
)

const staleNote = "(server unavailable, showing cached data)"

func (a *App) Categories(ctx context.Context) error {
	counts, stale, err := a.marketService.CategoryCounts(ctx)
	if err != nil {
		return err
	}
	if stale {
		fmt.Fprintln(a.out, staleNote)
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(a.out, "%-30s %d\n", name, counts[name])
	}
	return nil
}

func (a *App) Featured(ctx context.Context) error {
	jobs, stale, err := a.marketService.FeaturedJobs(ctx)
	if err != nil {
		return err
	}
	if stale {
		fmt.Fprintln(a.out, staleNote)
	}
	a.printJobs(jobs)
	return nil
}

// MyJobs lists the jobs of the logged-in client, or of a client id entered
// at the prompt when no client session exists.
func (a *App) MyJobs(ctx context.Context) error {
	clientID, err := a.clientID()
	if err != nil {
		return err
	}

	jobs, stale, err := a.marketService.ClientJobs(ctx, clientID)
	if err != nil {
		return err
	}
	if stale {
		fmt.Fprintln(a.out, staleNote)
	}
	a.printJobs(jobs)
	return nil
}

func (a *App) clientID() (string, error) {
	if s := a.currentSession(); s != nil && s.User.UserType == "client" {
		return s.User.ID, nil
	}
	return getSimpleText(a.reader, "Enter client id", a.out)
}

func (a *App) printJobs(jobs []models.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs")
		return
	}
	for _, j := range jobs {
		fmt.Fprintf(a.out, "%s  %-30s %-12s %s\n", j.JobID, j.Title, j.Budget, j.Category)
	}
}
