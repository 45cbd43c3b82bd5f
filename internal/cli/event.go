package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/campusevents/internal/models"
	"github.com/dmitrijs2005/campusevents/internal/services"
)

func categoryPrompt() string {
	names := make([]string, 0, 4)
	for _, c := range models.Categories() {
		names = append(names, string(c))
	}
	return "Enter category (" + strings.Join(names, ", ") + ")"
}

// parseListCategory interprets an optional command argument as a filter
// category; no argument means All.
func parseListCategory(args []string) (models.Category, error) {
	if len(args) == 0 || models.Category(args[0]) == models.CategoryAll {
		return models.CategoryAll, nil
	}
	c, ok := models.ParseCategory(args[0])
	if !ok {
		return "", fmt.Errorf("unknown category %q", args[0])
	}
	return c, nil
}

// AddEvent prompts for the listing fields and creates it via the event
// store. Only reachable for admin sessions (enforced by the REPL, and
// backed by the creator id coming from the session itself).
func (a *App) AddEvent(ctx context.Context) error {
	cur := a.accounts.Current()
	if cur == nil || cur.Role != models.RoleAdmin {
		fmt.Fprintln(a.out, "Only admins can add events")
		return nil
	}

	categoryText, err := getSimpleText(a.reader, categoryPrompt(), os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter event name", os.Stdout)
	if err != nil {
		return err
	}
	college, err := getSimpleText(a.reader, "Enter hosting college", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Enter registration deadline (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	venue, err := getSimpleText(a.reader, "Enter venue", os.Stdout)
	if err != nil {
		return err
	}
	regURL, err := getSimpleText(a.reader, "Enter registration link", os.Stdout)
	if err != nil {
		return err
	}
	flyerURL, err := getOptionalText(a.reader, "Enter flyer link", os.Stdout)
	if err != nil {
		return err
	}

	e, err := a.events.Create(ctx, services.CreateEventParams{
		Category:         models.Category(categoryText),
		EventName:        name,
		CollegeName:      college,
		RegistrationDate: date,
		Venue:            venue,
		RegistrationURL:  regURL,
		FlyerURL:         flyerURL,
		CreatedBy:        cur.ID,
	})
	if err != nil {
		fmt.Fprintln(a.out, resultMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Event added successfully (id %s)\n", e.ID)
	return nil
}

// printEvents renders listings one per line.
func (a *App) printEvents(events []models.Event) {
	if len(events) == 0 {
		fmt.Fprintln(a.out, "No events found")
		return
	}
	for _, e := range events {
		fmt.Fprintf(a.out, "%s | %-13s | %s @ %s, %s | register by %s | %s\n",
			e.ID, e.Category, e.EventName, e.CollegeName, e.Venue, e.RegistrationDate, e.RegistrationURL)
	}
}

// List shows listings, optionally filtered by a category argument.
func (a *App) List(args []string) error {
	category, err := parseListCategory(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.printEvents(a.events.ListByCategory(category))
	return nil
}

// Search prompts for a query and shows the matching listings; an optional
// category argument narrows the scope first.
func (a *App) Search(args []string) error {
	category, err := parseListCategory(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	query, err := getSimpleText(a.reader, "Search events, colleges, venues", os.Stdout)
	if err != nil {
		return err
	}

	a.printEvents(a.events.Search(category, query))
	return nil
}

// Stats prints per-category listing counts for the admin dashboard.
func (a *App) Stats() {
	counts := a.events.CountByCategory()
	fmt.Fprintf(a.out, "Total events: %d\n", counts[models.CategoryAll])
	for _, c := range models.Categories() {
		fmt.Fprintf(a.out, "%-13s: %d\n", c, counts[c])
	}
}
