package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/ticketapp/internal/client/models"
	"github.com/dmitrijs2005/ticketapp/internal/client/router"
	"github.com/dmitrijs2005/ticketapp/internal/common"
)

const recentTickets = 5

// enter navigates to path through the guard and makes the resulting route
// current. A guard redirect is reported as errLoginRequired.
func (a *App) enter(ctx context.Context, path string) (router.Route, error) {
	rt, redirected, err := a.router.Navigate(ctx, path)
	if err != nil {
		return router.Route{}, err
	}

	a.current = rt
	if redirected {
		a.logger.Info(ctx, "navigation redirected", "from", path, "to", rt.Path)
		return rt, errLoginRequired
	}
	return rt, nil
}

// Go navigates to path and shows the view found there.
func (a *App) Go(ctx context.Context, path string) error {
	rt, err := a.enter(ctx, path)
	if errors.Is(err, errLoginRequired) {
		a.printf("Redirected to %s\n", rt.Path)
		return err
	}
	if err != nil {
		return err
	}

	switch rt.Name {
	case router.Login.Name:
		return a.loginView(ctx)
	case router.Signup.Name:
		return a.signupView(ctx)
	case router.Dashboard.Name:
		return a.dashboardView(ctx)
	case router.Tickets.Name:
		return a.ticketsView(ctx, "")
	default:
		a.home()
		return nil
	}
}

func (a *App) home() {
	a.println(titleStyle.Render("T I C K E T A P P"))
	a.println(mutedStyle.Render("Track support tickets from your terminal."))
	if !a.isLoggedIn() {
		a.println("Type 'signup' to create an account or 'login' to sign in. 'help' lists all commands.")
	}
}

// Dashboard shows ticket counters and the most recently updated tickets.
func (a *App) Dashboard(ctx context.Context) error {
	if _, err := a.enter(ctx, router.Dashboard.Path); err != nil {
		return err
	}
	return a.dashboardView(ctx)
}

func (a *App) dashboardView(ctx context.Context) error {
	tickets, err := a.storage.ListTickets(ctx)
	if err != nil {
		a.logger.Error(ctx, "list tickets", "error", err)
		return err
	}

	name := "there"
	if u, ok := a.auth.CurrentUser(); ok {
		name = u.Name
	}
	a.println(titleStyle.Render("Dashboard"))
	a.printf("Hello, %s!\n\n", name)

	st := summarize(tickets)
	a.printf("Total: %d\n", st.total)
	for _, s := range models.Statuses {
		a.printf("  %s %d\n", renderStatus(s), st.byStatus[s])
	}
	a.printf("Unresolved high priority: %d\n", st.urgent)

	if len(tickets) == 0 {
		return nil
	}

	recent := slices.Clone(tickets)
	slices.SortStableFunc(recent, func(x, y models.Ticket) int {
		return y.UpdatedAt.Compare(x.UpdatedAt)
	})
	if len(recent) > recentTickets {
		recent = recent[:recentTickets]
	}

	a.println()
	a.println(mutedStyle.Render("Recently updated"))
	a.println(ticketTable(recent))
	return nil
}

type summary struct {
	total    int
	byStatus map[models.Status]int
	urgent   int
}

func summarize(tickets []models.Ticket) summary {
	s := summary{total: len(tickets), byStatus: make(map[models.Status]int, len(models.Statuses))}
	for _, t := range tickets {
		s.byStatus[t.Status]++
		if t.Status != models.StatusClosed && t.Priority == models.PriorityHigh {
			s.urgent++
		}
	}
	return s
}

// Tickets lists tickets, optionally only those with the given status.
func (a *App) Tickets(ctx context.Context, status string) error {
	if _, err := a.enter(ctx, router.Tickets.Path); err != nil {
		return err
	}
	return a.ticketsView(ctx, status)
}

func (a *App) ticketsView(ctx context.Context, status string) error {
	filter := models.Status(strings.ToLower(status))
	if filter != "" && !filter.Valid() {
		return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}

	tickets, err := a.storage.ListTickets(ctx)
	if err != nil {
		a.logger.Error(ctx, "list tickets", "error", err)
		return err
	}

	if filter != "" {
		tickets = slices.DeleteFunc(tickets, func(t models.Ticket) bool { return t.Status != filter })
	}

	if len(tickets) == 0 {
		a.println("No tickets")
		return nil
	}
	a.println(ticketTable(tickets))
	return nil
}

func ticketTable(tickets []models.Ticket) string {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			t.ID,
			renderStatus(t.Status),
			renderPriority(t.Priority),
			t.Title,
			t.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STATUS", "PRIORITY", "TITLE", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		}).
		String()
}
