package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ticketapp/internal/client/models"
	"github.com/dmitrijs2005/ticketapp/internal/client/router"
	"github.com/dmitrijs2005/ticketapp/internal/common"
)

func statusOptions() []string {
	out := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		out[i] = string(s)
	}
	return out
}

func priorityOptions() []string {
	out := make([]string, len(models.Priorities))
	for i, p := range models.Priorities {
		out[i] = string(p)
	}
	return out
}

// AddTicket prompts for a new ticket and stores it as open.
func (a *App) AddTicket(ctx context.Context) error {
	if _, err := a.enter(ctx, router.Tickets.Path); err != nil {
		return err
	}

	session, err := a.storage.GetSession(ctx)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	priority, err := GetChoice(a.reader, "Priority", priorityOptions(), string(models.PriorityMedium), a.out)
	if err != nil {
		return err
	}

	now := a.now().UTC().Truncate(time.Millisecond)
	t := models.Ticket{
		ID:          a.newID(),
		Title:       title,
		Description: description,
		Status:      models.StatusOpen,
		Priority:    models.Priority(priority),
		CreatedBy:   session.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return err
	}

	if err := a.storage.AddTicket(ctx, t); err != nil {
		a.logger.Error(ctx, "add ticket", "error", err)
		return err
	}

	a.logger.Info(ctx, "ticket added", "id", t.ID)
	a.printf("Ticket %s added\n", t.ID)
	return nil
}

// EditTicket prompts for new title, description and priority of ticket id.
// Empty answers keep the current values.
func (a *App) EditTicket(ctx context.Context, id string) error {
	if _, err := a.enter(ctx, router.Tickets.Path); err != nil {
		return err
	}

	current, err := a.findTicket(ctx, id)
	if err != nil {
		return err
	}

	a.printf("Editing %s: %s\n", current.ID, current.Title)

	var patch models.TicketPatch

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title (Enter keeps %q)", current.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" && title != current.Title {
		patch.Title = &title
	}

	description, err := GetMultiline(a.reader, "Description (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if description != "" && description != current.Description {
		patch.Description = &description
	}

	choice, err := GetChoice(a.reader, "Priority", priorityOptions(), string(current.Priority), a.out)
	if err != nil {
		return err
	}
	if p := models.Priority(choice); p != current.Priority {
		patch.Priority = &p
	}

	if patch.Empty() {
		a.println("Nothing to change")
		return nil
	}

	next := current
	patch.Apply(&next)
	if err := next.Validate(); err != nil {
		return err
	}

	return a.updateTicket(ctx, id, patch)
}

// SetStatus moves ticket id to status.
func (a *App) SetStatus(ctx context.Context, id, status string) error {
	if _, err := a.enter(ctx, router.Tickets.Path); err != nil {
		return err
	}

	s := models.Status(strings.ToLower(status))
	if !s.Valid() {
		return fmt.Errorf("%w: unknown status %q (use %s)", common.ErrorValidation, status, strings.Join(statusOptions(), ", "))
	}

	return a.updateTicket(ctx, id, models.TicketPatch{Status: &s})
}

func (a *App) updateTicket(ctx context.Context, id string, patch models.TicketPatch) error {
	ok, err := a.storage.UpdateTicket(ctx, id, patch)
	if err != nil {
		a.logger.Error(ctx, "update ticket", "id", id, "error", err)
		return err
	}
	if !ok {
		return fmt.Errorf("ticket %s: %w", id, common.ErrorNotFound)
	}

	a.logger.Info(ctx, "ticket updated", "id", id)
	a.printf("Ticket %s updated\n", id)
	return nil
}

// DeleteTicket removes ticket id after confirmation.
func (a *App) DeleteTicket(ctx context.Context, id string) error {
	if _, err := a.enter(ctx, router.Tickets.Path); err != nil {
		return err
	}

	t, err := a.findTicket(ctx, id)
	if err != nil {
		return err
	}

	sure, err := Confirm(a.reader, fmt.Sprintf("Delete %s %q?", t.ID, t.Title), a.out)
	if err != nil {
		return err
	}
	if !sure {
		a.println("Cancelled")
		return nil
	}

	ok, err := a.storage.DeleteTicket(ctx, id)
	if err != nil {
		a.logger.Error(ctx, "delete ticket", "id", id, "error", err)
		return err
	}
	if !ok {
		return fmt.Errorf("ticket %s: %w", id, common.ErrorNotFound)
	}

	a.logger.Info(ctx, "ticket deleted", "id", id)
	a.printf("Ticket %s deleted\n", id)
	return nil
}

func (a *App) findTicket(ctx context.Context, id string) (models.Ticket, error) {
	tickets, err := a.storage.ListTickets(ctx)
	if err != nil {
		return models.Ticket{}, err
	}
	for _, t := range tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Ticket{}, fmt.Errorf("ticket %s: %w", id, common.ErrorNotFound)
}
