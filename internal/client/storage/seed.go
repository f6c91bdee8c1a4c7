package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/ticketapp/internal/client/models"
	"github.com/dmitrijs2005/ticketapp/internal/common"
)

// SeedAuthor is the CreatedBy of the demo tickets.
const SeedAuthor = "system"

var seedEpoch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// DefaultTickets returns the demo tickets stored by SeedDefaultTickets. Each
// call returns a fresh slice.
func DefaultTickets() []models.Ticket {
	seeds := []struct {
		title, description string
		status             models.Status
		priority           models.Priority
	}{
		{
			"Login page shows blank screen on Safari",
			"Users on Safari 17 get an empty page after submitting the login form.",
			models.StatusOpen, models.PriorityHigh,
		},
		{
			"Add export to CSV on tickets view",
			"Support asked for a way to export the filtered ticket list as CSV.",
			models.StatusInProgress, models.PriorityMedium,
		},
		{
			"Typo in welcome email subject",
			"The subject line reads \"Wellcome\" instead of \"Welcome\".",
			models.StatusClosed, models.PriorityLow,
		},
		{
			"Password reset link expires too early",
			"Reset links stop working after about five minutes instead of one hour.",
			models.StatusOpen, models.PriorityMedium,
		},
		{
			"Dashboard counters lag after ticket update",
			"Open/closed counters only refresh after a full page reload.",
			models.StatusInProgress, models.PriorityHigh,
		},
	}

	tickets := make([]models.Ticket, len(seeds))
	for i, sd := range seeds {
		ts := seedEpoch.Add(time.Duration(i) * time.Hour)
		tickets[i] = models.Ticket{
			ID:          "ticket-" + strconv.Itoa(i+1),
			Title:       sd.title,
			Description: sd.description,
			Status:      sd.status,
			Priority:    sd.priority,
			CreatedBy:   SeedAuthor,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
	}
	return tickets
}

// SeedDefaultTickets stores DefaultTickets when the ticket collection is
// empty or absent, and reports whether it did. Calling it again is harmless.
func (s *Storage) SeedDefaultTickets(ctx context.Context) (bool, error) {
	seeded := false
	err := updateList(ctx, s, common.TicketsKey, func(tickets []models.Ticket) ([]models.Ticket, bool, error) {
		if len(tickets) > 0 {
			return tickets, false, nil
		}
		seeded = true
		return DefaultTickets(), true, nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.logger.Info(ctx, "seeded demo tickets", "count", len(DefaultTickets()))
	}
	return seeded, nil
}
