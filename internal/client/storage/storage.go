package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/ticketapp/internal/client/models"
	"github.com/dmitrijs2005/ticketapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/ticketapp/internal/common"
	"github.com/dmitrijs2005/ticketapp/internal/logging"
)

// tokenRandSize is the number of random bytes in a session token.
const tokenRandSize = 16

// Storage is the facade over the local store. Create it with New.
type Storage struct {
	store  kv.Store
	now    func() time.Time
	logger logging.Logger

	mu sync.Mutex
}

type Option func(*Storage)

// WithClock replaces time.Now, which stamps sessions and ticket updates.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Storage) { s.logger = l }
}

func New(store kv.Store, opts ...Option) *Storage {
	s := &Storage{store: store, now: time.Now, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "storage")
	return s
}

// --- accounts ---

func (s *Storage) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return readList[models.Account](ctx, s, common.AccountsKey)
}

// SaveAccount appends a to the account collection. Email uniqueness is the
// caller's business.
func (s *Storage) SaveAccount(ctx context.Context, a models.Account) error {
	return updateList(ctx, s, common.AccountsKey, func(accounts []models.Account) ([]models.Account, bool, error) {
		return append(accounts, a), true, nil
	})
}

// FindAccountByEmail returns the first account whose email equals email
// exactly, or common.ErrorNotFound.
func (s *Storage) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- session ---

// GetSession returns the current session or common.ErrorNotFound.
func (s *Storage) GetSession(ctx context.Context) (*models.Session, error) {
	var session *models.Session
	found, err := readJSON(ctx, s, common.SessionKey, &session)
	if err != nil {
		return nil, err
	}
	if !found || session == nil {
		return nil, common.ErrorNotFound
	}
	return session, nil
}

// CreateSession stores a new session for a, replacing any previous one, and
// returns it. The token is random hex followed by the creation time in base
// 36; it identifies the session and proves nothing.
func (s *Storage) CreateSession(ctx context.Context, a models.Account) (models.Session, error) {
	random, err := common.MakeRandHexString(tokenRandSize)
	if err != nil {
		return models.Session{}, fmt.Errorf("session token: %w", err)
	}

	created := s.now().UnixMilli()
	session := models.Session{
		Token:     random + strconv.FormatInt(created, 36),
		UserID:    a.ID,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: created,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return models.Session{}, fmt.Errorf("encode session: %w", err)
	}

	err = s.update(ctx, common.SessionKey, func([]byte, bool) ([]byte, bool, error) {
		return data, true, nil
	})
	if err != nil {
		return models.Session{}, err
	}

	s.logger.Debug(ctx, "session created", "user_id", a.ID)
	return session, nil
}

// ClearSession removes the session. Clearing an absent session is a no-op.
func (s *Storage) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, common.SessionKey); err != nil {
		return err
	}
	s.logger.Debug(ctx, "session cleared")
	return nil
}

// IsAuthenticated reports whether a session is stored. A session that cannot
// be read counts as no session; the error is returned alongside.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := s.GetSession(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// --- tickets ---

func (s *Storage) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return readList[models.Ticket](ctx, s, common.TicketsKey)
}

// SaveTickets replaces the whole ticket collection.
func (s *Storage) SaveTickets(ctx context.Context, tickets []models.Ticket) error {
	return updateList(ctx, s, common.TicketsKey, func([]models.Ticket) ([]models.Ticket, bool, error) {
		return tickets, true, nil
	})
}

// AddTicket appends t as given.
func (s *Storage) AddTicket(ctx context.Context, t models.Ticket) error {
	return updateList(ctx, s, common.TicketsKey, func(tickets []models.Ticket) ([]models.Ticket, bool, error) {
		return append(tickets, t), true, nil
	})
}

// UpdateTicket merges patch into the ticket with the given id and stamps
// UpdatedAt. The new UpdatedAt is always later than the previous one, even if
// the clock has not moved. It reports false, writing nothing, when no ticket
// has that id.
func (s *Storage) UpdateTicket(ctx context.Context, id string, patch models.TicketPatch) (bool, error) {
	updated := false
	err := updateList(ctx, s, common.TicketsKey, func(tickets []models.Ticket) ([]models.Ticket, bool, error) {
		for i := range tickets {
			if tickets[i].ID != id {
				continue
			}
			patch.Apply(&tickets[i])
			tickets[i].UpdatedAt = s.stamp(tickets[i].UpdatedAt)
			updated = true
			return tickets, true, nil
		}
		return tickets, false, nil
	})
	return updated, err
}

// DeleteTicket removes the ticket with the given id. It reports false,
// writing nothing, when no ticket has that id.
func (s *Storage) DeleteTicket(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := updateList(ctx, s, common.TicketsKey, func(tickets []models.Ticket) ([]models.Ticket, bool, error) {
		kept := tickets[:0:0]
		for _, t := range tickets {
			if t.ID == id {
				deleted = true
				continue
			}
			kept = append(kept, t)
		}
		return kept, deleted, nil
	})
	return deleted, err
}

// stamp returns the current time, pushed past prev when the clock has not
// advanced beyond it.
func (s *Storage) stamp(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return now
}

// --- plumbing ---

// update is the single read-modify-write step. fn receives the stored bytes
// (found is false for an absent key) and returns the bytes to store, or
// write=false to leave the store untouched.
func (s *Storage) update(ctx context.Context, key string, fn func(raw []byte, found bool) (next []byte, write bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, key)
	found := true
	if errors.Is(err, common.ErrorNotFound) {
		found = false
	} else if err != nil {
		return err
	}

	next, write, err := fn(raw, found)
	if err != nil || !write {
		return err
	}

	return s.store.Set(ctx, key, next)
}

// readJSON decodes the item under key into dst. It reports false for an
// absent key.
func readJSON[T any](ctx context.Context, s *Storage, key string, dst *T) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := decode(raw, key, dst); err != nil {
		s.logger.Warn(ctx, "stored data does not decode", "key", key, "error", err)
		return false, err
	}
	return true, nil
}

func readList[T any](ctx context.Context, s *Storage, key string) ([]T, error) {
	var items []T
	if _, err := readJSON(ctx, s, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// updateList runs fn over the decoded collection under key inside update.
func updateList[T any](ctx context.Context, s *Storage, key string, fn func([]T) ([]T, bool, error)) error {
	return s.update(ctx, key, func(raw []byte, found bool) ([]byte, bool, error) {
		var items []T
		if found {
			if err := decode(raw, key, &items); err != nil {
				return nil, false, err
			}
		}

		next, write, err := fn(items)
		if err != nil || !write {
			return nil, false, err
		}
		if next == nil {
			next = []T{}
		}

		data, err := json.Marshal(next)
		if err != nil {
			return nil, false, fmt.Errorf("encode %s: %w", key, err)
		}
		return data, true, nil
	})
}

func decode(raw []byte, key string, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrMalformedData, key, err)
	}
	return nil
}
