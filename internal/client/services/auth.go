// Package services contains the application services of the ticketapp client.
// This file holds the auth store: the process-wide record of who is logged in,
// plus the signup and login flows that feed it.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/dmitrijs2005/ticketapp/internal/client/models"
	"github.com/dmitrijs2005/ticketapp/internal/common"
	"github.com/dmitrijs2005/ticketapp/internal/cryptox"
	"github.com/dmitrijs2005/ticketapp/internal/logging"
	"github.com/google/uuid"
)

// MinPasswordLen is the shortest password Signup accepts.
const MinPasswordLen = 6

// SessionStore is the part of the persistence facade the auth store needs.
// *storage.Storage satisfies it.
type SessionStore interface {
	GetSession(ctx context.Context) (*models.Session, error)
	CreateSession(ctx context.Context, a models.Account) (models.Session, error)
	ClearSession(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)

	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	SaveAccount(ctx context.Context, a models.Account) error
}

// AuthStore mirrors the persisted session in memory.
//
// The mirror and the store are separate sources of truth: IsAuthenticated
// reads the mirror, CheckAuthentication reads the store. They agree after
// Initialize, Login, Logout and Refresh, and may drift if something else
// writes the store in between.
type AuthStore struct {
	store  SessionStore
	logger logging.Logger
	newID  func() string

	mu          sync.RWMutex
	currentUser *models.User
	loading     bool
}

// NewAuthStore returns a store in the loading state. Call Initialize before
// relying on IsAuthenticated.
func NewAuthStore(store SessionStore, logger logging.Logger) *AuthStore {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &AuthStore{
		store:   store,
		logger:  logger.With("module", "auth"),
		newID:   uuid.NewString,
		loading: true,
	}
}

// Initialize loads the persisted session into the mirror. Loading is cleared
// whatever happens; a session that cannot be read leaves the user logged out
// and the error is returned.
func (a *AuthStore) Initialize(ctx context.Context) error {
	session, err := a.store.GetSession(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false

	if errors.Is(err, common.ErrorNotFound) {
		a.currentUser = nil
		return nil
	}
	if err != nil {
		a.currentUser = nil
		a.logger.Warn(ctx, "session not restored", "error", err)
		return fmt.Errorf("initialize auth: %w", err)
	}

	u := session.User()
	a.currentUser = &u
	a.logger.Debug(ctx, "session restored", "user_id", u.ID)
	return nil
}

// Login persists a new session for acc and mirrors its identity.
func (a *AuthStore) Login(ctx context.Context, acc models.Account) (models.Session, error) {
	session, err := a.store.CreateSession(ctx, acc)
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	u := session.User()
	a.mu.Lock()
	a.currentUser = &u
	a.mu.Unlock()

	a.logger.Info(ctx, "logged in", "user_id", u.ID)
	return session, nil
}

// Logout removes the persisted session, then clears the mirror. If the store
// fails the mirror is left as it was.
func (a *AuthStore) Logout(ctx context.Context) error {
	if err := a.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	a.mu.Lock()
	a.currentUser = nil
	a.mu.Unlock()

	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *AuthStore) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentUser != nil
}

func (a *AuthStore) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.currentUser == nil {
		return models.User{}, false
	}
	return *a.currentUser, true
}

func (a *AuthStore) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// CheckAuthentication asks the store whether a session exists, ignoring the
// mirror. A store failure counts as not authenticated.
func (a *AuthStore) CheckAuthentication(ctx context.Context) bool {
	ok, err := a.store.IsAuthenticated(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session check failed", "error", err)
		return false
	}
	return ok
}

// Refresh re-reads the persisted session into the mirror.
func (a *AuthStore) Refresh(ctx context.Context) error {
	return a.Initialize(ctx)
}

// Signup registers a new account and logs it in.
func (a *AuthStore) Signup(ctx context.Context, email, name string, password []byte) (models.Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := validateSignup(email, name, password); err != nil {
		return models.Session{}, err
	}

	_, err := a.store.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return models.Session{}, fmt.Errorf("account %s: %w", email, common.ErrorAlreadyExists)
	case !errors.Is(err, common.ErrorNotFound):
		return models.Session{}, fmt.Errorf("signup: %w", err)
	}

	acc := models.Account{
		ID:       a.newID(),
		Email:    email,
		Name:     name,
		Password: cryptox.HashPassword(password),
	}
	if err := a.store.SaveAccount(ctx, acc); err != nil {
		return models.Session{}, fmt.Errorf("signup: %w", err)
	}
	a.logger.Info(ctx, "account created", "user_id", acc.ID)

	return a.Login(ctx, acc)
}

// Authenticate checks email and password against the stored accounts and logs
// the match in. Unknown emails and wrong passwords both yield
// common.ErrorUnauthorized.
func (a *AuthStore) Authenticate(ctx context.Context, email string, password []byte) (models.Session, error) {
	email = strings.TrimSpace(email)

	acc, err := a.store.FindAccountByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return models.Session{}, common.ErrorUnauthorized
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("authenticate: %w", err)
	}

	ok, err := cryptox.VerifyPassword(acc.Password, password)
	if err != nil {
		a.logger.Warn(ctx, "stored password unreadable", "user_id", acc.ID, "error", err)
		return models.Session{}, common.ErrorUnauthorized
	}
	if !ok {
		return models.Session{}, common.ErrorUnauthorized
	}

	return a.Login(ctx, *acc)
}

func validateSignup(email, name string, password []byte) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email %q", common.ErrorValidation, email)
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLen)
	}
	return nil
}
