package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/ticketapp/internal/client/models"
	"github.com/dmitrijs2005/ticketapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/ticketapp/internal/client/storage"
	"github.com/dmitrijs2005/ticketapp/internal/common"
	"github.com/dmitrijs2005/ticketapp/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupStore(t *testing.T) *kv.SQLiteStore {
	t.Helper()
	s, err := kv.Open(context.Background(), kv.MemoryDSN, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupAuth(t *testing.T) (*AuthStore, *storage.Storage) {
	t.Helper()
	st := storage.New(setupStore(t))
	return NewAuthStore(st, nil), st
}

var ann = models.Account{ID: "u1", Email: "ann@example.com", Name: "Ann"}

// ---- fake store ----

// fakeStore answers from fields and counts calls. Unset methods succeed.
type fakeStore struct {
	session    *models.Session
	getErr     error
	createErr  error
	clearErr   error
	authErr    error
	findErr    error
	saveErr    error
	accounts   []models.Account
	clearCalls int
}

func (f *fakeStore) GetSession(context.Context) (*models.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.session == nil {
		return nil, common.ErrorNotFound
	}
	return f.session, nil
}

func (f *fakeStore) CreateSession(_ context.Context, a models.Account) (models.Session, error) {
	if f.createErr != nil {
		return models.Session{}, f.createErr
	}
	f.session = &models.Session{Token: "tok", UserID: a.ID, Email: a.Email, Name: a.Name}
	return *f.session, nil
}

func (f *fakeStore) ClearSession(context.Context) error {
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.session = nil
	return nil
}

func (f *fakeStore) IsAuthenticated(context.Context) (bool, error) {
	if f.authErr != nil {
		return false, f.authErr
	}
	return f.session != nil, nil
}

func (f *fakeStore) FindAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.accounts {
		if f.accounts[i].Email == email {
			return &f.accounts[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeStore) SaveAccount(_ context.Context, a models.Account) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.accounts = append(f.accounts, a)
	return nil
}

// ---- Initialize ----

func TestInitialize_NoSession(t *testing.T) {
	a, _ := setupAuth(t)
	require.True(t, a.Loading())

	require.NoError(t, a.Initialize(context.Background()))

	assert.False(t, a.Loading())
	assert.False(t, a.IsAuthenticated())
	_, ok := a.CurrentUser()
	assert.False(t, ok)
}

func TestInitialize_RestoresSession(t *testing.T) {
	a, st := setupAuth(t)
	ctx := context.Background()
	_, err := st.CreateSession(ctx, ann)
	require.NoError(t, err)

	require.NoError(t, a.Initialize(ctx))

	assert.False(t, a.Loading())
	assert.True(t, a.IsAuthenticated())
	u, ok := a.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, ann.User(), u)
}

func TestInitialize_MalformedSession(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, common.SessionKey, []byte("{oops")))
	a := NewAuthStore(storage.New(store), nil)

	err := a.Initialize(ctx)
	require.ErrorIs(t, err, common.ErrMalformedData)
	assert.False(t, a.Loading(), "loading is cleared even on error")
	assert.False(t, a.IsAuthenticated())
}

// ---- Login / Logout ----

func TestLogin_PersistsAndMirrors(t *testing.T) {
	a, st := setupAuth(t)
	ctx := context.Background()
	require.NoError(t, a.Initialize(ctx))

	session, err := a.Login(ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, ann.ID, session.UserID)

	assert.True(t, a.IsAuthenticated())
	assert.True(t, a.CheckAuthentication(ctx))

	stored, err := st.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, *stored)
}

func TestLogin_StoreFailureLeavesMirror(t *testing.T) {
	boom := errors.New("disk full")
	a := NewAuthStore(&fakeStore{createErr: boom}, nil)

	_, err := a.Login(context.Background(), ann)
	require.ErrorIs(t, err, boom)
	assert.False(t, a.IsAuthenticated())
}

func TestLogout_ClearsBoth(t *testing.T) {
	a, _ := setupAuth(t)
	ctx := context.Background()
	_, err := a.Login(ctx, ann)
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))

	assert.False(t, a.IsAuthenticated())
	assert.False(t, a.CheckAuthentication(ctx))
	require.NoError(t, a.Logout(ctx), "logout twice is harmless")
}

func TestLogout_StoreFailureKeepsMirror(t *testing.T) {
	fs := &fakeStore{}
	a := NewAuthStore(fs, nil)
	ctx := context.Background()
	_, err := a.Login(ctx, ann)
	require.NoError(t, err)

	fs.clearErr = errors.New("locked")
	require.Error(t, a.Logout(ctx))
	assert.Equal(t, 1, fs.clearCalls)
	assert.True(t, a.IsAuthenticated())
}

// ---- two sources of truth ----

func TestCheckAuthentication_IndependentOfMirror(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	a := NewAuthStore(storage.New(store), nil)
	require.NoError(t, a.Initialize(ctx))
	_, err := a.Login(ctx, ann)
	require.NoError(t, err)

	// another facade over the same store plays the second tab
	other := storage.New(store)
	require.NoError(t, other.ClearSession(ctx))

	assert.True(t, a.IsAuthenticated(), "mirror is stale")
	assert.False(t, a.CheckAuthentication(ctx), "store says logged out")

	require.NoError(t, a.Refresh(ctx))
	assert.False(t, a.IsAuthenticated())
}

func TestCheckAuthentication_SessionWrittenElsewhere(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	a := NewAuthStore(storage.New(store), nil)
	require.NoError(t, a.Initialize(ctx))

	_, err := storage.New(store).CreateSession(ctx, ann)
	require.NoError(t, err)

	assert.False(t, a.IsAuthenticated())
	assert.True(t, a.CheckAuthentication(ctx))

	require.NoError(t, a.Refresh(ctx))
	u, ok := a.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", u.Email)
}

func TestCheckAuthentication_StoreErrorIsFalse(t *testing.T) {
	a := NewAuthStore(&fakeStore{authErr: errors.New("io")}, nil)
	assert.False(t, a.CheckAuthentication(context.Background()))
}

// ---- Signup ----

func TestSignup_CreatesAccountAndLogsIn(t *testing.T) {
	a, st := setupAuth(t)
	a.newID = func() string { return "fixed-id" }
	ctx := context.Background()

	session, err := a.Signup(ctx, "  bob@example.com ", " Bob ", []byte("hunter22"))
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", session.UserID)
	assert.True(t, a.IsAuthenticated())

	acc, err := st.FindAccountByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob", acc.Name)
	assert.NotContains(t, acc.Password, "hunter22")

	ok, err := cryptox.VerifyPassword(acc.Password, []byte("hunter22"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	a, st := setupAuth(t)
	ctx := context.Background()
	require.NoError(t, st.SaveAccount(ctx, ann))

	_, err := a.Signup(ctx, ann.Email, "Other Ann", []byte("secret1"))
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	accounts, err := st.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.False(t, a.IsAuthenticated())
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name, email, user, password string
	}{
		{"empty name", "a@b.c", "  ", "secret1"},
		{"bad email", "not-an-email", "A", "secret1"},
		{"display form", "A <a@b.c>", "A", "secret1"},
		{"short password", "a@b.c", "A", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStore{}
			a := NewAuthStore(fs, nil)

			_, err := a.Signup(context.Background(), tt.email, tt.user, []byte(tt.password))
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.Empty(t, fs.accounts)
		})
	}
}

func TestSignup_SaveFailure(t *testing.T) {
	boom := errors.New("quota")
	a := NewAuthStore(&fakeStore{saveErr: boom}, nil)

	_, err := a.Signup(context.Background(), "a@b.c", "A", []byte("secret1"))
	require.ErrorIs(t, err, boom)
	assert.False(t, a.IsAuthenticated())
}

// ---- Authenticate ----

func TestAuthenticate(t *testing.T) {
	a, st := setupAuth(t)
	ctx := context.Background()

	acc := ann
	acc.Password = cryptox.HashPassword([]byte("correct"))
	require.NoError(t, st.SaveAccount(ctx, acc))

	_, err := a.Authenticate(ctx, "nobody@example.com", []byte("correct"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = a.Authenticate(ctx, ann.Email, []byte("wrong"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, a.IsAuthenticated())

	session, err := a.Authenticate(ctx, " "+ann.Email, []byte("correct"))
	require.NoError(t, err)
	assert.Equal(t, ann.ID, session.UserID)
	assert.True(t, a.IsAuthenticated())
}

func TestAuthenticate_UnreadablePassword(t *testing.T) {
	fs := &fakeStore{accounts: []models.Account{{ID: "u1", Email: "a@b.c", Password: "plain"}}}
	a := NewAuthStore(fs, nil)

	_, err := a.Authenticate(context.Background(), "a@b.c", []byte("plain"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthenticate_StoreError(t *testing.T) {
	boom := errors.New("io")
	a := NewAuthStore(&fakeStore{findErr: boom}, nil)

	_, err := a.Authenticate(context.Background(), "a@b.c", []byte("x"))
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}
