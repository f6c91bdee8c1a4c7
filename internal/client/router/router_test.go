package router

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/ticketapp/internal/client/models"
	"github.com/dmitrijs2005/ticketapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/ticketapp/internal/client/services"
	"github.com/dmitrijs2005/ticketapp/internal/client/storage"
	"github.com/dmitrijs2005/ticketapp/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	ok    bool
	calls int
}

func (f *fakeAuth) CheckAuthentication(context.Context) bool {
	f.calls++
	return f.ok
}

func newRouter(t *testing.T, auth Authenticator) *Router {
	t.Helper()
	r, err := New(NewGuard(auth, nil), DefaultRoutes()...)
	require.NoError(t, err)
	return r
}

func TestGuardBefore(t *testing.T) {
	tests := []struct {
		name   string
		route  Route
		authed bool
		want   Decision
	}{
		{"public logged out", Home, false, Decision{Allow: true}},
		{"login logged out", Login, false, Decision{Allow: true}},
		{"signup logged in", Signup, true, Decision{Allow: true}},
		{"dashboard logged out", Dashboard, false, Decision{Redirect: "/auth/login"}},
		{"tickets logged out", Tickets, false, Decision{Redirect: "/auth/login"}},
		{"dashboard logged in", Dashboard, true, Decision{Allow: true}},
		{"tickets logged in", Tickets, true, Decision{Allow: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &fakeAuth{ok: tt.authed}
			g := NewGuard(fa, nil)
			assert.Equal(t, tt.want, g.Before(context.Background(), tt.route))
		})
	}
}

func TestGuardBefore_PublicRoutesSkipCheck(t *testing.T) {
	fa := &fakeAuth{}
	g := NewGuard(fa, nil)

	g.Before(context.Background(), Home)
	g.Before(context.Background(), Signup)
	assert.Zero(t, fa.calls)

	g.Before(context.Background(), Tickets)
	assert.Equal(t, 1, fa.calls)
}

func TestResolve(t *testing.T) {
	r := newRouter(t, &fakeAuth{})

	for _, path := range []string{"/tickets", "/tickets/", "tickets", " /tickets "} {
		rt, err := r.Resolve(path)
		require.NoError(t, err, path)
		assert.Equal(t, Tickets, rt)
	}

	rt, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Home, rt)

	_, err = r.Resolve("/admin")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNew_DuplicatePath(t *testing.T) {
	_, err := New(NewGuard(&fakeAuth{}, nil), Home, Route{Name: "root", Path: "/"})
	require.Error(t, err)
}

func TestNavigate(t *testing.T) {
	fa := &fakeAuth{}
	r := newRouter(t, fa)
	ctx := context.Background()

	rt, redirected, err := r.Navigate(ctx, "/dashboard")
	require.NoError(t, err)
	assert.True(t, redirected)
	assert.Equal(t, Login, rt)

	fa.ok = true
	rt, redirected, err = r.Navigate(ctx, "/dashboard")
	require.NoError(t, err)
	assert.False(t, redirected)
	assert.Equal(t, Dashboard, rt)

	_, _, err = r.Navigate(ctx, "/nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNavigate_RedirectTargetMissing(t *testing.T) {
	r, err := New(NewGuard(&fakeAuth{}, nil), Home, Tickets)
	require.NoError(t, err)

	_, _, err = r.Navigate(context.Background(), "/tickets")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

// The guard follows the persisted session, not the auth store's mirror.
func TestNavigate_UsesPersistedSession(t *testing.T) {
	ctx := context.Background()
	store, err := kv.Open(ctx, kv.MemoryDSN, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	auth := services.NewAuthStore(storage.New(store), nil)
	require.NoError(t, auth.Initialize(ctx))
	r := newRouter(t, auth)

	_, redirected, err := r.Navigate(ctx, "/tickets")
	require.NoError(t, err)
	assert.True(t, redirected)

	_, err = auth.Login(ctx, models.Account{ID: "u1", Email: "ann@example.com", Name: "Ann"})
	require.NoError(t, err)

	rt, redirected, err := r.Navigate(ctx, "/tickets")
	require.NoError(t, err)
	assert.False(t, redirected)
	assert.Equal(t, "tickets", rt.Name)

	require.NoError(t, storage.New(store).ClearSession(ctx))
	require.True(t, auth.IsAuthenticated())

	_, redirected, err = r.Navigate(ctx, "/tickets")
	require.NoError(t, err)
	assert.True(t, redirected, "stale mirror does not let the user in")
}
