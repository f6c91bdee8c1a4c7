package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/ticketapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/ticketapp/internal/client/router"
	"github.com/dmitrijs2005/ticketapp/internal/client/services"
	"github.com/dmitrijs2005/ticketapp/internal/client/storage"
	"github.com/dmitrijs2005/ticketapp/internal/logging"
	"github.com/google/uuid"
)

type App struct {
	storage *storage.Storage
	store   kv.Store
	auth    *services.AuthStore
	router  *router.Router
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer

	current router.Route
	newID   func() string
	now     func() time.Time
}

// NewApp wires the client views to an initialized auth store. Prompts read
// from in and views write to out.
func NewApp(st *storage.Storage, store kv.Store, auth *services.AuthStore, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	r, err := router.New(router.NewGuard(auth, logger), router.DefaultRoutes()...)
	if err != nil {
		return nil, err
	}

	return &App{
		storage: st,
		store:   store,
		auth:    auth,
		router:  r,
		logger:  logger.With("module", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		current: router.Home,
		newID:   uuid.NewString,
		now:     time.Now,
	}, nil
}

// Run shows the landing view and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	a.home()
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := a.current.Path
	if u, ok := a.auth.CurrentUser(); ok {
		s = u.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
