package router

import (
	"context"

	"github.com/dmitrijs2005/ticketapp/internal/common"
	"github.com/dmitrijs2005/ticketapp/internal/logging"
)

// Authenticator reports whether a session is persisted.
// *services.AuthStore satisfies it.
type Authenticator interface {
	CheckAuthentication(ctx context.Context) bool
}

// Decision is the outcome of a guard check: either Allow, or a Redirect path.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard keeps unauthenticated users out of routes that require auth. It asks
// the store on every check and holds no state of its own.
type Guard struct {
	auth   Authenticator
	logger logging.Logger
}

func NewGuard(auth Authenticator, logger logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Guard{auth: auth, logger: logger.With("module", "guard")}
}

// Before decides whether navigation to to may proceed.
func (g *Guard) Before(ctx context.Context, to Route) Decision {
	if to.RequiresAuth && !g.auth.CheckAuthentication(ctx) {
		g.logger.Debug(ctx, "navigation redirected", "to", to.Path, "redirect", common.LoginPath)
		return Decision{Redirect: common.LoginPath}
	}
	return Decision{Allow: true}
}
