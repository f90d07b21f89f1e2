package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/request"
	"github.com/dmitrijs2005/agroassist/internal/client/session"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/logging"
)

// SessionStore persists the session between runs. session.Store implements it.
type SessionStore interface {
	Save(ctx context.Context, s *session.Session) error
	Load(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
}

// Timeouts are the per-request caps taken from configuration.
type Timeouts struct {
	Request    time.Duration
	Upload     time.Duration
	OTPAdvance time.Duration
}

// Env bundles the collaborators shared by all services.
type Env struct {
	Deps      request.Deps
	Session   *session.Holder
	Sessions  SessionStore
	Navigator ui.Navigator
	Timeouts  Timeouts

	// Loading, when set, is told when a request of operation op starts and
	// when it settles.
	Loading func(op string, on bool)
}

func track[R any](env Env, c *request.Controller[R]) *request.Controller[R] {
	if env.Loading != nil {
		op := c.Name()
		c.OnLoading(func(on bool) { env.Loading(op, on) })
	}
	return c
}

func (e Env) navigator() ui.Navigator {
	if e.Navigator == nil {
		return ui.Discard
	}
	return e.Navigator
}

func (e Env) logger() logging.Logger {
	if e.Deps.Logger == nil {
		return logging.Nop()
	}
	return e.Deps.Logger
}

func (e Env) notifier() ui.Notifier {
	if e.Deps.Notifier == nil {
		return ui.Discard
	}
	return e.Deps.Notifier
}

// WithSessionExpiry returns a copy of e whose controllers drop the session
// and return to the welcome screen when the server answers an authenticated
// request with 401.
func (e Env) WithSessionExpiry() Env {
	e.Deps.Unauthorized = func(ctx context.Context) {
		e.forgetSession(ctx)
		e.navigator().Navigate(ctx, ui.RouteWelcome)
	}
	return e
}

// forgetSession clears the held and the stored session.
func (e Env) forgetSession(ctx context.Context) {
	if e.Session != nil {
		e.Session.Clear()
	}
	if e.Sessions != nil {
		if err := e.Sessions.Clear(ctx); err != nil {
			e.logger().Error(ctx, "clearing session", "error", err)
		}
	}
}
