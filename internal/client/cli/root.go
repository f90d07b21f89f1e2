package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/common"
)

func (a *App) getStatus() string {
	var parts []string
	if u := a.session.User(); u != nil && u.Username != "" {
		parts = append(parts, u.Username)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root restores a saved session, if any, and runs the REPL until the user
// exits or ctx is cancelled.
func (a *App) Root(ctx context.Context) error {
	a.println("Welcome to AgroAssist CLI (type 'help' for commands)")

	sess, err := a.auth.Restore(ctx)
	switch {
	case err == nil:
		a.Navigate(ctx, ui.RouteMainApp)
		if sess.User != nil {
			a.printf("Welcome back, %s\n", sess.User.Username)
		}
	case errors.Is(err, common.ErrSessionExpired):
		a.println("Your session has expired, please login again")
	case errors.Is(err, common.ErrNoSession):
	default:
		a.logger.Warn(ctx, "restoring session", "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}
