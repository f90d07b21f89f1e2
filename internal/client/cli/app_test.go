package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/session"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoggedIn(t *testing.T) {
	app := newTestApp(t, "")
	assert.False(t, app.isLoggedIn())

	app.session.Set(session.New(&models.User{Username: "ravi"}, "tok"))
	assert.True(t, app.isLoggedIn())
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := newTestApp(t, "")

	app.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode())
	assert.Equal(t, 1, strings.Count(app.logs.String(), "switched connectivity mode"))

	app.setMode(ModeOnline)
	assert.Equal(t, 1, strings.Count(app.logs.String(), "switched connectivity mode"), "no log when mode doesn't change")

	app.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, app.Mode())
	assert.Equal(t, 2, strings.Count(app.logs.String(), "switched connectivity mode"))
}

func TestGetStatus(t *testing.T) {
	app := newTestApp(t, "")
	assert.Equal(t, "", app.getStatus())

	app.setMode(ModeOffline)
	assert.Equal(t, "(offline)", app.getStatus())

	app.session.Set(session.New(&models.User{Username: "ravi"}, "tok"))
	assert.Equal(t, "(ravi offline)", app.getStatus())
}

func TestNavigate(t *testing.T) {
	app := newTestApp(t, "")
	assert.Equal(t, ui.RouteWelcome, app.Route())

	app.Navigate(context.Background(), ui.RouteSettings)
	assert.Equal(t, ui.RouteSettings, app.Route())
}

func TestStartOnlineStatusWatcher_SwitchesModes(t *testing.T) {
	app := newTestApp(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
	}()

	assert.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	app.transport.setPingErr(client.ErrUnavailable)
	assert.Eventually(t, func() bool { return app.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	app.transport.setPingErr(nil)
	assert.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestStartOnlineStatusWatcher_Disabled(t *testing.T) {
	app := newTestApp(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		app.StartOnlineStatusWatcher(ctx, 0)
	}()

	assert.Eventually(t, func() bool { return app.Mode() == ModeDisabled }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Empty(t, app.transport.calls())
}

func TestRun_ExitsWithREPL(t *testing.T) {
	app := newTestApp(t, "help\nexit\n")

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(context.Background()) }()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after exit")
	}
	assert.Contains(t, app.out.String(), "Welcome to AgroAssist CLI")
	assert.Contains(t, app.out.String(), "Bye!")
}

func TestRoot_RestoresSavedSession(t *testing.T) {
	app := newTestApp(t, "exit\n")
	ctx := context.Background()

	require.NoError(t, app.sessions.Save(ctx, session.New(&models.User{Username: "ravi"}, "tok-1")))

	require.NoError(t, app.Root(ctx))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, ui.RouteMainApp, app.Route())
	assert.Contains(t, app.out.String(), "Welcome back, ravi")
}

func TestRoot_WithoutSession(t *testing.T) {
	app := newTestApp(t, "")

	require.NoError(t, app.Root(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, ui.RouteWelcome, app.Route())
}

func TestBusy(t *testing.T) {
	app := newTestApp(t, "")
	assert.False(t, app.busy())
}
