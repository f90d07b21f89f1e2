package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/config"
	"github.com/dmitrijs2005/agroassist/internal/client/media"
	"github.com/dmitrijs2005/agroassist/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/agroassist/internal/client/request"
	"github.com/dmitrijs2005/agroassist/internal/client/services"
	"github.com/dmitrijs2005/agroassist/internal/client/session"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/filex"
	"github.com/dmitrijs2005/agroassist/internal/logging"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const pingTimeout = 3 * time.Second

// Deps are the collaborators App is built from. NewApp fills them from
// configuration; tests supply fakes.
type Deps struct {
	Transport client.Client
	Session   *session.Holder
	Sessions  services.SessionStore
	Prefs     *preferences.Store
	Logger    logging.Logger
	In        io.Reader
	Out       io.Writer
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	notifier ui.Notifier
	markdown *ui.MarkdownRenderer

	transport client.Client
	prefs     *preferences.Store
	session   *session.Holder
	picker    media.Picker

	auth      *services.AuthService
	crop      *services.CropService
	diagnosis *services.DiagnosisService
	schemes   *services.SchemeService
	password  *services.PasswordService

	mu    sync.Mutex
	mode  Mode
	route ui.Route

	closers []func() error
}

// NewApp builds the production App: logger, SQLite preference store, HTTP
// transport and services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	holder := session.NewHolder(nil)
	transport := client.NewHTTPClient(c.BackendURL, c.AIBackendURL, holder)

	app, err := New(c, Deps{
		Transport: transport,
		Session:   holder,
		Sessions:  session.NewStore(db),
		Prefs:     preferences.NewStore(preferences.NewSQLiteRepository(db), c.DefaultLanguage),
		Logger:    logger,
		In:        os.Stdin,
		Out:       os.Stdout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app.closers = append(app.closers, db.Close)
	if z, ok := logger.(*logging.ZapLogger); ok {
		app.closers = append(app.closers, z.Sync)
	}
	return app, nil
}

// New builds an App from explicit dependencies.
func New(c *config.Config, d Deps) (*App, error) {
	md, err := ui.NewMarkdownRenderer("dark", 80)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Session == nil {
		d.Session = session.NewHolder(nil)
	}

	a := &App{
		config:    c,
		logger:    d.Logger,
		reader:    bufio.NewReader(d.In),
		out:       d.Out,
		notifier:  ui.NewTerminalNotifier(d.Out),
		markdown:  md,
		transport: d.Transport,
		prefs:     d.Prefs,
		session:   d.Session,
		route:     ui.RouteWelcome,
	}

	a.picker = media.NewFilePicker(func(context.Context) (string, error) {
		return getSimpleText(a.reader, "Path to a photo of the plant (empty to cancel)", a.out)
	})

	env := services.Env{
		Deps: request.Deps{
			Transport: d.Transport,
			Notifier:  a.notifier,
			Logger:    d.Logger,
		},
		Session:   d.Session,
		Sessions:  d.Sessions,
		Navigator: a,
		Timeouts: services.Timeouts{
			Request:    c.RequestTimeout,
			Upload:     c.UploadTimeout,
			OTPAdvance: c.OTPAdvanceDelay,
		},
		Loading: a.showLoading,
	}
	if d.Prefs != nil {
		env.Deps.Languages = d.Prefs
	}
	env = env.WithSessionExpiry()

	a.auth = services.NewAuthService(env)
	a.crop = services.NewCropService(env)
	a.diagnosis = services.NewDiagnosisService(env)
	a.schemes = services.NewSchemeService(env)
	a.password = services.NewPasswordService(env)
	return a, nil
}

// Run starts the connectivity watcher and the REPL and blocks until the
// user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return a.Root(ctx)
	})
	return g.Wait()
}

// Close releases the database and flushes the logger.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "closing", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "switched connectivity mode", "mode", mode)
	}
}

// Route returns the screen the app is showing.
func (a *App) Route() ui.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// Navigate implements ui.Navigator.
func (a *App) Navigate(_ context.Context, route ui.Route) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

// busy reports whether any request is still in flight; commands refuse to
// submit while it is true.
func (a *App) busy() bool {
	return a.auth.Pending() || a.crop.Pending() || a.diagnosis.Pending() ||
		a.schemes.Pending() || a.password.Pending()
}

func (a *App) showLoading(op string, on bool) {
	if on {
		fmt.Fprintf(a.out, "... %s\n", op)
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// StartOnlineStatusWatcher pings the backend every interval and switches
// between online and offline mode until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.setMode(ModeDisabled)
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.transport.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
