package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/config"
	"github.com/dmitrijs2005/agroassist/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/agroassist/internal/client/session"
	"github.com/dmitrijs2005/agroassist/internal/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTransport struct {
	mu sync.Mutex

	replies  map[string]*client.Response
	err      error
	pingErr  error
	requests []client.Request
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{replies: map[string]*client.Response{}}
}

func (f *fakeTransport) reply(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[path] = &client.Response{StatusCode: status, Body: []byte(body)}
}

func (f *fakeTransport) Do(_ context.Context, req client.Request) (*client.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.replies[req.Path]; ok {
		return r, nil
	}
	return &client.Response{StatusCode: 404, Body: []byte(`{"error":"not found"}`)}, nil
}

func (f *fakeTransport) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeTransport) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeTransport) calls() []client.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.Request(nil), f.requests...)
}

// testApp bundles an App with the collaborators a test inspects.
type testApp struct {
	*App
	transport *fakeTransport
	sessions  *session.Store
	out       *bytes.Buffer
	logs      *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	ctx := context.Background()
	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var cfg config.Config
	cfg.LoadDefaults()
	cfg.OTPAdvanceDelay = 0

	var out, logs bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	tr := newFakeTransport()
	store := session.NewStore(db)

	app, err := New(&cfg, Deps{
		Transport: tr,
		Session:   session.NewHolder(nil),
		Sessions:  store,
		Prefs:     preferences.NewStore(preferences.NewSQLiteRepository(db), cfg.DefaultLanguage),
		Logger:    logger,
		In:        strings.NewReader(input),
		Out:       &out,
	})
	require.NoError(t, err)

	return &testApp{App: app, transport: tr, sessions: store, out: &out, logs: &logs}
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })

	var mu sync.Mutex
	getPassword = func(_ string, w io.Writer) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(answers) == 0 {
			return nil, errors.New("no more passwords")
		}
		pw := answers[0]
		answers = answers[1:]
		return []byte(pw), nil
	}
}

const loginOK = `{"success":true,"message":"Welcome","token":"tok-1",
	"user":{"_id":"u1","username":"ravi","phoneNo":"+919876543210","role":"Farmer",
	"location":{"city":"Pune","state":"Maharashtra","lat":18.52,"lon":73.85}}}`
