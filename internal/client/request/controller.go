package request

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/envelope"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/client/validation"
	"github.com/dmitrijs2005/agroassist/internal/common"
	"github.com/dmitrijs2005/agroassist/internal/logging"
	"github.com/google/uuid"
)

// LanguageSource supplies the preferred language code.
// preferences.Store satisfies it.
type LanguageSource interface {
	Language(ctx context.Context) (string, error)
}

// Deps are the collaborators shared by all controllers of an application.
type Deps struct {
	Transport client.Client
	Notifier  ui.Notifier
	Languages LanguageSource
	Logger    logging.Logger

	// Unauthorized, when set, is called after an authenticated request was
	// answered with HTTP 401.
	Unauthorized func(ctx context.Context)
}

// Controller runs the submit cycle for one operation. It is safe for
// concurrent use; overlapping submits are resolved by the attempt-id guard.
type Controller[R any] struct {
	spec      Spec[R]
	messages  Messages
	transport client.Client
	notifier  ui.Notifier
	languages LanguageSource
	logger    logging.Logger
	unauth    func(ctx context.Context)

	now       func() time.Time
	requestID func() string

	mu      sync.Mutex
	seq     uint64
	status  Status
	current *Attempt[R]

	loadMu  sync.Mutex
	loading func(bool)
}

// New returns an idle Controller for spec.
func New[R any](spec Spec[R], deps Deps) *Controller[R] {
	if spec.Accept == nil {
		spec.Accept = DefaultAccept[R]
	}

	c := &Controller[R]{
		spec:      spec,
		messages:  spec.Messages.withDefaults(spec.Name),
		transport: deps.Transport,
		notifier:  deps.Notifier,
		languages: deps.Languages,
		logger:    deps.Logger,
		unauth:    deps.Unauthorized,
		now:       time.Now,
		requestID: uuid.NewString,
	}
	if c.notifier == nil {
		c.notifier = ui.Discard
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	return c
}

// OnLoading registers fn to be told when the loading indicator should be
// shown or hidden. fn is called with false on every exit path of the latest
// attempt.
func (c *Controller[R]) OnLoading(fn func(bool)) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	c.loading = fn
}

// Name returns the operation name.
func (c *Controller[R]) Name() string {
	return c.spec.Name
}

// Status returns the state of the latest attempt, or StatusIdle.
func (c *Controller[R]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Pending reports whether the latest attempt is still in flight. Callers
// disable their submit control while it is true.
func (c *Controller[R]) Pending() bool {
	return c.Status() == StatusPending
}

// Attempt returns a snapshot of the latest attempt, or nil when idle.
func (c *Controller[R]) Attempt() *Attempt[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	snap := *c.current
	return &snap
}

// Reset returns the controller to idle and forgets the latest attempt. An
// attempt still in flight settles as superseded. Reset on an idle
// controller has no observable effect.
func (c *Controller[R]) Reset() {
	c.mu.Lock()
	wasPending := c.status == StatusPending
	c.seq++
	id := c.seq
	c.status = StatusIdle
	c.current = nil
	c.mu.Unlock()

	if wasPending {
		c.setLoading(id, false)
	}
}

// Submit runs one attempt against form and blocks until it settles. The
// returned attempt is always terminal.
func (c *Controller[R]) Submit(ctx context.Context, form models.FormState) (a *Attempt[R]) {
	a = c.start()
	log := c.logger.With("op", c.spec.Name, "attempt", a.ID, "request_id", a.RequestID)

	defer func() {
		if p := recover(); p != nil {
			a.fail(&Error{
				Kind:    KindDecode,
				Message: c.unexpected(fmt.Sprint(p)),
				cause:   fmt.Errorf("panic: %v", p),
			})
		}
		c.finish(ctx, a, log)
	}()

	if res := validation.Validate(form, c.spec.Rules...); !res.OK() {
		a.fail(&Error{
			Kind:    KindValidation,
			Message: res.First(),
			Fields:  res.FieldErrors(),
			cause:   res.Err(),
		})
		return a
	}

	c.markPending(a)
	log.Info(ctx, "request started")

	c.execute(ctx, a, form)
	return a
}

func (c *Controller[R]) start() *Attempt[R] {
	c.mu.Lock()
	c.seq++
	id := c.seq
	c.mu.Unlock()

	return &Attempt[R]{
		ID:        id,
		RequestID: c.requestID(),
		Status:    StatusIdle,
		StartedAt: c.now(),
	}
}

func (c *Controller[R]) latest(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return id == c.seq
}

func (c *Controller[R]) markPending(a *Attempt[R]) {
	a.Status = StatusPending

	c.mu.Lock()
	if a.ID == c.seq {
		snap := *a
		c.current = &snap
		c.status = StatusPending
	}
	c.mu.Unlock()

	c.setLoading(a.ID, true)
}

// setLoading calls the loading hook only while id is the latest attempt.
func (c *Controller[R]) setLoading(id uint64, on bool) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if c.loading == nil || !c.latest(id) {
		return
	}
	c.loading(on)
}

func (c *Controller[R]) execute(ctx context.Context, a *Attempt[R], form models.FormState) {
	in := Input{Form: form.Clone()}
	if c.spec.Localized {
		in.Lang = c.language(ctx)
	}

	req, err := c.spec.Build(in)
	if err != nil {
		a.fail(c.buildError(err))
		return
	}

	if req.Timeout == 0 {
		req.Timeout = c.spec.Timeout
	}
	headers := make(map[string]string, len(req.Headers)+1)
	maps.Copy(headers, req.Headers)
	headers[common.RequestIDHeaderName] = a.RequestID
	req.Headers = headers
	a.Payload = req

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		a.fail(c.transportError(err))
		return
	}

	c.interpret(a, resp)
}

func (c *Controller[R]) language(ctx context.Context) string {
	if c.languages == nil {
		return common.DefaultLanguage
	}
	lang, err := c.languages.Language(ctx)
	if err != nil {
		c.logger.Warn(ctx, "reading language preference", "op", c.spec.Name, "error", err)
	}
	if lang == "" {
		return common.DefaultLanguage
	}
	return lang
}

func (c *Controller[R]) interpret(a *Attempt[R], resp *client.Response) {
	if !resp.OK() {
		env, _ := envelope.DecodeEnvelope(resp.Body)
		a.Envelope = env
		cause := fmt.Errorf("server returned HTTP %d", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized && a.Payload.Authenticated {
			cause = fmt.Errorf("%w: %w", common.ErrUnauthorized, cause)
		}
		a.fail(&Error{
			Kind:       KindRejected,
			Message:    c.rejection(resp.StatusCode, env),
			StatusCode: resp.StatusCode,
			cause:      cause,
		})
		return
	}

	payload, env, err := envelope.Decode[R](resp.Body)
	a.Envelope = env
	if err != nil {
		a.fail(&Error{
			Kind:       KindDecode,
			Message:    c.unexpected(err.Error()),
			StatusCode: resp.StatusCode,
			cause:      err,
		})
		return
	}

	if !c.spec.Accept(payload, env) {
		a.fail(&Error{
			Kind:       KindRejected,
			Message:    c.rejection(resp.StatusCode, env),
			StatusCode: resp.StatusCode,
		})
		return
	}

	a.succeed(payload)
}

func (c *Controller[R]) rejection(status int, env envelope.Envelope) string {
	if c.spec.Reject != nil {
		if msg := c.spec.Reject(status, env); msg != "" {
			return msg
		}
	}
	if msg := env.Text(); msg != "" {
		return msg
	}
	return c.messages.NoResult
}

func (c *Controller[R]) unexpected(desc string) string {
	if desc == "" {
		return c.messages.Unexpected
	}
	return c.messages.Unexpected + ": " + desc
}

func (c *Controller[R]) buildError(err error) *Error {
	if errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrNoSession) {
		return &Error{Kind: KindValidation, Message: err.Error(), cause: err}
	}
	return &Error{Kind: KindDecode, Message: c.unexpected(err.Error()), cause: err}
}

func (c *Controller[R]) transportError(err error) *Error {
	if client.IsUnavailable(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return &Error{Kind: KindConnectivity, Message: c.messages.Connectivity, cause: err}
	}
	return &Error{Kind: KindDecode, Message: c.unexpected(err.Error()), cause: err}
}

// finish commits a settled attempt. Only the latest attempt updates shared
// state, clears loading, notifies and runs the success hook.
func (c *Controller[R]) finish(ctx context.Context, a *Attempt[R], log logging.Logger) {
	a.FinishedAt = c.now()

	c.mu.Lock()
	isLatest := a.ID == c.seq
	if isLatest {
		snap := *a
		c.current = &snap
		c.status = a.Status
	}
	c.mu.Unlock()

	c.log(ctx, a, log)

	if !isLatest {
		a.Superseded = true
		log.Debug(ctx, "superseded attempt discarded", "status", a.Status)
		return
	}

	c.setLoading(a.ID, false)

	if a.Status == StatusFailed {
		if c.unauth != nil && errors.Is(a.Err, common.ErrUnauthorized) {
			c.runUnauthorized(ctx, log)
		}
		c.notify(ctx, ui.Notification{Kind: ui.KindError, Title: c.messages.Title, Body: a.Err.Message}, log)
		return
	}

	body := a.Envelope.Message
	if body == "" {
		body = c.messages.Success
	}
	if body != "" {
		c.notify(ctx, ui.Notification{Kind: ui.KindSuccess, Title: c.messages.Title, Body: body}, log)
	}

	if c.spec.OnSuccess != nil {
		c.runHook(ctx, a, log)
	}
}

func (c *Controller[R]) notify(ctx context.Context, n ui.Notification, log logging.Logger) {
	defer func() {
		if p := recover(); p != nil {
			log.Error(ctx, "notifier panicked", "panic", p)
		}
	}()
	c.notifier.Notify(ctx, n)
}

func (c *Controller[R]) runUnauthorized(ctx context.Context, log logging.Logger) {
	defer func() {
		if p := recover(); p != nil {
			log.Error(ctx, "unauthorized hook panicked", "panic", p)
		}
	}()
	log.Warn(ctx, "session rejected by server")
	c.unauth(ctx)
}

func (c *Controller[R]) runHook(ctx context.Context, a *Attempt[R], log logging.Logger) {
	defer func() {
		if p := recover(); p != nil {
			log.Error(ctx, "success hook panicked", "panic", p)
		}
	}()
	c.spec.OnSuccess(ctx, a)
}

func (c *Controller[R]) log(ctx context.Context, a *Attempt[R], log logging.Logger) {
	elapsed := a.FinishedAt.Sub(a.StartedAt)
	switch {
	case a.Status == StatusSucceeded:
		log.Info(ctx, "request succeeded", "elapsed", elapsed)
	case a.Err.Kind == KindValidation:
		log.Warn(ctx, "validation failed", "kind", a.Err.Kind, "fields", a.Err.Fields)
	default:
		log.Error(ctx, "request failed", "kind", a.Err.Kind, "status_code", a.Err.StatusCode, "error", errors.Join(a.Err.Unwrap()...), "elapsed", elapsed)
	}
}

// Run is Submit without the typed response, for callers that only sequence
// attempts (see the wizard package).
func (c *Controller[R]) Run(ctx context.Context, form models.FormState) Outcome {
	return c.Submit(ctx, form).Outcome()
}
