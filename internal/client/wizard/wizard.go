// Package wizard chains request controllers into a linear flow. The step
// pointer advances only when the current step's attempt succeeds; failures
// leave it where it is. The password change flow
// (confirmation -> otp -> newPassword) is the one user of this today.
package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/request"
)

// Step is a position in the flow.
type Step int

const (
	StepConfirmation Step = iota
	StepOTP
	StepNewPassword
)

func (s Step) String() string {
	switch s {
	case StepConfirmation:
		return "confirmation"
	case StepOTP:
		return "otp"
	case StepNewPassword:
		return "newPassword"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when a step is submitted while another is in flight.
var ErrBusy = errors.New("wizard step already in progress")

// Runner is the part of request.Controller the wizard drives.
type Runner interface {
	Run(ctx context.Context, form models.FormState) request.Outcome
	Reset()
}

// Wizard holds the step pointer and the fields carried between steps. It is
// not persisted.
type Wizard struct {
	runners [3]Runner
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration)

	mu     sync.Mutex
	step   Step
	fields models.FormState
	gen    uint64
	busy   bool
}

// New returns a wizard at StepConfirmation. confirm issues the OTP, verify
// checks it and update sets the new password. advanceDelay is waited after a
// successful verify so the user can read the confirmation.
func New(confirm, verify, update Runner, advanceDelay time.Duration) *Wizard {
	return &Wizard{
		runners: [3]Runner{confirm, verify, update},
		delay:   advanceDelay,
		sleep:   sleepCtx,
		fields:  models.FormState{},
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Fields returns a copy of the fields carried so far.
func (w *Wizard) Fields() models.FormState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields.Clone()
}

// Pending reports whether the current step's request is in flight.
func (w *Wizard) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Submit runs the current step with form merged over the carried fields.
// On success the merged fields are kept and the pointer advances; the last
// step stays where it is. A context cancelled during the OTP advance delay
// leaves the pointer on StepOTP.
func (w *Wizard) Submit(ctx context.Context, form models.FormState) (request.Outcome, error) {
	step, merged, gen, err := w.acquire(form)
	if err != nil {
		return request.Outcome{}, err
	}
	defer w.release()

	out := w.runners[step].Run(ctx, merged)
	if !out.Succeeded() {
		return out, nil
	}

	if step == StepOTP && w.delay > 0 {
		w.sleep(ctx, w.delay)
		if ctx.Err() != nil {
			return out, nil
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return out, nil
	}
	w.fields = merged
	if step < StepNewPassword {
		w.step = step + 1
	}
	return out, nil
}

// Resend re-issues the confirmation request with the carried fields. The
// step pointer does not move.
func (w *Wizard) Resend(ctx context.Context) (request.Outcome, error) {
	_, merged, _, err := w.acquire(nil)
	if err != nil {
		return request.Outcome{}, err
	}
	defer w.release()

	return w.runners[StepConfirmation].Run(ctx, merged), nil
}

// Restart returns to StepConfirmation, drops the carried fields and resets
// every step's controller. Results of requests still in flight are ignored.
func (w *Wizard) Restart() {
	w.mu.Lock()
	w.step = StepConfirmation
	w.fields = models.FormState{}
	w.gen++
	w.mu.Unlock()

	for _, r := range w.runners {
		r.Reset()
	}
}

func (w *Wizard) acquire(form models.FormState) (Step, models.FormState, uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return w.step, nil, w.gen, ErrBusy
	}
	w.busy = true

	merged := w.fields.Clone()
	for k, v := range form {
		merged[k] = v
	}
	return w.step, merged, w.gen, nil
}

func (w *Wizard) release() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
