package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/request"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/client/validation"
	"github.com/dmitrijs2005/agroassist/internal/client/wizard"
)

// ErrWrongStep is returned when a password change step is called out of order.
var ErrWrongStep = errors.New("password change step out of order")

// PasswordService drives the confirmation -> otp -> newPassword flow.
type PasswordService struct {
	env    Env
	wizard *wizard.Wizard
}

func NewPasswordService(env Env) *PasswordService {
	s := &PasswordService{env: env}
	title := "Change Password"

	generate := track(env, request.New(request.Spec[models.Ack]{
		Name:  "otp_generate",
		Rules: []validation.Rule{validation.Required(FieldPhone, "Phone number not found in user profile")},
		Build: func(in request.Input) (client.Request, error) {
			return client.Request{
				Method: http.MethodPost,
				Base:   client.BaseAuth,
				Path:   "/otp/otp-generate",
				JSON:   map[string]string{"phoneNo": in.Form.Trimmed(FieldPhone)},
			}, nil
		},
		Accept: request.RequireSuccessFlag[models.Ack],
		Messages: request.Messages{
			Title:        title,
			Success:      "OTP sent",
			NoResult:     "Failed to send OTP",
			Connectivity: "An error occurred while sending OTP",
		},
		Timeout: env.Timeouts.Request,
	}, env.Deps))

	verify := track(env, request.New(request.Spec[models.Ack]{
		Name:  "otp_verify",
		Rules: []validation.Rule{validation.Required(FieldOTP, "Please enter the OTP")},
		Build: func(in request.Input) (client.Request, error) {
			return client.Request{
				Method: http.MethodPost,
				Base:   client.BaseAuth,
				Path:   "/otp/otp-verify",
				JSON: map[string]string{
					"phoneNo": in.Form.Trimmed(FieldPhone),
					"otp":     in.Form.Trimmed(FieldOTP),
				},
			}, nil
		},
		Accept: request.RequireSuccessFlag[models.Ack],
		Messages: request.Messages{
			Title:        title,
			Success:      "Your otp has been verified successfully.",
			NoResult:     "Invalid OTP",
			Connectivity: "An error occurred while verifying OTP",
		},
		Timeout: env.Timeouts.Request,
	}, env.Deps))

	update := track(env, request.New(request.Spec[models.Ack]{
		Name: "update_password",
		Rules: []validation.Rule{
			validation.Required(FieldNewPassword, "Please enter a valid password"),
			validation.Matches(FieldConfirmPassword, FieldNewPassword, "Entered passwords are not matching."),
		},
		Build: func(in request.Input) (client.Request, error) {
			return client.Request{
				Method:        http.MethodPut,
				Base:          client.BaseAuth,
				Path:          "/auth/update-password",
				JSON:          map[string]string{"newPassword": in.Form.Get(FieldNewPassword)},
				Authenticated: true,
			}, nil
		},
		Accept: request.RequireSuccessFlag[models.Ack],
		OnSuccess: func(ctx context.Context, _ *request.Attempt[models.Ack]) {
			s.env.navigator().Navigate(ctx, ui.RouteSettings)
		},
		Messages: request.Messages{
			Title:    title,
			Success:  "Your password has been updated successfully",
			NoResult: "Please try again later",
		},
		Timeout: env.Timeouts.Request,
	}, env.Deps))

	s.wizard = wizard.New(generate, verify, update, env.Timeouts.OTPAdvance)
	return s
}

// Step returns the current step of the flow.
func (s *PasswordService) Step() wizard.Step {
	return s.wizard.Step()
}

// GenerateOTP sends an OTP to the session user's phone number.
func (s *PasswordService) GenerateOTP(ctx context.Context) (request.Outcome, error) {
	if err := s.expect(wizard.StepConfirmation); err != nil {
		return request.Outcome{}, err
	}
	phone := ""
	if u := s.env.Session.User(); u != nil {
		phone = u.PhoneNo
	}
	return s.wizard.Submit(ctx, models.FormState{FieldPhone: phone})
}

// ResendOTP sends the OTP again without leaving the otp step.
func (s *PasswordService) ResendOTP(ctx context.Context) (request.Outcome, error) {
	if err := s.expect(wizard.StepOTP); err != nil {
		return request.Outcome{}, err
	}
	return s.wizard.Resend(ctx)
}

// VerifyOTP checks otp. On success the flow moves to newPassword after the
// configured delay.
func (s *PasswordService) VerifyOTP(ctx context.Context, otp string) (request.Outcome, error) {
	if err := s.expect(wizard.StepOTP); err != nil {
		return request.Outcome{}, err
	}
	return s.wizard.Submit(ctx, models.FormState{FieldOTP: otp})
}

// UpdatePassword sets the new password and navigates to settings.
func (s *PasswordService) UpdatePassword(ctx context.Context, password, confirm string) (request.Outcome, error) {
	if err := s.expect(wizard.StepNewPassword); err != nil {
		return request.Outcome{}, err
	}
	return s.wizard.Submit(ctx, models.FormState{FieldNewPassword: password, FieldConfirmPassword: confirm})
}

// Restart returns the flow to the confirmation step.
func (s *PasswordService) Restart() {
	s.wizard.Restart()
}

func (s *PasswordService) Pending() bool {
	return s.wizard.Pending()
}

func (s *PasswordService) expect(step wizard.Step) error {
	if cur := s.wizard.Step(); cur != step {
		return fmt.Errorf("%w: at %s, not %s", ErrWrongStep, cur, step)
	}
	return nil
}
