package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/request"
	"github.com/dmitrijs2005/agroassist/internal/client/session"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/client/validation"
	"github.com/dmitrijs2005/agroassist/internal/common"
)

const (
	msgPhoneInvalid    = "Please enter a 10 digit valid phone number"
	msgPasswordShort   = "Password cannot be less than 8 characters"
	msgEmailRequired   = "Please enter your email"
	msgEmailInvalid    = "Please enter a valid email address"
	msgCountryCode     = "Unsupported country code"
	msgUsernameMissing = "Please enter a username"
	msgRoleInvalid     = "Please choose a role (Farmer or Logistics)"
	msgGenderInvalid   = "Please choose a gender (Male, Female or Other)"
)

// AuthService covers login, signup, logout and the profile completion
// fetched by the settings screen.
type AuthService struct {
	env Env

	phoneLogin *request.Controller[models.AuthResult]
	emailLogin *request.Controller[models.AuthResult]
	signup     *request.Controller[models.AuthResult]
	logout     *request.Controller[models.Ack]
	completion *request.Controller[models.ProfileCompletion]
}

// NewAuthService wires the auth controllers against env.
func NewAuthService(env Env) *AuthService {
	s := &AuthService{env: env}

	passwordRule := validation.MinLength(FieldPassword, 8, msgPasswordShort)

	s.phoneLogin = track(env, request.New(request.Spec[models.AuthResult]{
		Name: "login_phone",
		Rules: []validation.Rule{
			validation.OneOf(FieldCountryCode, CountryCodes, msgCountryCode),
			validation.Digits(FieldPhone, 10, msgPhoneInvalid),
			passwordRule,
		},
		Build: func(in request.Input) (client.Request, error) {
			return s.authRequest("/auth/login", map[string]string{
				"phoneNo":  in.Form.Trimmed(FieldCountryCode) + in.Form.Get(FieldPhone),
				"password": in.Form.Get(FieldPassword),
			}), nil
		},
		Accept:    request.RequireSuccessFlag[models.AuthResult],
		OnSuccess: s.loggedIn,
		Messages:  loginMessages,
		Timeout:   env.Timeouts.Request,
	}, env.Deps))

	s.emailLogin = track(env, request.New(request.Spec[models.AuthResult]{
		Name: "login_email",
		Rules: []validation.Rule{
			validation.Required(FieldEmail, msgEmailRequired),
			validation.Email(FieldEmail, msgEmailInvalid),
			passwordRule,
		},
		Build: func(in request.Input) (client.Request, error) {
			return s.authRequest("/auth/login", map[string]string{
				"email":    in.Form.Trimmed(FieldEmail),
				"password": in.Form.Get(FieldPassword),
			}), nil
		},
		Accept:    request.RequireSuccessFlag[models.AuthResult],
		OnSuccess: s.loggedIn,
		Messages:  loginMessages,
		Timeout:   env.Timeouts.Request,
	}, env.Deps))

	s.signup = track(env, request.New(request.Spec[models.AuthResult]{
		Name: "signup",
		Rules: []validation.Rule{
			validation.OneOf(FieldCountryCode, CountryCodes, msgCountryCode),
			validation.Digits(FieldPhone, 10, msgPhoneInvalid),
			validation.Required(FieldUsername, msgUsernameMissing),
			validation.Required(FieldEmail, msgEmailRequired),
			validation.Email(FieldEmail, msgEmailInvalid),
			passwordRule,
			validation.OneOf(FieldRole, Roles, msgRoleInvalid),
			validation.OneOf(FieldGender, Genders, msgGenderInvalid),
		},
		Build: func(in request.Input) (client.Request, error) {
			return s.authRequest("/auth/signup", map[string]string{
				"username": in.Form.Trimmed(FieldUsername),
				"phoneNo":  in.Form.Trimmed(FieldCountryCode) + in.Form.Get(FieldPhone),
				"email":    in.Form.Trimmed(FieldEmail),
				"password": in.Form.Get(FieldPassword),
				"role":     in.Form.Get(FieldRole),
				"gender":   in.Form.Get(FieldGender),
			}), nil
		},
		Accept:    request.RequireSuccessFlag[models.AuthResult],
		OnSuccess: s.loggedIn,
		Messages: request.Messages{
			Title:    "Signup",
			Success:  "User has successfully been signed up",
			NoResult: "An error occurred during signup",
		},
		Timeout: env.Timeouts.Request,
	}, env.Deps))

	s.logout = track(env, request.New(request.Spec[models.Ack]{
		Name: "logout",
		Build: func(request.Input) (client.Request, error) {
			return client.Request{Method: http.MethodPost, Base: client.BaseAuth, Path: "/auth/logout", Authenticated: true}, nil
		},
		Accept:    request.RequireSuccessFlag[models.Ack],
		OnSuccess: s.loggedOut,
		Messages:  request.Messages{Title: "Logout", Success: "Logged out", NoResult: "Logout error"},
		Timeout:   env.Timeouts.Request,
	}, env.Deps))

	s.completion = track(env, request.New(request.Spec[models.ProfileCompletion]{
		Name: "profile_completion",
		Build: func(request.Input) (client.Request, error) {
			return client.Request{Method: http.MethodGet, Base: client.BaseAuth, Path: "/auth/profile-completion", Authenticated: true}, nil
		},
		Accept: request.RequireSuccessFlag[models.ProfileCompletion],
		Messages: request.Messages{
			Title:    "Error occurred while fetching profile data",
			NoResult: "Profile data unavailable",
		},
		Timeout: env.Timeouts.Request,
	}, env.Deps))

	return s
}

var loginMessages = request.Messages{
	Title:    "Login",
	Success:  "User has successfully been signed in",
	NoResult: "An error occurred during login",
}

func (s *AuthService) authRequest(path string, body map[string]string) client.Request {
	return client.Request{Method: http.MethodPost, Base: client.BaseAuth, Path: path, JSON: body}
}

// LoginWithPhone logs in with country code, 10-digit phone and password.
// An empty country code defaults to +91.
func (s *AuthService) LoginWithPhone(ctx context.Context, form models.FormState) *request.Attempt[models.AuthResult] {
	return s.phoneLogin.Submit(ctx, withDefault(form, FieldCountryCode, DefaultCountryCode))
}

// LoginWithEmail logs in with email and password.
func (s *AuthService) LoginWithEmail(ctx context.Context, form models.FormState) *request.Attempt[models.AuthResult] {
	return s.emailLogin.Submit(ctx, form)
}

// Signup registers a new account and logs it in.
func (s *AuthService) Signup(ctx context.Context, form models.FormState) *request.Attempt[models.AuthResult] {
	return s.signup.Submit(ctx, withDefault(form, FieldCountryCode, DefaultCountryCode))
}

// Logout ends the session on the backend and forgets it locally.
func (s *AuthService) Logout(ctx context.Context) *request.Attempt[models.Ack] {
	return s.logout.Submit(ctx, nil)
}

// ProfileCompletion returns the completion percentage shown in settings,
// or 0 when it could not be fetched.
func (s *AuthService) ProfileCompletion(ctx context.Context) (float64, *request.Attempt[models.ProfileCompletion]) {
	a := s.completion.Submit(ctx, nil)
	if !a.Succeeded() {
		return 0, a
	}
	return a.Response.Percentage, a
}

// Restore loads a previously saved session into the holder. It returns
// common.ErrNoSession or common.ErrSessionExpired when there is nothing to
// restore; an expired session is also removed.
func (s *AuthService) Restore(ctx context.Context) (*session.Session, error) {
	if s.env.Sessions == nil {
		return nil, common.ErrNoSession
	}
	sess, err := s.env.Sessions.Load(ctx)
	if errors.Is(err, common.ErrSessionExpired) {
		if cerr := s.env.Sessions.Clear(ctx); cerr != nil {
			s.env.logger().Warn(ctx, "clearing expired session", "error", cerr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.env.Session.Set(sess)
	return sess, nil
}

// Pending reports whether any auth request is in flight.
func (s *AuthService) Pending() bool {
	return s.phoneLogin.Pending() || s.emailLogin.Pending() || s.signup.Pending() ||
		s.logout.Pending() || s.completion.Pending()
}

func (s *AuthService) loggedIn(ctx context.Context, a *request.Attempt[models.AuthResult]) {
	sess := session.New(a.Response.User, a.Response.Token)
	s.env.Session.Set(sess)

	if s.env.Sessions != nil {
		if err := s.env.Sessions.Save(ctx, sess); err != nil {
			s.env.logger().Error(ctx, "saving session", "error", err)
		}
	}
	s.env.navigator().Navigate(ctx, ui.RouteMainApp)
}

func (s *AuthService) loggedOut(ctx context.Context, _ *request.Attempt[models.Ack]) {
	s.env.forgetSession(ctx)
	s.env.navigator().Navigate(ctx, ui.RouteWelcome)
}

func withDefault(form models.FormState, field, value string) models.FormState {
	out := form.Clone()
	if out.Trimmed(field) == "" {
		out[field] = value
	}
	return out
}
