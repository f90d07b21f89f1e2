package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/agroassist/internal/client/services"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/client/wizard"
	"github.com/dmitrijs2005/agroassist/internal/common"
)

// Languages the backends answer in.
var supportedLanguages = []string{"en", "hi", "mr", "pa", "gu", "bn", "ta", "te", "kn", "ml"}

// Password runs the OTP-confirmed password change. Entering "r" at the OTP
// prompt sends the code again; an empty line abandons the flow.
func (a *App) Password(ctx context.Context) error {
	a.Navigate(ctx, ui.RoutePasswordChange)
	a.password.Restart()
	defer a.password.Restart()

	out, err := a.password.GenerateOTP(ctx)
	if err != nil {
		return err
	}
	if !out.Succeeded() {
		return nil
	}

	for a.password.Step() == wizard.StepOTP {
		code, err := getSimpleText(a.reader, "OTP sent to your phone ('r' to resend, empty to cancel)", a.out)
		if err != nil {
			return err
		}
		switch strings.ToLower(code) {
		case "":
			return nil
		case "r":
			if _, err := a.password.ResendOTP(ctx); err != nil {
				return err
			}
		default:
			if _, err := a.password.VerifyOTP(ctx, code); err != nil {
				return err
			}
		}
	}

	for a.password.Step() == wizard.StepNewPassword {
		form, err := a.collect(
			prompt{field: services.FieldNewPassword, text: "New password", secret: true},
			prompt{field: services.FieldConfirmPassword, text: "Confirm password", secret: true},
		)
		if err != nil {
			return err
		}
		if form[services.FieldNewPassword] == "" {
			return nil
		}

		out, err := a.password.UpdatePassword(ctx, form[services.FieldNewPassword], form[services.FieldConfirmPassword])
		if err != nil {
			return err
		}
		if out.Succeeded() {
			return nil
		}
	}
	return nil
}

// Settings shows the profile completion and the chosen language.
func (a *App) Settings(ctx context.Context) error {
	a.Navigate(ctx, ui.RouteSettings)

	pct, _ := a.auth.ProfileCompletion(ctx)
	a.printf("Profile completion: %.0f%%\n", pct)
	a.printf("Language: %s\n", a.language(ctx))
	return nil
}

// Profile prints the session user.
func (a *App) Profile(ctx context.Context) error {
	a.Navigate(ctx, ui.RouteProfile)

	u := a.session.User()
	if u == nil {
		return common.ErrNoSession
	}
	a.println(renderProfile(u))
	return nil
}

// Lang prints the chosen language, or stores args[0] as the new one.
func (a *App) Lang(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Language: %s (available: %s)\n", a.language(ctx), strings.Join(supportedLanguages, ", "))
		return nil
	}

	code := strings.ToLower(strings.TrimSpace(args[0]))
	if !slices.Contains(supportedLanguages, code) {
		return fmt.Errorf("%w: unsupported language %q", common.ErrValidation, code)
	}
	if a.prefs == nil {
		return errors.New("preferences are not available")
	}
	if err := a.prefs.SetLanguage(ctx, code); err != nil {
		return err
	}
	a.printf("Language set to %s\n", code)
	return nil
}

func (a *App) language(ctx context.Context) string {
	if a.prefs == nil {
		return a.config.DefaultLanguage
	}
	code, err := a.prefs.Language(ctx)
	if err != nil {
		a.logger.Debug(ctx, "reading language", "error", err)
	}
	return code
}
