package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/services"
	"github.com/dmitrijs2005/agroassist/internal/common"
)

// prompt is a single form field collected from the terminal.
type prompt struct {
	field  string
	text   string
	def    string
	secret bool
}

// collect asks every prompt in order and returns the answers as a form.
// Secret fields are read without echo and wiped once copied.
func (a *App) collect(fields ...prompt) (models.FormState, error) {
	form := models.FormState{}
	for _, p := range fields {
		if p.secret {
			pw, err := getPassword(p.text, a.out)
			if err != nil {
				return nil, err
			}
			form[p.field] = string(pw)
			common.WipeByteArray(pw)
			continue
		}

		text := p.text
		if p.def != "" {
			text += " [" + p.def + "]"
		}
		v, err := getSimpleText(a.reader, text, a.out)
		if err != nil {
			return nil, err
		}
		form[p.field] = withDefault(v, p.def)
	}
	return form, nil
}

// Login asks for phone or email credentials and logs the user in. The
// session is saved and restored on the next start.
func (a *App) Login(ctx context.Context) error {
	method, err := getSimpleText(a.reader, "Login with (p)hone or (e)mail", a.out)
	if err != nil {
		return err
	}

	switch strings.ToLower(method) {
	case "", "p", "phone":
		form, err := a.collect(
			prompt{field: services.FieldCountryCode, text: "Country code " + strings.Join(services.CountryCodes, "/"), def: services.DefaultCountryCode},
			prompt{field: services.FieldPhone, text: "Phone number (10 digits)"},
			prompt{field: services.FieldPassword, text: "Password", secret: true},
		)
		if err != nil {
			return err
		}
		a.auth.LoginWithPhone(ctx, form)

	case "e", "email":
		form, err := a.collect(
			prompt{field: services.FieldEmail, text: "Email"},
			prompt{field: services.FieldPassword, text: "Password", secret: true},
		)
		if err != nil {
			return err
		}
		a.auth.LoginWithEmail(ctx, form)

	default:
		a.println("Unknown login method:", method)
	}
	return nil
}

// Signup registers a new account and logs it in.
func (a *App) Signup(ctx context.Context) error {
	form, err := a.collect(
		prompt{field: services.FieldUsername, text: "Username"},
		prompt{field: services.FieldCountryCode, text: "Country code " + strings.Join(services.CountryCodes, "/"), def: services.DefaultCountryCode},
		prompt{field: services.FieldPhone, text: "Phone number (10 digits)"},
		prompt{field: services.FieldEmail, text: "Email"},
		prompt{field: services.FieldPassword, text: "Password", secret: true},
		prompt{field: services.FieldRole, text: "Role " + strings.Join(services.Roles, "/"), def: services.Roles[0]},
		prompt{field: services.FieldGender, text: "Gender " + strings.Join(services.Genders, "/")},
	)
	if err != nil {
		return err
	}
	a.auth.Signup(ctx, form)
	return nil
}

// Logout ends the session on the backend and locally.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	return nil
}
