package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/services"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
)

func (a *App) location() (city, state string) {
	if u := a.session.User(); u != nil && u.Location != nil {
		return u.Location.City, u.Location.State
	}
	return "", ""
}

// Suggest asks for the farm location and size and prints the recommended
// crops.
func (a *App) Suggest(ctx context.Context) error {
	a.Navigate(ctx, ui.RouteCropSuggestion)

	city, state := a.location()
	form, err := a.collect(
		prompt{field: services.FieldCity, text: "City", def: city},
		prompt{field: services.FieldState, text: "State", def: state},
		prompt{field: services.FieldLandAcres, text: "Land size (acres)"},
	)
	if err != nil {
		return err
	}

	at := a.crop.Suggest(ctx, form)
	if at.Succeeded() {
		a.println(renderSuggestion(at.Response))
	}
	return nil
}

// Calendar asks for a crop and prints its week-by-week calendar.
func (a *App) Calendar(ctx context.Context) error {
	a.Navigate(ctx, ui.RouteCropSuggestion)

	city, state := a.location()
	form, err := a.collect(
		prompt{field: services.FieldCrop, text: "Crop"},
		prompt{field: services.FieldCity, text: "City", def: city},
		prompt{field: services.FieldState, text: "State", def: state},
	)
	if err != nil {
		return err
	}

	at := a.crop.Calendar(ctx, form)
	if at.Succeeded() {
		a.println(renderCalendar(at.Response))
	}
	return nil
}

// Diagnose picks a plant photo and prints the diagnosis.
func (a *App) Diagnose(ctx context.Context) error {
	a.Navigate(ctx, ui.RouteCropCare)

	at := a.diagnosis.Diagnose(ctx, a.picker.Pick(ctx))
	if at.Succeeded() {
		a.println(renderDiagnosis(at.Response))
	}
	return nil
}

// Scheme opens the government scheme chat. An empty line leaves the chat.
func (a *App) Scheme(ctx context.Context) error {
	a.Navigate(ctx, ui.RouteScheme)

	for _, m := range a.schemes.Transcript() {
		a.printChat(m)
	}

	for {
		q, err := getSimpleText(a.reader, "Your question (empty to leave)", a.out)
		if err != nil {
			return err
		}
		if strings.TrimSpace(q) == "" {
			a.Navigate(ctx, ui.RouteMainApp)
			return nil
		}

		seen := len(a.schemes.Transcript())
		a.schemes.Ask(ctx, q)
		if t := a.schemes.Transcript(); len(t) > seen {
			for _, m := range t[seen:] {
				a.printChat(m)
			}
		}
	}
}

func (a *App) printChat(m models.ChatMessage) {
	if m.From == models.SpeakerUser {
		a.println("you>", m.Text)
		return
	}
	a.println(a.markdown.Render(m.Text))
}
