package services

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/envelope"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/request"
	"github.com/dmitrijs2005/agroassist/internal/client/validation"
)

// CropTab is the view shown by the crop suggestion screen.
type CropTab string

const (
	TabSuggest  CropTab = "suggest"
	TabCalendar CropTab = "calendar"
)

type suggestionPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Region    string  `json:"region"`
	LandAcres float64 `json:"land_acres"`
	Lang      string  `json:"lang"`
}

type calendarPayload struct {
	Crop      string  `json:"crop"`
	Region    string  `json:"region"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Lang      string  `json:"lang"`
}

// CropService requests crop suggestions and crop calendars.
type CropService struct {
	env Env

	suggestion *request.Controller[models.CropSuggestion]
	calendar   *request.Controller[models.CropCalendar]

	mu  sync.Mutex
	tab CropTab
}

func NewCropService(env Env) *CropService {
	s := &CropService{env: env, tab: TabSuggest}

	s.suggestion = track(env, request.New(request.Spec[models.CropSuggestion]{
		Name: "crop_suggestion",
		Rules: []validation.Rule{
			validation.Required(FieldCity, "Please fill in all fields"),
			validation.Required(FieldState, "Please fill in all fields"),
			validation.Required(FieldLandAcres, "Please fill in all fields"),
			validation.PositiveFloat(FieldLandAcres, "Land size must be a positive number"),
		},
		Build: func(in request.Input) (client.Request, error) {
			acres, err := strconv.ParseFloat(in.Form.Trimmed(FieldLandAcres), 64)
			if err != nil {
				return client.Request{}, err
			}
			lat, lon := s.coordinates()
			return client.Request{
				Method: http.MethodPost,
				Base:   client.BaseAI,
				Path:   "/crop_suggestion",
				JSON: suggestionPayload{
					Latitude:  lat,
					Longitude: lon,
					Region:    region(in.Form),
					LandAcres: acres,
					Lang:      in.Lang,
				},
			}, nil
		},
		Accept: func(resp *models.CropSuggestion, _ envelope.Envelope) bool {
			return len(resp.Recommendations) > 0
		},
		OnSuccess: func(context.Context, *request.Attempt[models.CropSuggestion]) {
			s.setTab(TabSuggest)
		},
		Messages: request.Messages{
			Title:    "Crop Suggestion",
			Success:  "Recommendations generated",
			NoResult: "No recommendations available",
		},
		Localized: true,
		Timeout:   env.Timeouts.Request,
	}, env.Deps))

	s.calendar = track(env, request.New(request.Spec[models.CropCalendar]{
		Name: "crop_calendar",
		Rules: []validation.Rule{
			validation.Required(FieldCrop, "Please enter a crop name"),
		},
		Build: func(in request.Input) (client.Request, error) {
			lat, lon := s.coordinates()
			return client.Request{
				Method: http.MethodPost,
				Base:   client.BaseAI,
				Path:   "/crop_calendar",
				JSON: calendarPayload{
					Crop:      in.Form.Trimmed(FieldCrop),
					Region:    region(in.Form),
					Latitude:  lat,
					Longitude: lon,
					Lang:      in.Lang,
				},
			}, nil
		},
		Accept: func(resp *models.CropCalendar, _ envelope.Envelope) bool {
			return len(resp.Calendar) > 0
		},
		OnSuccess: func(context.Context, *request.Attempt[models.CropCalendar]) {
			s.setTab(TabCalendar)
		},
		Messages: request.Messages{
			Title:    "Crop Calendar",
			Success:  "Calendar generated",
			NoResult: "No calendar data available",
		},
		Localized: true,
		Timeout:   env.Timeouts.Request,
	}, env.Deps))

	return s
}

// Suggest requests crop recommendations. City and state default to the
// session user's location.
func (s *CropService) Suggest(ctx context.Context, form models.FormState) *request.Attempt[models.CropSuggestion] {
	return s.suggestion.Submit(ctx, s.withLocation(form))
}

// Calendar requests the week-by-week calendar for one crop. A successful
// reply switches the screen to the calendar tab.
func (s *CropService) Calendar(ctx context.Context, form models.FormState) *request.Attempt[models.CropCalendar] {
	return s.calendar.Submit(ctx, s.withLocation(form))
}

// Tab returns the view the screen should show.
func (s *CropService) Tab() CropTab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func (s *CropService) setTab(t CropTab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = t
}

// Pending reports whether a suggestion or calendar request is in flight.
func (s *CropService) Pending() bool {
	return s.suggestion.Pending() || s.calendar.Pending()
}

// Reset forgets both results and returns to the suggestion tab.
func (s *CropService) Reset() {
	s.suggestion.Reset()
	s.calendar.Reset()
	s.setTab(TabSuggest)
}

func (s *CropService) withLocation(form models.FormState) models.FormState {
	out := form.Clone()
	u := s.env.Session.User()
	if u == nil || u.Location == nil {
		return out
	}
	if out.Trimmed(FieldCity) == "" {
		out[FieldCity] = u.Location.City
	}
	if out.Trimmed(FieldState) == "" {
		out[FieldState] = u.Location.State
	}
	return out
}

func (s *CropService) coordinates() (float64, float64) {
	u := s.env.Session.User()
	if u == nil || u.Location == nil {
		return 0, 0
	}
	return u.Location.Lat, u.Location.Lon
}

func region(form models.FormState) string {
	return form.Trimmed(FieldCity) + ", " + form.Trimmed(FieldState)
}
