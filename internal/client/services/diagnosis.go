package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/envelope"
	"github.com/dmitrijs2005/agroassist/internal/client/media"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/request"
	"github.com/dmitrijs2005/agroassist/internal/client/ui"
	"github.com/dmitrijs2005/agroassist/internal/client/validation"
	"github.com/dmitrijs2005/agroassist/internal/common"
	"github.com/google/uuid"
)

// DiagnosisService uploads a plant photo for disease diagnosis.
type DiagnosisService struct {
	env  Env
	ctrl *request.Controller[models.Diagnosis]

	// picked assets waiting for their attempt, keyed by form token
	mu     sync.Mutex
	assets map[string]models.Asset
}

func NewDiagnosisService(env Env) *DiagnosisService {
	s := &DiagnosisService{env: env, assets: make(map[string]models.Asset)}

	s.ctrl = track(env, request.New(request.Spec[models.Diagnosis]{
		Name: "plant_disease",
		Rules: []validation.Rule{
			validation.Required(FieldImage, "Please select an image first"),
		},
		Build: func(in request.Input) (client.Request, error) {
			asset, ok := s.take(in.Form.Get(FieldImage))
			if !ok {
				return client.Request{}, fmt.Errorf("%w: selected image is no longer available", common.ErrValidation)
			}
			return client.Request{
				Method: http.MethodPost,
				Base:   client.BaseAI,
				Path:   "/plant-disease",
				Form: &client.Multipart{
					Files: []client.FilePart{{
						Field:       "image",
						FileName:    asset.Name(),
						ContentType: asset.Type(),
						Data:        asset.Data,
					}},
					Fields: []client.Field{{Name: "lang", Value: in.Lang}},
				},
			}, nil
		},
		Accept: func(resp *models.Diagnosis, _ envelope.Envelope) bool {
			return resp.Disease != ""
		},
		Reject: func(status int, env envelope.Envelope) string {
			if status < 200 || status >= 300 {
				return fmt.Sprintf("Server error (%d): %s", status, env.Text())
			}
			return ""
		},
		Messages: request.Messages{
			Title:        "Crop Care",
			Success:      "Diagnosis ready",
			NoResult:     "Invalid response from server",
			Connectivity: "No response from server. Please check your connection.",
		},
		Localized: true,
		Timeout:   env.Timeouts.Upload,
	}, env.Deps))

	return s
}

// Diagnose consumes a pick result. Cancelled picks do nothing and failed
// picks are reported without a request; both return nil.
func (s *DiagnosisService) Diagnose(ctx context.Context, pick media.Result) *request.Attempt[models.Diagnosis] {
	switch pick.Outcome {
	case media.OutcomeCancelled:
		return nil
	case media.OutcomeFailed:
		s.env.notifier().Notify(ctx, ui.Notification{Kind: ui.KindError, Title: "Crop Care", Body: pick.Reason})
		return nil
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.assets[token] = pick.Asset
	s.mu.Unlock()

	a := s.ctrl.Submit(ctx, models.FormState{FieldImage: token})

	// drop the asset if the builder never ran
	s.take(token)
	return a
}

// Pending reports whether an upload is in flight.
func (s *DiagnosisService) Pending() bool {
	return s.ctrl.Pending()
}

func (s *DiagnosisService) Reset() {
	s.ctrl.Reset()
}

func (s *DiagnosisService) take(token string) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[token]
	delete(s.assets, token)
	return a, ok
}
