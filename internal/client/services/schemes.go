package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/request"
	"github.com/dmitrijs2005/agroassist/internal/client/validation"
)

const (
	SchemeGreeting = "Hello! Ask me about government schemes for farmers."
	SchemeNoData   = "No data available"
	SchemeNetwork  = "Network error. Please try again."
)

// SchemeService is the government scheme chatbot. It keeps the transcript
// of the current conversation.
type SchemeService struct {
	env  Env
	ctrl *request.Controller[models.SchemeReply]

	mu         sync.Mutex
	transcript []models.ChatMessage
}

func NewSchemeService(env Env) *SchemeService {
	s := &SchemeService{env: env}
	s.ctrl = track(env, request.New(request.Spec[models.SchemeReply]{
		Name:  "govscheme",
		Rules: []validation.Rule{validation.Required(FieldQuery, "Please type a question")},
		Build: func(in request.Input) (client.Request, error) {
			return client.Request{
				Method: http.MethodPost,
				Base:   client.BaseAI,
				Path:   "/govscheme",
				JSON: map[string]string{
					"query": fmt.Sprintf("%s + please answer in %s", in.Form.Trimmed(FieldQuery), in.Lang),
				},
			}, nil
		},
		Messages:  request.Messages{Title: "Schemes", Connectivity: SchemeNetwork},
		Localized: true,
		Timeout:   env.Timeouts.Request,
	}, env.Deps))
	s.Clear()
	return s
}

// Ask sends text to the bot. Blank text is ignored and returns nil. Both the
// question and the answer (or the network error) are appended to the
// transcript.
func (s *SchemeService) Ask(ctx context.Context, text string) *request.Attempt[models.SchemeReply] {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s.append(models.ChatMessage{From: models.SpeakerUser, Text: text})

	a := s.ctrl.Submit(ctx, models.FormState{FieldQuery: text})
	if a.Superseded {
		return a
	}

	reply := SchemeNoData
	switch {
	case a.Succeeded() && strings.TrimSpace(a.Response.Response) != "":
		reply = a.Response.Response
	case !a.Succeeded():
		reply = SchemeNetwork
	}
	s.append(models.ChatMessage{From: models.SpeakerBot, Text: reply, FromBackend: true})
	return a
}

// Transcript returns a copy of the conversation so far.
func (s *SchemeService) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Clear restarts the conversation from the greeting.
func (s *SchemeService) Clear() {
	s.ctrl.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = []models.ChatMessage{{From: models.SpeakerBot, Text: SchemeGreeting}}
}

func (s *SchemeService) Pending() bool {
	return s.ctrl.Pending()
}

func (s *SchemeService) append(m models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, m)
}
