package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemes_Transcript(t *testing.T) {
	te := newTestEnv(nil)
	svc := NewSchemeService(te.Env)
	ctx := context.Background()

	require.Equal(t, []models.ChatMessage{{From: models.SpeakerBot, Text: SchemeGreeting}}, svc.Transcript())

	assert.Nil(t, svc.Ask(ctx, "   "))
	assert.Equal(t, 0, te.client.Calls())

	te.client.Reply("/govscheme", 200, `{"response":"**PM-KISAN** gives Rs 6000 per year."}`)
	a := svc.Ask(ctx, "What is PM-KISAN?")
	require.True(t, a.Succeeded())
	assert.Equal(t, map[string]string{"query": "What is PM-KISAN? + please answer in hi"}, te.client.Last().JSON)

	te.client.Reply("/govscheme", 200, `{"response":""}`)
	svc.Ask(ctx, "And PMFBY?")

	te.client.Err = client.ErrUnavailable
	svc.Ask(ctx, "Hello?")

	assert.Equal(t, []models.ChatMessage{
		{From: models.SpeakerBot, Text: SchemeGreeting},
		{From: models.SpeakerUser, Text: "What is PM-KISAN?"},
		{From: models.SpeakerBot, Text: "**PM-KISAN** gives Rs 6000 per year.", FromBackend: true},
		{From: models.SpeakerUser, Text: "And PMFBY?"},
		{From: models.SpeakerBot, Text: SchemeNoData, FromBackend: true},
		{From: models.SpeakerUser, Text: "Hello?"},
		{From: models.SpeakerBot, Text: SchemeNetwork, FromBackend: true},
	}, svc.Transcript())

	svc.Clear()
	assert.Len(t, svc.Transcript(), 1)
	assert.False(t, svc.Pending())
}
