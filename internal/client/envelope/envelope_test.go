package envelope

import (
	"testing"

	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_SuccessEnvelope(t *testing.T) {
	body := []byte(`{"success":true,"message":"Logged in","user":{"username":"ravi","phoneNo":"+919876543210"},"token":"abc"}`)

	res, env, err := Decode[models.AuthResult](body)
	require.NoError(t, err)

	assert.True(t, env.Succeeded())
	assert.False(t, env.Rejected())
	assert.Equal(t, "Logged in", env.Text())
	require.NotNil(t, res.User)
	assert.Equal(t, "ravi", res.User.Username)
	assert.Equal(t, "abc", res.Token)
}

func TestDecode_WithoutSuccessFlag(t *testing.T) {
	body := []byte(`{"recommendations":[{"crop":"Bajra","estimated_total_yield_kg":500,"expected_yield_per_acre_kg":200,"risk_percent":10}],"season":"Kharif"}`)

	res, env, err := Decode[models.CropSuggestion](body)
	require.NoError(t, err)

	assert.Nil(t, env.Success)
	assert.False(t, env.Succeeded())
	assert.False(t, env.Rejected())
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "Bajra", res.Recommendations[0].Crop)
	assert.Equal(t, 200.0, res.Recommendations[0].ExpectedYieldPerAcreKg)
	assert.Equal(t, "Kharif", res.Season)
}

func TestDecode_Rejections(t *testing.T) {
	_, env, err := Decode[models.Ack]([]byte(`{"success":false,"message":"X"}`))
	require.NoError(t, err)
	assert.True(t, env.Rejected())
	assert.Equal(t, "X", env.Text())

	_, env, err = Decode[models.Diagnosis]([]byte(`{"error":"no leaf found"}`))
	require.NoError(t, err)
	assert.True(t, env.Rejected())
	assert.Equal(t, "no leaf found", env.Text())
}

func TestDecode_Malformed(t *testing.T) {
	for _, body := range []string{``, `   `, `[]`, `"text"`, `{"success":`, `<html>oops</html>`, `{"recommendations":"many"}`} {
		t.Run(body, func(t *testing.T) {
			_, _, err := Decode[models.CropSuggestion]([]byte(body))
			require.ErrorIs(t, err, common.ErrDecode)
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	env, ok := DecodeEnvelope([]byte(`{"error":"boom"}`))
	assert.True(t, ok)
	assert.Equal(t, "boom", env.Text())

	_, ok = DecodeEnvelope([]byte(`Internal Server Error`))
	assert.False(t, ok)
}

func TestMarshal(t *testing.T) {
	b, err := Marshal(map[string]any{"phoneNo": "+911234567890", "otp": "1234"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"otp":"1234","phoneNo":"+911234567890"}`, string(b))
}
