package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormState_Helpers(t *testing.T) {
	f := FormState{}
	f.Set("city", "  Pune ").Set("state", "Maharashtra")

	assert.Equal(t, "  Pune ", f.Get("city"))
	assert.Equal(t, "Pune", f.Trimmed("city"))
	assert.Equal(t, "", f.Get("missing"))

	c := f.Clone()
	c.Set("city", "Nashik")
	assert.Equal(t, "  Pune ", f.Get("city"), "clone must not alias")
}

func TestUser_Initial(t *testing.T) {
	assert.Equal(t, "R", (&User{Username: "ravi"}).Initial())
	assert.Equal(t, "U", (&User{}).Initial())

	var u *User
	assert.Equal(t, "U", u.Initial())
}

func TestAsset_Defaults(t *testing.T) {
	var a Asset
	assert.Equal(t, "photo.jpg", a.Name())
	assert.Equal(t, "image/jpeg", a.Type())

	a = Asset{FileName: "leaf.png", MIMEType: "image/png"}
	assert.Equal(t, "leaf.png", a.Name())
	assert.Equal(t, "image/png", a.Type())
}
