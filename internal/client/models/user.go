package models

// Location is the farm location stored on the user profile.
type Location struct {
	City  string  `json:"city,omitempty"`
	State string  `json:"state,omitempty"`
	Lat   float64 `json:"lat,omitempty"`
	Lon   float64 `json:"lon,omitempty"`
}

// User is the profile returned by the auth backend on login and signup.
type User struct {
	ID             string    `json:"_id,omitempty"`
	Username       string    `json:"username"`
	PhoneNo        string    `json:"phoneNo"`
	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	LanguageSpoken []string  `json:"languageSpoken,omitempty"`
	ProfilePic     string    `json:"profilePic,omitempty"`
	Location       *Location `json:"location,omitempty"`
}

// Initial returns the upper-cased first letter of the username, or "U".
func (u *User) Initial() string {
	if u == nil || u.Username == "" {
		return "U"
	}
	r := []rune(u.Username)[0]
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return string(r)
}

// AuthResult is the domain part of every auth endpoint response.
type AuthResult struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// ProfileCompletion is returned by GET /auth/profile-completion.
type ProfileCompletion struct {
	Percentage float64 `json:"percentage"`
}

// Ack is used for endpoints whose only payload is the envelope itself
// (logout, OTP generate/verify, password update).
type Ack struct{}
