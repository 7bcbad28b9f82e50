// Package models defines the data records exchanged with the GoBarber API
// and cached locally by the client.
package models

// User is the identity record of the signed-in account.
//
// AvatarURL may be empty for accounts that never uploaded a picture.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Session pairs the bearer token with its user. A session either exists with
// both fields populated or does not exist at all.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Valid reports whether the session satisfies the all-or-nothing rule:
// a non-empty token and a user with an ID.
func (s Session) Valid() bool {
	return s.Token != "" && s.User.ID != ""
}
