package models

// Session is the signed-in user's state. It is created on login, destroyed on
// logout and read on every request to an authenticated page.
type Session struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Valid reports whether the session carries a token
func (s Session) Valid() bool {
	return s.Token != ""
}
