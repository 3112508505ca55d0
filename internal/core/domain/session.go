package domain

import "time"

// SessionUser is the identity attached to a session.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is a bearer-token login. Sessions live in memory only.
type Session struct {
	Token     string
	User      SessionUser
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func NewSessionUser(u User) SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
