package ports

import "github.com/smartaviation/site/internal/core/domain"

// SessionStore is the registry of live admin sessions.
type SessionStore interface {
	Create(user domain.SessionUser) (domain.Session, error)
	// Validate returns domain.ErrUnauthorized for unknown tokens and
	// domain.ErrSessionExpired (evicting the entry) for expired ones.
	Validate(token string) (domain.SessionUser, error)
	Revoke(token string)
	// RevokeUser drops every session owned by userID.
	RevokeUser(userID string)
}
