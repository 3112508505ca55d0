package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

// AuthService implements login/logout on top of the document's user list
// and an in-process session registry.
type AuthService struct {
	store    ports.DocumentStore
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(store ports.DocumentStore, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, sessions: sessions, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Informe e-mail e senha.")
	}

	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	var found *domain.User
	for i := range doc.Users {
		if doc.Users[i].HasEmail(email) {
			found = &doc.Users[i]
			break
		}
	}
	if found == nil || !verifyPassword(found.Password, password) {
		s.log.Warn().Str("email", email).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(domain.NewSessionUser(*found))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", found.ID).Msg("login")
	return &ports.LoginResult{Token: sess.Token, User: sess.User}, nil
}

func (s *AuthService) Logout(_ context.Context, token string) error {
	s.sessions.Revoke(token)
	return nil
}

func (s *AuthService) Authenticate(token string) (domain.SessionUser, error) {
	if token == "" {
		return domain.SessionUser{}, domain.ErrUnauthorized
	}
	return s.sessions.Validate(token)
}

// HashPassword returns the bcrypt hash stored for new accounts. bcrypt
// only reads 72 bytes, longer secrets are refused as invalid input.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError("A senha deve ter no máximo 72 bytes.")
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword accepts bcrypt hashes and, for documents created before
// hashing was introduced, plain secrets.
func verifyPassword(stored, given string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
