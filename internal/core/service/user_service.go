package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

type UserService struct {
	store    ports.DocumentStore
	sessions ports.SessionStore
	log      zerolog.Logger
	now      func() time.Time
}

func NewUserService(store ports.DocumentStore, sessions ports.SessionStore, log zerolog.Logger) *UserService {
	return &UserService{store: store, sessions: sessions, log: log, now: time.Now}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, len(doc.Users))
	for i, u := range doc.Users {
		out[i] = u.Public()
	}
	return out, nil
}

func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.PublicUser, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.TrimSpace(in.Role)
	if name == "" || email == "" || role == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domain.NewValidationError("Todos os campos são obrigatórios.")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  hash,
		CreatedAt: s.now().UTC(),
	}

	err = s.store.Update(ctx, func(doc *domain.Document) error {
		for _, u := range doc.Users {
			if u.HasEmail(email) {
				return domain.ErrEmailTaken
			}
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user created")
	pub := user.Public()
	return &pub, nil
}

// DeleteUser refuses to remove the last account and revokes the removed
// user's sessions.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if len(doc.Users) <= 1 {
			return domain.ErrLastUser
		}
		for i, u := range doc.Users {
			if u.ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return err
	}

	s.sessions.RevokeUser(id)
	s.log.Info().Str("user_id", id).Msg("user removed")
	return nil
}
