package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

func TestUserService_CreateUser(t *testing.T) {
	store := seededStore(t)
	svc := NewUserService(store, newStubSessions(), zerolog.Nop())

	u, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name: "Bruno", Email: " Bruno@Example.com ", Role: "Editor", Password: "pw",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if u.Email != "bruno@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}

	stored := store.snapshot().Users
	if len(stored) != 2 {
		t.Fatalf("expected 2 users, got %d", len(stored))
	}
	if stored[1].Password == "pw" {
		t.Fatalf("expected password to be hashed")
	}

	list, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 public users, got %d", len(list))
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	store := seededStore(t)
	svc := NewUserService(store, newStubSessions(), zerolog.Nop())

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name: "Outro", Email: "ADMIN@smartaviation.com", Role: "Editor", Password: "pw",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(store.snapshot().Users) != 1 {
		t.Fatalf("duplicate must not be stored")
	}
}

func TestUserService_CreateUser_MissingField(t *testing.T) {
	svc := NewUserService(seededStore(t), newStubSessions(), zerolog.Nop())
	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Name: "X", Email: "x@y.z", Role: "", Password: "pw"})
	if !isValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_CreateUser_PasswordTooLong(t *testing.T) {
	store := seededStore(t)
	svc := NewUserService(store, newStubSessions(), zerolog.Nop())

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name: "Longa", Email: "longa@example.com", Role: "Editor", Password: strings.Repeat("x", 80),
	})
	if !isValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "A senha deve ter no máximo 72 bytes." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if len(store.snapshot().Users) != 1 {
		t.Fatalf("rejected user must not be stored")
	}
}

func TestUserService_DeleteUser_LastUserGuard(t *testing.T) {
	store := seededStore(t)
	svc := NewUserService(store, newStubSessions(), zerolog.Nop())
	only := store.snapshot().Users[0]

	if err := svc.DeleteUser(context.Background(), only.ID); !errors.Is(err, domain.ErrLastUser) {
		t.Fatalf("expected ErrLastUser, got %v", err)
	}
	if len(store.snapshot().Users) != 1 {
		t.Fatalf("last user must remain")
	}
}

func TestUserService_DeleteUser_RevokesSessions(t *testing.T) {
	store := seededStore(t)
	sessions := newStubSessions()
	svc := NewUserService(store, sessions, zerolog.Nop())

	u, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Name: "B", Email: "b@x.com", Role: "Editor", Password: "pw"})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	sess, _ := sessions.Create(domain.SessionUser{ID: u.ID})

	if err := svc.DeleteUser(context.Background(), u.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if _, err := sessions.Validate(sess.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected session revoked, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), "missing"); !errors.Is(err, domain.ErrLastUser) {
		t.Fatalf("with one user left the guard wins, got %v", err)
	}
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	store := seededStore(t)
	svc := NewUserService(store, newStubSessions(), zerolog.Nop())
	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Name: "B", Email: "b@x.com", Role: "Editor", Password: "pw"}); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
