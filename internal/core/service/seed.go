package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartaviation/site/internal/core/domain"
)

// SeedDocument builds the initial document with a single admin account.
func SeedDocument(name, email, password string) (*domain.Document, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("seed admin requires name, email and password")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	doc := domain.DefaultDocument()
	doc.Users = append(doc.Users, domain.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Role:      "Administrador",
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	})
	return doc, nil
}
