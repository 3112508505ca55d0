package ports

import (
	"context"

	"github.com/smartaviation/site/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  domain.SessionUser
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(token string) (domain.SessionUser, error)
}

type ContentService interface {
	GetContent(ctx context.Context) (*domain.Content, error)
	UpdateHero(ctx context.Context, hero domain.Hero) (*domain.Hero, error)
	UpdateBanner(ctx context.Context, banner domain.Banner) (*domain.Banner, error)
}

// ImageInput is one uploaded file as received by the transport layer.
type ImageInput struct {
	Field    string
	Filename string
	Data     []byte
}

// CreateProductInput carries a new portfolio item. Gallery must hold
// domain.GallerySize entries; a nil entry or MainImage means the file is missing.
type CreateProductInput struct {
	Name        string
	Tag         string
	Description string
	MainImage   *ImageInput
	Gallery     [domain.GallerySize]*ImageInput
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// SubmitRequestInput is a public lead submission.
type SubmitRequestInput struct {
	Name    string
	Phone   string
	Email   string
	Company string
	Address string
	Message string
}

type RequestService interface {
	SubmitRequest(ctx context.Context, in SubmitRequestInput) (*domain.LeadRequest, error)
	ListRequests(ctx context.Context) ([]domain.LeadRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.LeadRequest, error)
}

// CreateUserInput is a new admin account.
type CreateUserInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.PublicUser, error)
	DeleteUser(ctx context.Context, id string) error
}
