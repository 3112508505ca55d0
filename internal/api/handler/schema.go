package handler

import "github.com/smartaviation/site/internal/core/domain"

// --- Request types ---
//
// Required fields are enforced by the services; tags here only bound sizes.

type loginRequest struct {
	Email    string `json:"email"    validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type heroRequest struct {
	Title    string `json:"title"    validate:"max=200"`
	Subtitle string `json:"subtitle" validate:"max=500"`
}

type bannerRequest struct {
	Title       string `json:"title"       validate:"max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type submitRequestRequest struct {
	Name    string `json:"name"    validate:"max=200"`
	Phone   string `json:"phone"   validate:"max=50"`
	Email   string `json:"email"   validate:"max=200"`
	Company string `json:"company" validate:"max=200"`
	Address string `json:"address" validate:"max=300"`
	Message string `json:"message" validate:"max=5000"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"max=200"`
	Email    string `json:"email"    validate:"max=200"`
	Role     string `json:"role"     validate:"max=100"`
	Password string `json:"password"`
}

// --- Response types ---

type loginResponse struct {
	Token string             `json:"token"`
	User  domain.SessionUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Message string `json:"message"`
}
