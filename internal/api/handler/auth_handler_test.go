package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smartaviation/site/internal/api/middleware"
	"github.com/smartaviation/site/internal/core/domain"
	"github.com/smartaviation/site/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	revoked  []string
	sessions map[string]domain.SessionUser
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubAuthService) Authenticate(token string) (domain.SessionUser, error) {
	u, ok := s.sessions[token]
	if !ok {
		return domain.SessionUser{}, domain.ErrUnauthorized
	}
	return u, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "admin@example.com" || password != "pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token: "tok",
				User:  domain.SessionUser{ID: "u1", Name: "Admin", Email: email, Role: "Administrador"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"admin@example.com","password":"pw"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "tok" || resp.User.ID != "u1" || resp.User.Role != "Administrador" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not contain a password field")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":"a@b.c","password":"x"}`), httptest.NewRecorder())
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	for _, body := range []string{`{"email":"","password":"x"}`, `{"email":"a@b.c"}`, `{}`} {
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", body), httptest.NewRecorder())
		err := h.Login(c)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Message != "Informe e-mail e senha." {
			t.Fatalf("body %s: expected validation error, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"email":`), httptest.NewRecorder())
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesCallerToken(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{}
	h := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/logout", nil), rec)
	c.Set(middleware.TokenKey, "tok")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.revoked) != 1 || stub.revoked[0] != "tok" {
		t.Fatalf("expected tok revoked, got %v", stub.revoked)
	}
}
