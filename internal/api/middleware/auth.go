package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartaviation/site/internal/core/domain"
)

const (
	// UserKey holds the domain.SessionUser of an authenticated request.
	UserKey = "user"
	// TokenKey holds the bearer token of an authenticated request.
	TokenKey = "token"
)

// Authenticator resolves a bearer token to its session user.
type Authenticator interface {
	Authenticate(token string) (domain.SessionUser, error)
}

// Auth validates the bearer session token and injects the user into context.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Não autorizado")
			}

			user, err := auth.Authenticate(token)
			if err != nil {
				if errors.Is(err, domain.ErrSessionExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Sessão expirada")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Não autorizado")
			}

			c.Set(UserKey, user)
			c.Set(TokenKey, token)
			return next(c)
		}
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentUser returns the session user set by Auth.
func CurrentUser(c echo.Context) (domain.SessionUser, bool) {
	u, ok := c.Get(UserKey).(domain.SessionUser)
	return u, ok
}

// CurrentToken returns the bearer token set by Auth.
func CurrentToken(c echo.Context) string {
	t, _ := c.Get(TokenKey).(string)
	return t
}
