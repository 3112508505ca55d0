package api

import (
	"errors"
	"fmt"
	"net/http"
	"unicode"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartaviation/site/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Validation errors carry their own user-facing text.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrLastUser):
		return http.StatusBadRequest, capitalize(err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciais inválidas."
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "Sessão expirada"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Não autorizado"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, capitalize(err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, capitalize(err.Error())
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Erro interno."
}

// capitalize turns a sentinel's text into a sentence: "produto não encontrado"
// becomes "Produto não encontrado.".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	out := string(r)
	if r[len(r)-1] != '.' {
		out += "."
	}
	return out
}
