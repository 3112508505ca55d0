package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrSessionExpired     = errors.New("sessão expirada")
	ErrProductNotFound    = errors.New("produto não encontrado")
	ErrRequestNotFound    = errors.New("solicitação não encontrada")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailTaken         = errors.New("já existe um usuário com este e-mail")
	ErrLastUser           = errors.New("é necessário manter pelo menos um usuário")
	ErrInvalidImage       = errors.New("somente arquivos de imagem são permitidos")
	ErrStorage            = errors.New("storage failure")
)

// ValidationError carries a user-facing message for a rejected input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
