// Package errs contiene los errores compartidos entre capas y su mapeo a HTTP.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indica que el registro pedido no existe (o no es de la cuenta).
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indica que no hay sesión válida.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream envuelve fallas de red o status no-2xx del backend externo.
	ErrUpstream = errors.New("upstream error")

	// ErrNotConfigured: la operación depende de algo que este deploy no tiene
	// (identity provider, secreto del webhook).
	ErrNotConfigured = errors.New("not configured")
)

// ValidationError se devuelve antes de cualquier llamada de red.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Invalid es un atajo para construir un *ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// LimitError: el plan de la cuenta no permite la operación.
type LimitError struct {
	Plan    string
	Limit   int
	Message string
}

func (e *LimitError) Error() string { return e.Message }

// AuthorizationError termina la sesión del usuario.
// Guidance es opcional (p.ej. canal para adquirir un plan).
type AuthorizationError struct {
	Message  string
	Guidance string
}

func (e *AuthorizationError) Error() string { return e.Message }

// HTTPStatus mapea un error de dominio a status HTTP.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		le *LimitError
		ae *AuthorizationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &le):
		return http.StatusForbidden
	case errors.As(err, &ae), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Body arma el payload de error que ven los clientes.
type Body struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Guidance string `json:"guidance,omitempty"`
}

func ToBody(err error) Body {
	var (
		ve *ValidationError
		ae *AuthorizationError
	)
	switch {
	case errors.As(err, &ve):
		return Body{Error: ve.Message, Field: ve.Field}
	case errors.As(err, &ae):
		return Body{Error: ae.Message, Guidance: ae.Guidance}
	}
	switch HTTPStatus(err) {
	case http.StatusInternalServerError:
		return Body{Error: "internal error"}
	case http.StatusBadGateway:
		return Body{Error: "backend unavailable, nothing was changed"}
	}
	return Body{Error: err.Error()}
}
