package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tempero/internal/validation"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedResponse  = errors.New("malformed server response")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrValidation         = errors.New("validation failed")
	ErrServer             = errors.New("server error")
)

// Kind classifies an Error by where it came from.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: rejected locally, no request was sent.
	KindValidation
	// KindNetwork: no response was received.
	KindNetwork
	// KindServer: the server answered with a non-2xx status.
	KindServer
	// KindMalformed: 2xx without the expected payload.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is the tagged error returned by the REST client and the services.
// Err holds one of the sentinels above, so callers can match with errors.Is
// and branch on Kind with KindOf.
type Error struct {
	Kind Kind
	// Status is the HTTP status for KindServer and KindMalformed.
	Status int
	// Message is the server's "erro" text, when it sent one.
	Message string
	// Fields holds per-field messages for KindValidation.
	Fields validation.FieldErrors
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindValidation && len(e.Fields) > 0:
		return e.Fields.Error()
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s error (status %d): %v", e.Kind, e.Status, e.Err)
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidationError wraps field errors produced before a request.
func NewValidationError(fields validation.FieldErrors) *Error {
	return &Error{Kind: KindValidation, Fields: fields, Err: ErrValidation}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldErrorsOf returns the field errors carried by err, if any.
func FieldErrorsOf(err error) validation.FieldErrors {
	var e *Error
	if errors.As(err, &e) && len(e.Fields) > 0 {
		return e.Fields
	}
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// UserMessage turns err into the banner shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnavailable):
		return "Erro de conexão com o servidor. Verifique sua conexão e tente novamente."
	case errors.Is(err, ErrInvalidCredentials):
		return "Email ou senha incorretos. Por favor, verifique suas credenciais."
	case errors.Is(err, ErrEmailTaken):
		return "Este email já está cadastrado"
	case errors.Is(err, ErrMalformedResponse):
		return "O servidor não retornou dados válidos"
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrUnauthorized):
		return "Sua sessão não é válida. Faça login novamente."
	case errors.Is(err, ErrForbidden):
		return "Apenas o autor pode alterar esta publicação."
	case errors.Is(err, ErrNotFound):
		return "Publicação não encontrada."
	case errors.Is(err, ErrValidation):
		return "Corrija os campos destacados."
	}

	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Ocorreu um erro. Tente novamente."
}
