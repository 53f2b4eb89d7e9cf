package services

import "errors"

var (
	ErrUnauthorized = errors.New("missing or invalid credentials")
	ErrForbidden    = errors.New("admin role required")
)

// ErrorKind classifies checkout failures so callers can tell "fix your input"
// (validation) from "try again later" (gateway/storage) from "do not retry"
// (integrity).
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindGateway    ErrorKind = "gateway"
	KindIntegrity  ErrorKind = "integrity"
	KindStorage    ErrorKind = "storage"
)

type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func gatewayError(msg string, cause error) *Error {
	return &Error{Kind: KindGateway, Message: msg, cause: cause}
}

func integrityError(msg string) *Error {
	return &Error{Kind: KindIntegrity, Message: msg}
}

func storageError(msg string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: msg, cause: cause}
}

// KindOf extracts the error kind, if err came out of the checkout service.
func KindOf(err error) (ErrorKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
