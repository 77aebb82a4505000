package services

import "errors"

// ErrorCode classifies a ServiceError; the API maps each code to a status.
type ErrorCode string

const (
	ErrorInvalid            ErrorCode = "invalid"
	ErrorNotFound           ErrorCode = "not_found"
	ErrorPreconditionFailed ErrorCode = "precondition_failed"
	ErrorUnauthorized       ErrorCode = "unauthorized"
)

// ServiceError is an expected failure the caller can recover from.
type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewPreconditionFailedError(msg string) error {
	return &ServiceError{Code: ErrorPreconditionFailed, Message: msg}
}
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

// AsServiceError unwraps err to a *ServiceError when it is one.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCode reports whether err is a ServiceError carrying code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := AsServiceError(err)
	return ok && se.Code == code
}
