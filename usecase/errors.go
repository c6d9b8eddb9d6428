package usecase

import "errors"

var (
	ErrUnauthenticated        = errors.New("not authenticated")
	ErrValidation             = errors.New("validation failed")
	ErrNotFoundOrUnauthorized = errors.New("todo not found or unauthorized")
	ErrExternalService        = errors.New("external service failure")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
