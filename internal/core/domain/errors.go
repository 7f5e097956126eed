package domain

import "errors"

// Authorization failures, returned synchronously to the HTTP caller.
var (
	ErrMissingToken = errors.New("token not provided")
	ErrInvalidToken = errors.New("token not valid")
	ErrForbidden    = errors.New("forbidden")
)

// Persistence and delivery failures.
var (
	ErrPersistence       = errors.New("persistence failure")
	ErrDeliveryExhausted = errors.New("email delivery attempts exhausted")
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
