package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// UserErrors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnknownRole       = errors.New("unknown role")
)

// WorkflowErrors
var (
	ErrIssueNotFound       = errors.New("issue not found")
	ErrWorkOrderNotFound   = errors.New("work order not found")
	ErrPartRequestNotFound = errors.New("part request not found")
	ErrIssuePromoted       = errors.New("issue already has a work order")
	ErrStaleEntity         = errors.New("entity changed concurrently, retry")
)
