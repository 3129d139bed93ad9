package model

import "errors"

// Domain errors. Services return these (possibly wrapped); the HTTP
// handler layer owns the mapping to status codes.
var (
	// ErrNotFound marks a resource that is absent or not owned by the
	// requester. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	ErrMissingField       = errors.New("please provide all required fields")
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmptyPatch         = errors.New("please provide at least one field to update")
	ErrMissingQuery       = errors.New("please provide a search query")

	ErrTokenExpired   = errors.New("access token expired")
	ErrTokenInvalid   = errors.New("access token invalid")
	ErrTokenMalformed = errors.New("access token malformed")
)
