package domain

import "errors"

// Error kinds. Every domain error unwraps to exactly one of these, which is
// what the delivery layer uses to pick a status code.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a domain error with a client-facing message.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Auth errors
var (
	ErrMissingCredentials = newError(ErrInvalidInput, "email and password are required")
	ErrEmailExists        = newError(ErrConflict, "user with such email already exists")
	ErrBadPassword        = newError(ErrUnauthorized, "incorrect password")
	ErrInvalidToken       = newError(ErrUnauthorized, "invalid token")
	ErrSessionNotFound    = newError(ErrUnauthorized, "session not found")
)

// User errors
var (
	ErrUserNotFound = newError(ErrNotFound, "user not found")
	ErrEmptyFile    = newError(ErrInvalidInput, "avatar file is required")
)

// Swipe errors
var (
	ErrInvalidSwipe      = newError(ErrInvalidInput, "toUserId and swipeType are required")
	ErrCannotSwipeSelf   = newError(ErrInvalidInput, "cannot swipe yourself")
	ErrSwipeOnBehalf     = newError(ErrForbidden, "cannot swipe on behalf of another user")
	ErrSwipeTargetAbsent = newError(ErrNotFound, "swiped user not found")
)

// Match and chat errors
var (
	ErrMatchNotFound  = newError(ErrNotFound, "match not found")
	ErrMatchExists    = newError(ErrConflict, "match already exists")
	ErrNotParticipant = newError(ErrForbidden, "access denied")
	ErrEmptyMessage   = newError(ErrInvalidInput, "empty message")
)
