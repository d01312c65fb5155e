package domain

import "errors"

// Registration errors
var (
	ErrEmailTaken    = errors.New("a user already exists with this email")
	ErrUsernameTaken = errors.New("a user already exists with this username")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Verification errors. Wrong code, missing session and elapsed expiry
// all surface as ErrSessionExpired so callers cannot probe which
// sub-check failed.
var (
	ErrSessionExpired = errors.New("verification failed, please try again")
)

// Notification errors
var (
	ErrDeliveryFailed = errors.New("could not deliver verification email")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Content errors
var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrFlashCardSetNotFound = errors.New("flashcard set not found")
	ErrChallengeNotFound    = errors.New("challenge not found")
)
