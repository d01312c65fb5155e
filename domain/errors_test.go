package domain

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "ErrEmailTaken",
			err:         ErrEmailTaken,
			expectedMsg: "a user already exists with this email",
		},
		{
			name:        "ErrUsernameTaken",
			err:         ErrUsernameTaken,
			expectedMsg: "a user already exists with this username",
		},
		{
			name:        "ErrUserNotFound",
			err:         ErrUserNotFound,
			expectedMsg: "user not found",
		},
		{
			name:        "ErrInvalidCredentials",
			err:         ErrInvalidCredentials,
			expectedMsg: "invalid credentials",
		},
		{
			name:        "ErrSessionExpired",
			err:         ErrSessionExpired,
			expectedMsg: "verification failed, please try again",
		},
		{
			name:        "ErrDeliveryFailed",
			err:         ErrDeliveryFailed,
			expectedMsg: "could not deliver verification email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if !errors.Is(tt.err, tt.err) {
				t.Error("error should match itself with errors.Is")
			}
		})
	}
}

func TestConflictErrorsAreDistinct(t *testing.T) {
	// The register flow reports which field collided, so the two
	// conflict sentinels must not compare equal.
	if errors.Is(ErrEmailTaken, ErrUsernameTaken) {
		t.Error("email and username conflicts must be distinguishable")
	}
}

func TestSessionExpiredDoesNotLeakCause(t *testing.T) {
	// Missing session, wrong code and elapsed expiry all map to the
	// same sentinel; there must be no separate wrong-code error.
	if errors.Is(ErrSessionExpired, ErrTokenExpired) {
		t.Error("session expiry must be its own sentinel")
	}
}
