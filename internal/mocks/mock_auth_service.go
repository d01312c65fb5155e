package mocks

import (
	"context"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc               func(ctx context.Context, email, username, password, role string) error
	VerifyEmailAndRegisterFunc func(ctx context.Context, email, code string) (*domain.AuthResult, error)
	AuthenticateFunc           func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshTokenFunc           func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	ResetPasswordFunc          func(ctx context.Context, email string) error
	VerifyResetPasswordOTPFunc func(ctx context.Context, email, code string) (bool, error)
	SetNewPasswordFunc         func(ctx context.Context, email, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register begins a registration
func (m *MockAuthService) Register(ctx context.Context, email, username, password, role string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, username, password, role)
	}
	return nil
}

// VerifyEmailAndRegister completes a registration
func (m *MockAuthService) VerifyEmailAndRegister(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	if m.VerifyEmailAndRegisterFunc != nil {
		return m.VerifyEmailAndRegisterFunc(ctx, email, code)
	}
	return nil, domain.ErrSessionExpired
}

// Authenticate checks credentials and issues tokens
func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

// RefreshToken mints a new access token
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return nil, nil
}

// ResetPassword begins a password reset
func (m *MockAuthService) ResetPassword(ctx context.Context, email string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email)
	}
	return nil
}

// VerifyResetPasswordOTP checks a reset code
func (m *MockAuthService) VerifyResetPasswordOTP(ctx context.Context, email, code string) (bool, error) {
	if m.VerifyResetPasswordOTPFunc != nil {
		return m.VerifyResetPasswordOTPFunc(ctx, email, code)
	}
	return false, nil
}

// SetNewPassword stores a new password
func (m *MockAuthService) SetNewPassword(ctx context.Context, email, newPassword string) error {
	if m.SetNewPasswordFunc != nil {
		return m.SetNewPasswordFunc(ctx, email, newPassword)
	}
	return nil
}
