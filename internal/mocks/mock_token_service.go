package mocks

import (
	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(user *domain.User, role string) (string, error)
	GenerateRefreshTokenFunc func(user *domain.User, role string) (string, error)
	ExtractIdentityFunc      func(token string) string
	IsValidFunc              func(token, identity string) bool
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken mints an access token
func (m *MockTokenService) GenerateAccessToken(user *domain.User, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user, role)
	}
	return "access_" + user.Email + "_" + role, nil
}

// GenerateRefreshToken mints a refresh token
func (m *MockTokenService) GenerateRefreshToken(user *domain.User, role string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(user, role)
	}
	return "refresh_" + user.Email + "_" + role, nil
}

// ExtractIdentity reads a token's subject without validation
func (m *MockTokenService) ExtractIdentity(token string) string {
	if m.ExtractIdentityFunc != nil {
		return m.ExtractIdentityFunc(token)
	}
	return ""
}

// IsValid reports token validity against an identity
func (m *MockTokenService) IsValid(token, identity string) bool {
	if m.IsValidFunc != nil {
		return m.IsValidFunc(token, identity)
	}
	return false
}
