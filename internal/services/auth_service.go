package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// Lifetime of a pending verification session, for both registration
// and password reset.
const VerificationTTL = 10 * time.Minute

// AuthServiceImpl implements domain.AuthService. All collaborators
// are injected through the constructor; the service holds no global
// state.
type AuthServiceImpl struct {
	userRepo         domain.UserRepository
	verificationRepo domain.VerificationRepository
	passwordSvc      domain.PasswordService
	registerEncoder  domain.CodeEncoder
	resetEncoder     domain.CodeEncoder
	tokenSvc         domain.TokenService
	notificationSvc  domain.NotificationService
	otpLength        int
	log              *zap.Logger
}

// NewAuthService creates a new auth service. registerEncoder is the
// one-way encoder used for registration codes; resetEncoder is the
// reversible encoder used for password-reset codes.
func NewAuthService(
	userRepo domain.UserRepository,
	verificationRepo domain.VerificationRepository,
	passwordSvc domain.PasswordService,
	registerEncoder domain.CodeEncoder,
	resetEncoder domain.CodeEncoder,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	otpLength int,
	log *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		passwordSvc:      passwordSvc,
		registerEncoder:  registerEncoder,
		resetEncoder:     resetEncoder,
		tokenSvc:         tokenSvc,
		notificationSvc:  notificationSvc,
		otpLength:        otpLength,
		log:              log,
	}
}

// Register implements domain.AuthService. No account is created yet;
// the staged fields wait in a pending session until the email is
// verified. Email and username collisions are reported separately so
// the caller knows which field to change.
func (s *AuthServiceImpl) Register(ctx context.Context, email, username, password, role string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check email availability: %w", err)
	}
	if existing != nil {
		return domain.ErrEmailTaken
	}

	existing, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return domain.ErrUsernameTaken
	}

	rawOTP, err := GenerateOTP(s.otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	encodedOTP, err := s.registerEncoder.Encode(rawOTP)
	if err != nil {
		return fmt.Errorf("failed to encode OTP: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Delivery happens before the session is persisted; a failed send
	// must not leave a dangling session behind.
	if err := s.notificationSvc.SendVerification(email, rawOTP); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	now := time.Now()
	session := &domain.PendingVerification{
		Email:        email,
		Code:         encodedOTP,
		PasswordHash: hashedPassword,
		Username:     username,
		Role:         role,
		RequestedAt:  now,
		ExpiresAt:    now.Add(VerificationTTL),
	}

	if err := s.verificationRepo.Put(ctx, session); err != nil {
		return fmt.Errorf("failed to store verification session: %w", err)
	}

	s.log.Info("registration pending verification", zap.String("email", email))
	return nil
}

// VerifyEmailAndRegister implements domain.AuthService. A missing
// session, a wrong code and an elapsed expiry all surface as
// ErrSessionExpired. The consume step serializes concurrent
// verifications per email: only the caller whose delete removed the
// session goes on to create the account.
func (s *AuthServiceImpl) VerifyEmailAndRegister(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	session, err := s.verificationRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to load verification session: %w", err)
	}

	if !s.registerEncoder.Verify(code, session.Code) || session.Expired(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	won, err := s.verificationRepo.Consume(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to consume verification session: %w", err)
	}
	if !won {
		return nil, domain.ErrSessionExpired
	}

	user := &domain.User{
		Email:        session.Email,
		Username:     session.Username,
		PasswordHash: session.PasswordHash,
		Role:         session.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.log.Info("account created", zap.Uint("user_id", user.ID), zap.String("email", user.Email))

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
	}, nil
}

// Authenticate implements domain.AuthService. Tokens issued here are
// always STUDENT-scoped regardless of the stored role; RefreshToken
// mints with the account's actual role.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user, domain.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user, domain.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
	}, nil
}

// RefreshToken implements domain.AuthService. Failures are soft: an
// unusable token yields a nil result, not an error. The refresh token
// itself is never rotated.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	identity := s.tokenSvc.ExtractIdentity(refreshToken)
	if identity == "" {
		return nil, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, identity)
	if err != nil {
		return nil, nil
	}

	if !s.tokenSvc.IsValid(refreshToken, user.Email) {
		return nil, nil
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
	}, nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return domain.ErrUserNotFound
	}

	rawOTP, err := GenerateOTP(s.otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	encodedOTP, err := s.resetEncoder.Encode(rawOTP)
	if err != nil {
		return fmt.Errorf("failed to encode OTP: %w", err)
	}

	if err := s.notificationSvc.SendPasswordReset(email, rawOTP); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	now := time.Now()
	session := &domain.PendingVerification{
		Email:       email,
		Code:        encodedOTP,
		RequestedAt: now,
		ExpiresAt:   now.Add(VerificationTTL),
	}

	if err := s.verificationRepo.Put(ctx, session); err != nil {
		return fmt.Errorf("failed to store verification session: %w", err)
	}

	s.log.Info("password reset requested", zap.String("email", email))
	return nil
}

// VerifyResetPasswordOTP implements domain.AuthService. The outcome
// is a plain boolean; no distinction is made between a missing
// session, a wrong code and an elapsed expiry.
func (s *AuthServiceImpl) VerifyResetPasswordOTP(ctx context.Context, email, code string) (bool, error) {
	session, err := s.verificationRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load verification session: %w", err)
	}

	if !s.resetEncoder.Verify(code, session.Code) {
		return false, nil
	}
	if session.Expired(time.Now()) {
		return false, nil
	}
	return true, nil
}

// SetNewPassword implements domain.AuthService
func (s *AuthServiceImpl) SetNewPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.log.Info("password changed", zap.Uint("user_id", user.ID))
	return nil
}
