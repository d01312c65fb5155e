package domain

import "context"

// UserRepository defines account data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}

// VerificationRepository holds at most one pending OTP session per
// email. Put overwrites any prior session for the same email. Consume
// deletes the session and reports whether this caller removed it;
// under concurrent verification exactly one caller sees true.
type VerificationRepository interface {
	Put(ctx context.Context, session *PendingVerification) error
	FindByEmail(ctx context.Context, email string) (*PendingVerification, error)
	Consume(ctx context.Context, email string) (bool, error)
}

// AuthService defines the authentication lifecycle
type AuthService interface {
	Register(ctx context.Context, email, username, password, role string) error
	VerifyEmailAndRegister(ctx context.Context, email, code string) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	ResetPassword(ctx context.Context, email string) error
	VerifyResetPasswordOTP(ctx context.Context, email, code string) (bool, error)
	SetNewPassword(ctx context.Context, email, newPassword string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// CodeEncoder encodes an OTP code for storage and checks a presented
// code against a stored encoding. Registration uses a one-way
// encoder; password reset uses a reversible one.
type CodeEncoder interface {
	Encode(code string) (string, error)
	Verify(code, encoded string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(user *User, role string) (string, error)
	GenerateRefreshToken(user *User, role string) (string, error)
	// ExtractIdentity returns the subject of a token without
	// verifying it, or "" if the token cannot be parsed.
	ExtractIdentity(token string) string
	// IsValid reports whether the token's signature and expiry check
	// out and its subject matches identity.
	IsValid(token, identity string) bool
}

// NotificationService delivers OTP codes out-of-band
type NotificationService interface {
	SendVerification(email, code string) error
	SendPasswordReset(email, code string) error
}

// QuizRepository defines quiz data access operations
type QuizRepository interface {
	Create(ctx context.Context, quiz *Quiz) error
	FindByID(ctx context.Context, id uint) (*Quiz, error)
	FindByUser(ctx context.Context, userID uint) ([]Quiz, error)
	Delete(ctx context.Context, id uint) error
}

// FlashCardSetRepository defines flashcard set data access operations
type FlashCardSetRepository interface {
	Create(ctx context.Context, set *FlashCardSet) error
	FindByID(ctx context.Context, id uint) (*FlashCardSet, error)
	FindByUser(ctx context.Context, userID uint) ([]FlashCardSet, error)
	Update(ctx context.Context, set *FlashCardSet) error
	Delete(ctx context.Context, id uint) error
}

// ChallengeRepository defines challenge data access operations
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *Challenge) error
	FindByID(ctx context.Context, id uint) (*Challenge, error)
	FindByCreator(ctx context.Context, creatorID uint) ([]Challenge, error)
	Delete(ctx context.Context, id uint) error
}

// LeaderboardRepository holds one score per participant per
// challenge. Record overwrites a participant's prior score.
type LeaderboardRepository interface {
	Record(ctx context.Context, entry *LeaderboardEntry) error
	FindByChallenge(ctx context.Context, challengeID uint) ([]LeaderboardEntry, error)
}
