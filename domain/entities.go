package domain

import "time"

// Roles a user account can carry.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// Access scopes for shareable content.
const (
	ScopePrivate = "PRIVATE"
	ScopePublic  = "PUBLIC"
)

// User represents a registered account. Email and username are each
// globally unique; accounts are only created through a completed
// email verification.
type User struct {
	ID           uint
	Email        string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PendingVerification is the single active OTP session for an email.
// Registration sessions stage the account fields; password-reset
// sessions carry only the encoded code. A record past ExpiresAt is
// invalid regardless of whether storage still holds it.
type PendingVerification struct {
	Email        string    `json:"email"`
	Code         string    `json:"code"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Username     string    `json:"username,omitempty"`
	Role         string    `json:"role,omitempty"`
	RequestedAt  time.Time `json:"requested_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session is invalid at the given time.
// A session is expired at the exact ExpiresAt instant.
func (p *PendingVerification) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// AuthResult represents authentication outcome
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	UserID       uint
	Username     string
	Email        string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Question is a single quiz question with its answer options.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// Quiz is a user-authored set of questions.
type Quiz struct {
	ID        uint
	UserID    uint
	Title     string
	Subject   string
	Course    string
	Questions []Question
	CreatedAt time.Time
}

// FlashCard is one term/definition pair.
type FlashCard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// FlashCardSet is a user-authored deck of flashcards.
type FlashCardSet struct {
	ID          uint
	UserID      uint
	Username    string
	Title       string
	Description string
	Subject     string
	Course      string
	AccessScope string
	Cards       []FlashCard
	LikedBy     []string
	ViewedBy    []string
	SavedBy     []string
	SharedBy    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Challenge wraps a quiz for competitive play among allowed users.
type Challenge struct {
	ID           uint
	Name         string
	QuizID       uint
	CreatorID    uint
	Scope        string
	AllowedUsers []string
	IsActive     bool
	CreatedAt    time.Time
}

// LeaderboardEntry is one participant's score within a challenge.
type LeaderboardEntry struct {
	ID          uint
	ChallengeID uint
	UserID      uint
	Username    string
	Score       int
	RecordedAt  time.Time
}
