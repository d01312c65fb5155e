package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// VerificationRepositoryImpl implements domain.VerificationRepository
// using Redis. Keys are derived from the email, so a repeated request
// overwrites the prior session and at most one record per email ever
// exists. The key TTL mirrors the session expiry as opportunistic
// cleanup; the authoritative check is the expires_at field read back
// at lookup time.
type VerificationRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewVerificationRepository creates a new pending-verification repository
func NewVerificationRepository(client *redis.Client) domain.VerificationRepository {
	return &VerificationRepositoryImpl{
		client: client,
		prefix: "verify:",
	}
}

// Put implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) Put(ctx context.Context, session *domain.PendingVerification) error {
	key := r.prefix + session.Email
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal verification session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("verification session for %s already expired", session.Email)
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}

// FindByEmail implements domain.VerificationRepository
func (r *VerificationRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.PendingVerification, error) {
	key := r.prefix + email
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	var session domain.PendingVerification
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verification session: %w", err)
	}

	if session.Expired(time.Now()) {
		// Clean up the stale record
		r.client.Del(ctx, key)
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

// Consume implements domain.VerificationRepository. The DEL reply
// count decides the winner when two verifications race on one email.
func (r *VerificationRepositoryImpl) Consume(ctx context.Context, email string) (bool, error) {
	key := r.prefix + email
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
