package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() {
		mr.Close()
	})

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return client, mr
}

func pendingSession(email string, ttl time.Duration) *domain.PendingVerification {
	now := time.Now()
	return &domain.PendingVerification{
		Email:        email,
		Code:         "encoded_code",
		PasswordHash: "hashed_pw",
		Username:     "alice",
		Role:         domain.RoleStudent,
		RequestedAt:  now,
		ExpiresAt:    now.Add(ttl),
	}
}

func TestVerificationRepositoryImpl_PutAndFind(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVerificationRepository(client)
	ctx := context.Background()

	session := pendingSession("alice@example.com", 10*time.Minute)
	if err := repo.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// The key carries a TTL as opportunistic cleanup.
	ttl := client.TTL(ctx, "verify:alice@example.com").Val()
	if ttl <= 0 {
		t.Error("expected TTL on verification key")
	}

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.Username != "alice" || found.Code != "encoded_code" {
		t.Errorf("unexpected session round-trip: %+v", found)
	}
}

func TestVerificationRepositoryImpl_FindMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVerificationRepository(client)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired for missing session, got %v", err)
	}
}

func TestVerificationRepositoryImpl_PutOverwrites(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVerificationRepository(client)
	ctx := context.Background()

	first := pendingSession("alice@example.com", 10*time.Minute)
	first.Code = "first_code"
	if err := repo.Put(ctx, first); err != nil {
		t.Fatalf("Put: %v", err)
	}

	second := pendingSession("alice@example.com", 10*time.Minute)
	second.Code = "second_code"
	if err := repo.Put(ctx, second); err != nil {
		t.Fatalf("Put: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.Code != "second_code" {
		t.Errorf("expected newest session to be authoritative, got code %q", found.Code)
	}
}

func TestVerificationRepositoryImpl_ExpiredAtReadTime(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewVerificationRepository(client)
	ctx := context.Background()

	// Write a record whose embedded expiry is already in the past,
	// bypassing Put's guard, the way a record looks when read after
	// its window lapsed but before Redis reclaimed the key.
	stale := pendingSession("alice@example.com", time.Minute)
	stale.ExpiresAt = time.Now().Add(-time.Second)
	if err := repo.Put(ctx, pendingSession("alice@example.com", time.Minute)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	raw, _ := json.Marshal(stale)
	mr.Set("verify:alice@example.com", string(raw))

	_, err := repo.FindByEmail(ctx, "alice@example.com")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired for stale record, got %v", err)
	}

	// The stale record is lazily removed.
	if mr.Exists("verify:alice@example.com") {
		t.Error("expected stale record to be deleted on read")
	}
}

func TestVerificationRepositoryImpl_Consume(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewVerificationRepository(client)
	ctx := context.Background()

	if err := repo.Put(ctx, pendingSession("alice@example.com", 10*time.Minute)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	won, err := repo.Consume(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if !won {
		t.Error("first consume must win")
	}

	// A second consume of the same session loses.
	won, err = repo.Consume(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if won {
		t.Error("second consume must observe the session already gone")
	}

	_, err = repo.FindByEmail(ctx, "alice@example.com")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expected consumed session to be gone, got %v", err)
	}
}
