package mocks

import (
	"context"
	"sync"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// MockVerificationRepository implements domain.VerificationRepository
// for testing. Without overrides it behaves as a real in-memory
// store: Put overwrites per email, FindByEmail honors absence, and
// Consume is atomic, so concurrency tests exercise the actual
// single-winner contract.
type MockVerificationRepository struct {
	PutFunc         func(ctx context.Context, session *domain.PendingVerification) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.PendingVerification, error)
	ConsumeFunc     func(ctx context.Context, email string) (bool, error)

	mu       sync.Mutex
	sessions map[string]*domain.PendingVerification
}

// NewMockVerificationRepository creates a new MockVerificationRepository
func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{
		sessions: make(map[string]*domain.PendingVerification),
	}
}

// Put stores a session, replacing any prior one for the email
func (m *MockVerificationRepository) Put(ctx context.Context, session *domain.PendingVerification) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.sessions[session.Email] = &copied
	return nil
}

// FindByEmail returns the stored session for the email
func (m *MockVerificationRepository) FindByEmail(ctx context.Context, email string) (*domain.PendingVerification, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[email]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	copied := *session
	return &copied, nil
}

// Consume deletes the session and reports whether this call removed it
func (m *MockVerificationRepository) Consume(ctx context.Context, email string) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[email]; !ok {
		return false, nil
	}
	delete(m.sessions, email)
	return true, nil
}

// Stored returns the current session for an email, for assertions
func (m *MockVerificationRepository) Stored(email string) *domain.PendingVerification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[email]
}
