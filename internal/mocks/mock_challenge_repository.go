package mocks

import (
	"context"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// MockChallengeRepository implements domain.ChallengeRepository for testing
type MockChallengeRepository struct {
	CreateFunc        func(ctx context.Context, challenge *domain.Challenge) error
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.Challenge, error)
	FindByCreatorFunc func(ctx context.Context, creatorID uint) ([]domain.Challenge, error)
	DeleteFunc        func(ctx context.Context, id uint) error
}

// NewMockChallengeRepository creates a new MockChallengeRepository
func NewMockChallengeRepository() *MockChallengeRepository {
	return &MockChallengeRepository{}
}

// Create creates a new challenge
func (m *MockChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, challenge)
	}
	return nil
}

// FindByID finds a challenge by ID
func (m *MockChallengeRepository) FindByID(ctx context.Context, id uint) (*domain.Challenge, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrChallengeNotFound
}

// FindByCreator finds challenges by creator
func (m *MockChallengeRepository) FindByCreator(ctx context.Context, creatorID uint) ([]domain.Challenge, error) {
	if m.FindByCreatorFunc != nil {
		return m.FindByCreatorFunc(ctx, creatorID)
	}
	return nil, nil
}

// Delete removes a challenge
func (m *MockChallengeRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
