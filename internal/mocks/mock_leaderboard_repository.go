package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// MockLeaderboardRepository implements domain.LeaderboardRepository
// for testing. Without overrides it keeps one in-memory score per
// participant per challenge, like the real store.
type MockLeaderboardRepository struct {
	RecordFunc          func(ctx context.Context, entry *domain.LeaderboardEntry) error
	FindByChallengeFunc func(ctx context.Context, challengeID uint) ([]domain.LeaderboardEntry, error)

	mu      sync.Mutex
	nextID  uint
	entries map[uint]map[uint]*domain.LeaderboardEntry // challengeID -> userID -> entry
}

// NewMockLeaderboardRepository creates a new MockLeaderboardRepository
func NewMockLeaderboardRepository() *MockLeaderboardRepository {
	return &MockLeaderboardRepository{
		entries: make(map[uint]map[uint]*domain.LeaderboardEntry),
	}
}

// Record stores a participant's score, replacing any prior one
func (m *MockLeaderboardRepository) Record(ctx context.Context, entry *domain.LeaderboardEntry) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	board, ok := m.entries[entry.ChallengeID]
	if !ok {
		board = make(map[uint]*domain.LeaderboardEntry)
		m.entries[entry.ChallengeID] = board
	}
	if prior, ok := board[entry.UserID]; ok {
		entry.ID = prior.ID
	} else {
		m.nextID++
		entry.ID = m.nextID
	}
	copied := *entry
	board[entry.UserID] = &copied
	return nil
}

// FindByChallenge returns a challenge's scores, highest first
func (m *MockLeaderboardRepository) FindByChallenge(ctx context.Context, challengeID uint) ([]domain.LeaderboardEntry, error) {
	if m.FindByChallengeFunc != nil {
		return m.FindByChallengeFunc(ctx, challengeID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.LeaderboardEntry, 0, len(m.entries[challengeID]))
	for _, entry := range m.entries[challengeID] {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}
