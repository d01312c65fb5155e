package repositories

import (
	"context"
	"testing"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

func TestLeaderboardRepositoryImpl_RecordAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLeaderboardRepository(db)
	ctx := context.Background()

	entries := []domain.LeaderboardEntry{
		{ChallengeID: 5, UserID: 1, Username: "alice", Score: 70},
		{ChallengeID: 5, UserID: 2, Username: "bob", Score: 90},
		{ChallengeID: 6, UserID: 1, Username: "alice", Score: 40},
	}
	for i := range entries {
		if err := repo.Record(ctx, &entries[i]); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if entries[i].ID == 0 {
			t.Fatal("expected generated id to be written back")
		}
		if entries[i].RecordedAt.IsZero() {
			t.Fatal("expected recorded-at to be set")
		}
	}

	board, err := repo.FindByChallenge(ctx, 5)
	if err != nil {
		t.Fatalf("FindByChallenge: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 entries for challenge 5, got %d", len(board))
	}
	// Highest score first.
	if board[0].Username != "bob" || board[1].Username != "alice" {
		t.Errorf("expected bob before alice, got %+v", board)
	}
}

func TestLeaderboardRepositoryImpl_RecordReplacesPriorScore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLeaderboardRepository(db)
	ctx := context.Background()

	first := &domain.LeaderboardEntry{ChallengeID: 5, UserID: 1, Username: "alice", Score: 70}
	if err := repo.Record(ctx, first); err != nil {
		t.Fatalf("Record: %v", err)
	}

	second := &domain.LeaderboardEntry{ChallengeID: 5, UserID: 1, Username: "alice", Score: 55}
	if err := repo.Record(ctx, second); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the prior row to be reused, got ids %d and %d", first.ID, second.ID)
	}

	board, err := repo.FindByChallenge(ctx, 5)
	if err != nil {
		t.Fatalf("FindByChallenge: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("expected one entry per participant, got %d", len(board))
	}
	if board[0].Score != 55 {
		t.Errorf("expected the latest score to win, got %d", board[0].Score)
	}
}

func TestLeaderboardRepositoryImpl_EmptyBoard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLeaderboardRepository(db)

	board, err := repo.FindByChallenge(context.Background(), 99)
	if err != nil {
		t.Fatalf("FindByChallenge: %v", err)
	}
	if len(board) != 0 {
		t.Errorf("expected an empty board, got %+v", board)
	}
}
