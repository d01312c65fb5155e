package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// LeaderboardRepositoryImpl implements domain.LeaderboardRepository using GORM
type LeaderboardRepositoryImpl struct {
	db *gorm.DB
}

// DBLeaderboardEntry represents the database model for LeaderboardEntry
type DBLeaderboardEntry struct {
	ID          uint   `gorm:"primaryKey"`
	ChallengeID uint   `gorm:"uniqueIndex:idx_challenge_user"`
	UserID      uint   `gorm:"uniqueIndex:idx_challenge_user"`
	Username    string `gorm:"size:64"`
	Score       int
	RecordedAt  time.Time
}

// TableName returns the table name for GORM
func (DBLeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository(db *gorm.DB) domain.LeaderboardRepository {
	return &LeaderboardRepositoryImpl{db: db}
}

// Record implements domain.LeaderboardRepository. A participant holds
// one row per challenge; a later score replaces the earlier one.
func (r *LeaderboardRepositoryImpl) Record(ctx context.Context, entry *domain.LeaderboardEntry) error {
	recordedAt := entry.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	var existing DBLeaderboardEntry
	err := r.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ?", entry.ChallengeID, entry.UserID).
		First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		dbEntry := &DBLeaderboardEntry{
			ChallengeID: entry.ChallengeID,
			UserID:      entry.UserID,
			Username:    entry.Username,
			Score:       entry.Score,
			RecordedAt:  recordedAt,
		}
		if err := r.db.WithContext(ctx).Create(dbEntry).Error; err != nil {
			return err
		}
		entry.ID = dbEntry.ID
		entry.RecordedAt = recordedAt
		return nil
	}

	existing.Username = entry.Username
	existing.Score = entry.Score
	existing.RecordedAt = recordedAt
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	entry.ID = existing.ID
	entry.RecordedAt = recordedAt
	return nil
}

// FindByChallenge implements domain.LeaderboardRepository. Entries
// come back highest score first.
func (r *LeaderboardRepositoryImpl) FindByChallenge(ctx context.Context, challengeID uint) ([]domain.LeaderboardEntry, error) {
	var dbEntries []DBLeaderboardEntry
	err := r.db.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("score desc").
		Find(&dbEntries).Error
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(dbEntries))
	for _, e := range dbEntries {
		entries = append(entries, domain.LeaderboardEntry{
			ID:          e.ID,
			ChallengeID: e.ChallengeID,
			UserID:      e.UserID,
			Username:    e.Username,
			Score:       e.Score,
			RecordedAt:  e.RecordedAt,
		})
	}
	return entries, nil
}
