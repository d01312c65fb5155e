package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// ChallengeRepositoryImpl implements domain.ChallengeRepository using GORM
type ChallengeRepositoryImpl struct {
	db *gorm.DB
}

// DBChallenge represents the database model for Challenge
type DBChallenge struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255"`
	QuizID       uint   `gorm:"index"`
	CreatorID    uint   `gorm:"index"`
	Scope        string `gorm:"size:16"`
	AllowedUsers string `gorm:"type:text"`
	IsActive     bool   `gorm:"index"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBChallenge) TableName() string {
	return "challenges"
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *gorm.DB) domain.ChallengeRepository {
	return &ChallengeRepositoryImpl{db: db}
}

// Create implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) Create(ctx context.Context, challenge *domain.Challenge) error {
	allowed, err := json.Marshal(challenge.AllowedUsers)
	if err != nil {
		return fmt.Errorf("failed to marshal allowed users: %w", err)
	}

	dbChallenge := &DBChallenge{
		ID:           challenge.ID,
		Name:         challenge.Name,
		QuizID:       challenge.QuizID,
		CreatorID:    challenge.CreatorID,
		Scope:        challenge.Scope,
		AllowedUsers: string(allowed),
		IsActive:     challenge.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(dbChallenge).Error; err != nil {
		return err
	}
	challenge.ID = dbChallenge.ID
	return nil
}

// FindByID implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Challenge, error) {
	var dbChallenge DBChallenge
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbChallenge).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, err
	}
	return challengeToDomain(&dbChallenge)
}

// FindByCreator implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) FindByCreator(ctx context.Context, creatorID uint) ([]domain.Challenge, error) {
	var dbChallenges []DBChallenge
	err := r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order("created_at desc").Find(&dbChallenges).Error
	if err != nil {
		return nil, err
	}

	challenges := make([]domain.Challenge, 0, len(dbChallenges))
	for i := range dbChallenges {
		challenge, err := challengeToDomain(&dbChallenges[i])
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *challenge)
	}
	return challenges, nil
}

// Delete implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DBChallenge{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func challengeToDomain(dbChallenge *DBChallenge) (*domain.Challenge, error) {
	var allowed []string
	if dbChallenge.AllowedUsers != "" {
		if err := json.Unmarshal([]byte(dbChallenge.AllowedUsers), &allowed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal allowed users: %w", err)
		}
	}
	return &domain.Challenge{
		ID:           dbChallenge.ID,
		Name:         dbChallenge.Name,
		QuizID:       dbChallenge.QuizID,
		CreatorID:    dbChallenge.CreatorID,
		Scope:        dbChallenge.Scope,
		AllowedUsers: allowed,
		IsActive:     dbChallenge.IsActive,
		CreatedAt:    dbChallenge.CreatedAt,
	}, nil
}
