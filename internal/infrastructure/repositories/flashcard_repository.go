package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// FlashCardSetRepositoryImpl implements domain.FlashCardSetRepository using GORM
type FlashCardSetRepositoryImpl struct {
	db *gorm.DB
}

// DBFlashCardSet represents the database model for FlashCardSet.
// Cards and the engagement lists are stored as JSON documents.
type DBFlashCardSet struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index"`
	Username    string `gorm:"size:64"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Subject     string `gorm:"size:128"`
	Course      string `gorm:"size:128"`
	AccessScope string `gorm:"size:16;index"`
	Cards       string `gorm:"type:text"`
	LikedBy     string `gorm:"type:text"`
	ViewedBy    string `gorm:"type:text"`
	SavedBy     string `gorm:"type:text"`
	SharedBy    string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBFlashCardSet) TableName() string {
	return "flashcard_sets"
}

// NewFlashCardSetRepository creates a new flashcard set repository
func NewFlashCardSetRepository(db *gorm.DB) domain.FlashCardSetRepository {
	return &FlashCardSetRepositoryImpl{db: db}
}

// Create implements domain.FlashCardSetRepository
func (r *FlashCardSetRepositoryImpl) Create(ctx context.Context, set *domain.FlashCardSet) error {
	dbSet, err := setToDB(set)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(dbSet).Error; err != nil {
		return err
	}
	set.ID = dbSet.ID
	return nil
}

// FindByID implements domain.FlashCardSetRepository
func (r *FlashCardSetRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.FlashCardSet, error) {
	var dbSet DBFlashCardSet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbSet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrFlashCardSetNotFound
		}
		return nil, err
	}
	return setToDomain(&dbSet)
}

// FindByUser implements domain.FlashCardSetRepository
func (r *FlashCardSetRepositoryImpl) FindByUser(ctx context.Context, userID uint) ([]domain.FlashCardSet, error) {
	var dbSets []DBFlashCardSet
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&dbSets).Error
	if err != nil {
		return nil, err
	}

	sets := make([]domain.FlashCardSet, 0, len(dbSets))
	for i := range dbSets {
		set, err := setToDomain(&dbSets[i])
		if err != nil {
			return nil, err
		}
		sets = append(sets, *set)
	}
	return sets, nil
}

// Update implements domain.FlashCardSetRepository
func (r *FlashCardSetRepositoryImpl) Update(ctx context.Context, set *domain.FlashCardSet) error {
	dbSet, err := setToDB(set)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(dbSet).Error
}

// Delete implements domain.FlashCardSetRepository
func (r *FlashCardSetRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DBFlashCardSet{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrFlashCardSetNotFound
	}
	return nil
}

func setToDB(set *domain.FlashCardSet) (*DBFlashCardSet, error) {
	cards, err := json.Marshal(set.Cards)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cards: %w", err)
	}
	liked, _ := json.Marshal(set.LikedBy)
	viewed, _ := json.Marshal(set.ViewedBy)
	saved, _ := json.Marshal(set.SavedBy)
	shared, _ := json.Marshal(set.SharedBy)

	scope := set.AccessScope
	if scope == "" {
		scope = domain.ScopePrivate
	}

	return &DBFlashCardSet{
		ID:          set.ID,
		UserID:      set.UserID,
		Username:    set.Username,
		Title:       set.Title,
		Description: set.Description,
		Subject:     set.Subject,
		Course:      set.Course,
		AccessScope: scope,
		Cards:       string(cards),
		LikedBy:     string(liked),
		ViewedBy:    string(viewed),
		SavedBy:     string(saved),
		SharedBy:    string(shared),
	}, nil
}

func setToDomain(dbSet *DBFlashCardSet) (*domain.FlashCardSet, error) {
	set := &domain.FlashCardSet{
		ID:          dbSet.ID,
		UserID:      dbSet.UserID,
		Username:    dbSet.Username,
		Title:       dbSet.Title,
		Description: dbSet.Description,
		Subject:     dbSet.Subject,
		Course:      dbSet.Course,
		AccessScope: dbSet.AccessScope,
		CreatedAt:   dbSet.CreatedAt,
		UpdatedAt:   dbSet.UpdatedAt,
	}

	if dbSet.Cards != "" {
		if err := json.Unmarshal([]byte(dbSet.Cards), &set.Cards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cards: %w", err)
		}
	}
	lists := []struct {
		col string
		dst *[]string
	}{
		{dbSet.LikedBy, &set.LikedBy},
		{dbSet.ViewedBy, &set.ViewedBy},
		{dbSet.SavedBy, &set.SavedBy},
		{dbSet.SharedBy, &set.SharedBy},
	}
	for _, l := range lists {
		if l.col != "" {
			if err := json.Unmarshal([]byte(l.col), l.dst); err != nil {
				return nil, fmt.Errorf("failed to unmarshal engagement list: %w", err)
			}
		}
	}
	return set, nil
}
