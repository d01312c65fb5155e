package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// QuizRepositoryImpl implements domain.QuizRepository using GORM
type QuizRepositoryImpl struct {
	db *gorm.DB
}

// DBQuiz represents the database model for Quiz. Questions are stored
// as a JSON document in a single column.
type DBQuiz struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Title     string `gorm:"size:255"`
	Subject   string `gorm:"size:128"`
	Course    string `gorm:"size:128"`
	Questions string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBQuiz) TableName() string {
	return "quizzes"
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *gorm.DB) domain.QuizRepository {
	return &QuizRepositoryImpl{db: db}
}

// Create implements domain.QuizRepository
func (r *QuizRepositoryImpl) Create(ctx context.Context, quiz *domain.Quiz) error {
	dbQuiz, err := quizToDB(quiz)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(dbQuiz).Error; err != nil {
		return err
	}
	quiz.ID = dbQuiz.ID
	return nil
}

// FindByID implements domain.QuizRepository
func (r *QuizRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Quiz, error) {
	var dbQuiz DBQuiz
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbQuiz).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrQuizNotFound
		}
		return nil, err
	}
	return quizToDomain(&dbQuiz)
}

// FindByUser implements domain.QuizRepository
func (r *QuizRepositoryImpl) FindByUser(ctx context.Context, userID uint) ([]domain.Quiz, error) {
	var dbQuizzes []DBQuiz
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&dbQuizzes).Error
	if err != nil {
		return nil, err
	}

	quizzes := make([]domain.Quiz, 0, len(dbQuizzes))
	for i := range dbQuizzes {
		quiz, err := quizToDomain(&dbQuizzes[i])
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *quiz)
	}
	return quizzes, nil
}

// Delete implements domain.QuizRepository
func (r *QuizRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DBQuiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func quizToDB(quiz *domain.Quiz) (*DBQuiz, error) {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	return &DBQuiz{
		ID:        quiz.ID,
		UserID:    quiz.UserID,
		Title:     quiz.Title,
		Subject:   quiz.Subject,
		Course:    quiz.Course,
		Questions: string(questions),
	}, nil
}

func quizToDomain(dbQuiz *DBQuiz) (*domain.Quiz, error) {
	var questions []domain.Question
	if dbQuiz.Questions != "" {
		if err := json.Unmarshal([]byte(dbQuiz.Questions), &questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
		}
	}
	return &domain.Quiz{
		ID:        dbQuiz.ID,
		UserID:    dbQuiz.UserID,
		Title:     dbQuiz.Title,
		Subject:   dbQuiz.Subject,
		Course:    dbQuiz.Course,
		Questions: questions,
		CreatedAt: dbQuiz.CreatedAt,
	}, nil
}
