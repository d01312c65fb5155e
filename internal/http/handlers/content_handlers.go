package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// ContentHandlers handles quiz, flashcard set and challenge requests
type ContentHandlers struct {
	quizRepo        domain.QuizRepository
	flashcardRepo   domain.FlashCardSetRepository
	challengeRepo   domain.ChallengeRepository
	leaderboardRepo domain.LeaderboardRepository
	log             *zap.Logger
}

// NewContentHandlers creates new content handlers
func NewContentHandlers(
	quizRepo domain.QuizRepository,
	flashcardRepo domain.FlashCardSetRepository,
	challengeRepo domain.ChallengeRepository,
	leaderboardRepo domain.LeaderboardRepository,
	log *zap.Logger,
) *ContentHandlers {
	return &ContentHandlers{
		quizRepo:        quizRepo,
		flashcardRepo:   flashcardRepo,
		challengeRepo:   challengeRepo,
		leaderboardRepo: leaderboardRepo,
		log:             log,
	}
}

// callerID reads the authenticated user's id set by the JWT middleware
func callerID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, err := strconv.ParseUint(raw.(string), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// CreateQuizRequest represents quiz creation
type CreateQuizRequest struct {
	Title     string            `json:"title" binding:"required"`
	Subject   string            `json:"subject"`
	Course    string            `json:"course"`
	Questions []domain.Question `json:"questions" binding:"required,min=1"`
}

// CreateQuiz handles quiz creation
func (h *ContentHandlers) CreateQuiz(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz := &domain.Quiz{
		UserID:    userID,
		Title:     req.Title,
		Subject:   req.Subject,
		Course:    req.Course,
		Questions: req.Questions,
	}
	if err := h.quizRepo.Create(c.Request.Context(), quiz); err != nil {
		h.log.Error("quiz creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": quiz})
}

// GetQuiz returns a quiz by id
func (h *ContentHandlers) GetQuiz(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	quiz, err := h.quizRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}
		h.log.Error("quiz lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quiz})
}

// ListMyQuizzes returns the caller's quizzes
func (h *ContentHandlers) ListMyQuizzes(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	quizzes, err := h.quizRepo.FindByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("quiz listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quizzes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quizzes})
}

// DeleteQuiz removes a quiz owned by the caller
func (h *ContentHandlers) DeleteQuiz(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	quiz, err := h.quizRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}
		h.log.Error("quiz lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quiz"})
		return
	}
	if quiz.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the quiz owner"})
		return
	}

	if err := h.quizRepo.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("quiz deletion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Quiz deleted"}})
}

// CreateFlashCardSetRequest represents flashcard set creation
type CreateFlashCardSetRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Subject     string             `json:"subject"`
	Course      string             `json:"course"`
	AccessScope string             `json:"access_scope"`
	Cards       []domain.FlashCard `json:"cards" binding:"required,min=1"`
}

// CreateFlashCardSet handles flashcard set creation
func (h *ContentHandlers) CreateFlashCardSet(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req CreateFlashCardSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rawName, _ := c.Get("username")
	username, _ := rawName.(string)
	set := &domain.FlashCardSet{
		UserID:      userID,
		Username:    username,
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Course:      req.Course,
		AccessScope: req.AccessScope,
		Cards:       req.Cards,
	}
	if err := h.flashcardRepo.Create(c.Request.Context(), set); err != nil {
		h.log.Error("flashcard set creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create flashcard set"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": set})
}

// GetFlashCardSet returns a flashcard set by id. Private sets are
// visible only to their owner.
func (h *ContentHandlers) GetFlashCardSet(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid set ID"})
		return
	}

	set, err := h.flashcardRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFlashCardSetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flashcard set not found"})
			return
		}
		h.log.Error("flashcard set lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load flashcard set"})
		return
	}
	if set.AccessScope == domain.ScopePrivate && set.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Flashcard set is private"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": set})
}

// ListMyFlashCardSets returns the caller's flashcard sets
func (h *ContentHandlers) ListMyFlashCardSets(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	sets, err := h.flashcardRepo.FindByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("flashcard set listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list flashcard sets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sets})
}

// DeleteFlashCardSet removes a set owned by the caller
func (h *ContentHandlers) DeleteFlashCardSet(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid set ID"})
		return
	}

	set, err := h.flashcardRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFlashCardSetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flashcard set not found"})
			return
		}
		h.log.Error("flashcard set lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load flashcard set"})
		return
	}
	if set.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the set owner"})
		return
	}

	if err := h.flashcardRepo.Delete(c.Request.Context(), id); err != nil {
		h.log.Error("flashcard set deletion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete flashcard set"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Flashcard set deleted"}})
}

// CreateChallengeRequest represents challenge creation
type CreateChallengeRequest struct {
	Name         string   `json:"name" binding:"required"`
	QuizID       uint     `json:"quiz_id" binding:"required"`
	Scope        string   `json:"scope"`
	AllowedUsers []string `json:"allowed_users"`
}

// CreateChallenge handles challenge creation
func (h *ContentHandlers) CreateChallenge(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The challenge must wrap an existing quiz.
	if _, err := h.quizRepo.FindByID(c.Request.Context(), req.QuizID); err != nil {
		if errors.Is(err, domain.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}
		h.log.Error("quiz lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quiz"})
		return
	}

	scope := req.Scope
	if scope == "" {
		scope = domain.ScopePrivate
	}

	challenge := &domain.Challenge{
		Name:         req.Name,
		QuizID:       req.QuizID,
		CreatorID:    userID,
		Scope:        scope,
		AllowedUsers: req.AllowedUsers,
		IsActive:     true,
	}
	if err := h.challengeRepo.Create(c.Request.Context(), challenge); err != nil {
		h.log.Error("challenge creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": challenge})
}

// RecordScoreRequest represents a score submission for a challenge
type RecordScoreRequest struct {
	Score int `json:"score" binding:"min=0"`
}

// RecordScore stores the caller's score for a challenge, replacing
// any prior score they held on it.
func (h *ContentHandlers) RecordScore(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var req RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.challengeRepo.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		h.log.Error("challenge lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load challenge"})
		return
	}

	rawName, _ := c.Get("username")
	username, _ := rawName.(string)
	entry := &domain.LeaderboardEntry{
		ChallengeID: id,
		UserID:      userID,
		Username:    username,
		Score:       req.Score,
	}
	if err := h.leaderboardRepo.Record(c.Request.Context(), entry); err != nil {
		h.log.Error("score recording failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record score"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

// GetLeaderboard returns a challenge's scores, highest first
func (h *ContentHandlers) GetLeaderboard(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	if _, err := h.challengeRepo.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		h.log.Error("challenge lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load challenge"})
		return
	}

	entries, err := h.leaderboardRepo.FindByChallenge(c.Request.Context(), id)
	if err != nil {
		h.log.Error("leaderboard lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// GetChallenge returns a challenge by id
func (h *ContentHandlers) GetChallenge(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	challenge, err := h.challengeRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		h.log.Error("challenge lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": challenge})
}
