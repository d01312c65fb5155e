package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/gideonadjei94/KnowMateBackend/internal/http/handlers"
	"github.com/gideonadjei94/KnowMateBackend/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.ContentHandlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/verify-email", ah.VerifyEmail)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/password/reset", ah.RequestPasswordReset)
	auth.POST("/password/verify-otp", ah.VerifyResetOTP)
	auth.POST("/password/new", ah.SetNewPassword)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.POST("/quizzes", ch.CreateQuiz)
	v.GET("/quizzes", ch.ListMyQuizzes)
	v.GET("/quizzes/:id", ch.GetQuiz)
	v.DELETE("/quizzes/:id", ch.DeleteQuiz)
	v.POST("/flashcard-sets", ch.CreateFlashCardSet)
	v.GET("/flashcard-sets", ch.ListMyFlashCardSets)
	v.GET("/flashcard-sets/:id", ch.GetFlashCardSet)
	v.DELETE("/flashcard-sets/:id", ch.DeleteFlashCardSet)
	v.POST("/challenges", ch.CreateChallenge)
	v.GET("/challenges/:id", ch.GetChallenge)
	v.POST("/challenges/:id/scores", ch.RecordScore)
	v.GET("/challenges/:id/leaderboard", ch.GetLeaderboard)

	return r
}
