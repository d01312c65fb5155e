package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gideonadjei94/KnowMateBackend/internal/config"
	httpx "github.com/gideonadjei94/KnowMateBackend/internal/http"
	"github.com/gideonadjei94/KnowMateBackend/internal/http/handlers"
	"github.com/gideonadjei94/KnowMateBackend/internal/http/middleware"
	"github.com/gideonadjei94/KnowMateBackend/internal/infrastructure/auth"
	"github.com/gideonadjei94/KnowMateBackend/internal/infrastructure/database"
	"github.com/gideonadjei94/KnowMateBackend/internal/infrastructure/notifications"
	"github.com/gideonadjei94/KnowMateBackend/internal/infrastructure/repositories"
	"github.com/gideonadjei94/KnowMateBackend/internal/services"
)

func Run(cfg *config.Config, log *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	registerEncoder := auth.NewBcryptCodeEncoder()
	resetEncoder := auth.NewBase64CodeEncoder()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, log)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	verificationRepo := repositories.NewVerificationRepository(rdb)
	quizRepo := repositories.NewQuizRepository(gdb)
	flashcardRepo := repositories.NewFlashCardSetRepository(gdb)
	challengeRepo := repositories.NewChallengeRepository(gdb)
	leaderboardRepo := repositories.NewLeaderboardRepository(gdb)

	// Services
	authSvc := services.NewAuthService(
		userRepo,
		verificationRepo,
		passwordSvc,
		registerEncoder,
		resetEncoder,
		tokenSvc,
		notificationSvc,
		cfg.OTPLength,
		log,
	)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, log)
	contentH := handlers.NewContentHandlers(quizRepo, flashcardRepo, challengeRepo, leaderboardRepo, log)
	jwtMW := middleware.NewAuthMW(tokenSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, contentH, jwtMW, casbinMW)

	policies, err := cas.E.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) == 0 {
		seed := [][]string{
			{"role_STUDENT", "/quizzes", "(GET|POST)"},
			{"role_STUDENT", "/quizzes/:id", "(GET|DELETE)"},
			{"role_STUDENT", "/flashcard-sets", "(GET|POST)"},
			{"role_STUDENT", "/flashcard-sets/:id", "(GET|DELETE)"},
			{"role_STUDENT", "/challenges", "POST"},
			{"role_STUDENT", "/challenges/:id", "GET"},
			{"role_STUDENT", "/challenges/:id/scores", "POST"},
			{"role_STUDENT", "/challenges/:id/leaderboard", "GET"},
			{"role_ADMIN", "/*", "(GET|POST|PUT|DELETE)"},
		}
		for _, p := range seed {
			if _, err := cas.E.AddPolicy(p[0], p[1], p[2]); err != nil {
				return fmt.Errorf("casbin: failed to seed policy %v: %w", p, err)
			}
		}
		if err := cas.E.SavePolicy(); err != nil {
			return fmt.Errorf("casbin: failed to persist seeded policies: %w", err)
		}
		log.Info("casbin: seeded default policies", zap.Int("count", len(seed)))
	}

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
