package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevinblo/fwords-backend/internal/auth"
	"github.com/kevinblo/fwords-backend/internal/config"
	"github.com/kevinblo/fwords-backend/internal/mailer"
	"github.com/kevinblo/fwords-backend/internal/progress"
	"github.com/kevinblo/fwords-backend/pkg/logger"
)

// NewRouter wires all handlers into a gin engine
func NewRouter(cfg *config.Config, log *logger.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	mail := mailer.New(cfg.Mail, log)
	engine := progress.NewEngine(log)
	stats := progress.NewStatsService(log)

	authHandler := NewAuthHandler(tokens, mail, cfg.Auth, log)
	catalogHandler := NewCatalogHandler(log)
	progressHandler := NewProgressHandler(engine, stats, log)
	quizHandler := NewQuizHandler(stats, log)
	authMiddleware := NewAuthMiddleware(tokens, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.GET("/activate/:token", authHandler.Activate)
			authGroup.POST("/resend-activation", authHandler.ResendActivation)
			authGroup.POST("/login", authHandler.Login)
		}

		v1.GET("/languages", catalogHandler.ListLanguages)
		v1.GET("/languages/:code", catalogHandler.GetLanguage)
		v1.GET("/parts-of-speech", catalogHandler.ListPartsOfSpeech)
		v1.GET("/words", catalogHandler.ListWords)
		v1.GET("/words/:id", catalogHandler.GetWord)

		private := v1.Group("", authMiddleware.RequireAuth())
		{
			private.GET("/auth/profile", authHandler.GetProfile)
			private.PATCH("/auth/profile", authHandler.UpdateProfile)

			words := private.Group("/progress/words")
			{
				words.GET("", progressHandler.ListWordsProgress)
				words.POST("", progressHandler.SubmitReview)
				words.POST("/bulk-update", progressHandler.BulkUpdateWordsProgress)
				words.GET("/:id", progressHandler.GetWordsProgress)
				words.PATCH("/:id", progressHandler.UpdateWordsProgress)
				words.DELETE("/:id", progressHandler.DeleteWordsProgress)
			}

			languages := private.Group("/progress/languages")
			{
				languages.GET("", progressHandler.ListLanguageProgress)
				languages.POST("", progressHandler.CreateLanguageProgress)
				languages.GET("/:id", progressHandler.GetLanguageProgress)
				languages.PATCH("/:id", progressHandler.UpdateLanguageLevel)
				languages.DELETE("/:id", progressHandler.DeleteLanguageProgress)
			}

			private.GET("/progress/words-learned-today", progressHandler.WordsLearnedToday)

			quiz := private.Group("/progress/quiz")
			{
				quiz.POST("", quizHandler.CreateQuiz)
				quiz.GET("", quizHandler.ListQuizzes)
				quiz.GET("/:id", quizHandler.GetQuiz)
			}

			private.GET("/progress/stats/words", progressHandler.WordsStats)
			private.GET("/progress/stats/quiz", quizHandler.QuizStats)
		}
	}

	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
