package server

import (
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/praxislabs/praxis-backend/internal/handlers"
  "github.com/praxislabs/praxis-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware        *middleware.AuthMiddleware
  UserHandler           *handlers.UserHandler
  AxisHandler           *handlers.AxisHandler
  CycleHandler          *handlers.CycleHandler
  StatsHandler          *handlers.StatsHandler
  AchievementHandler    *handlers.AchievementHandler
  FlashcardHandler      *handlers.FlashcardHandler
  ModuleHandler         *handlers.ModuleHandler
  ConnectionHandler     *handlers.ConnectionHandler
  InsightHandler        *handlers.InsightHandler
  AllowedOrigins        string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  origins := []string{"http://localhost:3000", "http://localhost:5173"}
  if cfg.AllowedOrigins != "" {
    origins = strings.Split(cfg.AllowedOrigins, ",")
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/users/sync", cfg.UserHandler.SyncProfile)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.GET("/me", cfg.UserHandler.GetMe)
  // Axes
  protected.POST("/axes", cfg.AxisHandler.Create)
  protected.GET("/axes", cfg.AxisHandler.List)
  protected.PATCH("/axes/:axisId", cfg.AxisHandler.Update)
  protected.DELETE("/axes/:axisId", cfg.AxisHandler.Deactivate)
  protected.PUT("/axes/order", cfg.AxisHandler.Reorder)
  protected.POST("/axes/:axisId/measurements", cfg.AxisHandler.RecordMeasurement)
  protected.GET("/axes/:axisId/measurements", cfg.AxisHandler.History)
  protected.GET("/axes/:axisId/latest", cfg.AxisHandler.Latest)
  protected.GET("/axes/:axisId/streak", cfg.StatsHandler.GetAxisStreak)
  // Daily cycle
  protected.POST("/cycle/morning", cfg.CycleHandler.StartMorning)
  protected.POST("/cycle/midday", cfg.CycleHandler.CompleteMidday)
  protected.POST("/cycle/evening", cfg.CycleHandler.CompleteEvening)
  protected.GET("/cycle/today", cfg.CycleHandler.GetToday)
  protected.GET("/cycle/history", cfg.CycleHandler.GetHistory)
  // Stats
  protected.GET("/stats/streak", cfg.StatsHandler.GetStreak)
  protected.GET("/stats/destiny-score", cfg.StatsHandler.GetDestinyScore)
  // Achievements
  protected.GET("/achievements", cfg.AchievementHandler.List)
  protected.POST("/achievements/evaluate", cfg.AchievementHandler.Evaluate)
  // Flashcards
  protected.POST("/flashcards", cfg.FlashcardHandler.Create)
  protected.GET("/flashcards", cfg.FlashcardHandler.List)
  protected.GET("/flashcards/due", cfg.FlashcardHandler.Due)
  protected.GET("/flashcards/stats", cfg.FlashcardHandler.Stats)
  protected.GET("/flashcards/:cardId", cfg.FlashcardHandler.Get)
  protected.PATCH("/flashcards/:cardId", cfg.FlashcardHandler.Update)
  protected.DELETE("/flashcards/:cardId", cfg.FlashcardHandler.Delete)
  protected.POST("/flashcards/:cardId/review", cfg.FlashcardHandler.Review)
  // Learning modules
  protected.GET("/modules", cfg.ModuleHandler.List)
  protected.POST("/modules/:moduleNumber/complete", cfg.ModuleHandler.Complete)
  protected.PUT("/modules/:moduleNumber/reflection", cfg.ModuleHandler.SaveReflection)
  // Connections
  protected.POST("/connections", cfg.ConnectionHandler.Invite)
  protected.GET("/connections", cfg.ConnectionHandler.List)
  protected.POST("/connections/:connectionId/respond", cfg.ConnectionHandler.Respond)
  // Insights
  protected.POST("/insights", cfg.InsightHandler.Record)
  protected.GET("/insights", cfg.InsightHandler.List)
  protected.POST("/insights/:insightId/read", cfg.InsightHandler.MarkRead)
  protected.POST("/insights/:insightId/rate", cfg.InsightHandler.Rate)

  return router
}
