package main

import (
  "fmt"
  "os"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/utils"
  "github.com/praxislabs/praxis-backend/internal/db"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/services"
  "github.com/praxislabs/praxis-backend/internal/handlers"
  "github.com/praxislabs/praxis-backend/internal/middleware"
  "github.com/praxislabs/praxis-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  axisRepo := repos.NewAxisRepo(thePG, log)
  measurementRepo := repos.NewMeasurementRepo(thePG, log)
  cycleRepo := repos.NewDailyCycleRepo(thePG, log)
  badgeRepo := repos.NewUnlockedBadgeRepo(thePG, log)
  flashcardRepo := repos.NewFlashcardRepo(thePG, log)
  moduleRepo := repos.NewModuleProgressRepo(thePG, log)
  connectionRepo := repos.NewConnectionRepo(thePG, log)
  insightRepo := repos.NewInsightRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  clock := services.NewRealClock()
  userService := services.NewUserService(thePG, log, userRepo)
  axisService := services.NewAxisService(thePG, log, clock, axisRepo, measurementRepo)
  cycleService := services.NewCycleService(thePG, log, clock, cycleRepo, measurementRepo)
  statsService := services.NewStatsService(thePG, log, clock, cycleRepo, axisRepo, measurementRepo)
  achievementService := services.NewAchievementService(thePG, log, clock, badgeRepo, cycleRepo, axisRepo, measurementRepo, moduleRepo, connectionRepo, insightRepo)
  flashcardService := services.NewFlashcardService(thePG, log, clock, flashcardRepo)
  moduleService := services.NewModuleService(thePG, log, clock, moduleRepo)
  connectionService := services.NewConnectionService(thePG, log, clock, connectionRepo, userRepo)
  insightService := services.NewInsightService(thePG, log, insightRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  userHandler := handlers.NewUserHandler(userService)
  axisHandler := handlers.NewAxisHandler(axisService)
  cycleHandler := handlers.NewCycleHandler(cycleService, achievementService)
  statsHandler := handlers.NewStatsHandler(statsService)
  achievementHandler := handlers.NewAchievementHandler(achievementService)
  flashcardHandler := handlers.NewFlashcardHandler(flashcardService)
  moduleHandler := handlers.NewModuleHandler(moduleService, achievementService)
  connectionHandler := handlers.NewConnectionHandler(connectionService, achievementService)
  insightHandler := handlers.NewInsightHandler(insightService, achievementService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware:     authMiddleware,
    UserHandler:        userHandler,
    AxisHandler:        axisHandler,
    CycleHandler:       cycleHandler,
    StatsHandler:       statsHandler,
    AchievementHandler: achievementHandler,
    FlashcardHandler:   flashcardHandler,
    ModuleHandler:      moduleHandler,
    ConnectionHandler:  connectionHandler,
    InsightHandler:     insightHandler,
    AllowedOrigins:     utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log),
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
