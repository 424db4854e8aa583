package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type AchievementHandler struct {
  achievementService    services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
  return &AchievementHandler{achievementService: achievementService}
}

func (ah *AchievementHandler) List(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  badges, err := ah.achievementService.List(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"badges": badges})
}

func (ah *AchievementHandler) Evaluate(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  unlocked, err := ah.achievementService.Evaluate(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"unlocked_badges": unlocked})
}
