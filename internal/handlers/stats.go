package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type StatsHandler struct {
  statsService    services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
  return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) GetStreak(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  streak, err := sh.statsService.GetCurrentStreak(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"streak_days": streak})
}

func (sh *StatsHandler) GetDestinyScore(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  score, err := sh.statsService.GetDestinyScore(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, score)
}

func (sh *StatsHandler) GetAxisStreak(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  axisID, err := uuid.Parse(c.Param("axisId"))
  if err != nil {
    RespondError(c, apierr.Validation("invalid axis id"))
    return
  }
  streak, err := sh.statsService.GetAxisStreak(c.Request.Context(), userID, axisID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"streak_days": streak})
}
