package handlers

import (
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type InsightHandler struct {
  insightService        services.InsightService
  achievementService    services.AchievementService
}

func NewInsightHandler(insightService services.InsightService, achievementService services.AchievementService) *InsightHandler {
  return &InsightHandler{insightService: insightService, achievementService: achievementService}
}

func insightID(c *gin.Context) (uuid.UUID, error) {
  id, err := uuid.Parse(c.Param("insightId"))
  if err != nil {
    return uuid.Nil, apierr.Validation("invalid insight id")
  }
  return id, nil
}

func (ih *InsightHandler) Record(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body services.RecordInsightInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  insight, err := ih.insightService.Record(c.Request.Context(), userID, body)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, gin.H{"insight": insight})
}

func (ih *InsightHandler) List(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  limit, _ := strconv.Atoi(c.Query("limit"))
  insights, err := ih.insightService.List(c.Request.Context(), userID, limit)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"insights": insights})
}

func (ih *InsightHandler) MarkRead(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := insightID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  if err := ih.insightService.MarkRead(c.Request.Context(), userID, id); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (ih *InsightHandler) Rate(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := insightID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  var body struct {
    Rating *int `json:"rating"`
  }
  if err := c.ShouldBindJSON(&body); err != nil || body.Rating == nil {
    RespondError(c, apierr.Validation("rating is required"))
    return
  }
  if err := ih.insightService.Rate(c.Request.Context(), userID, id, *body.Rating); err != nil {
    RespondError(c, err)
    return
  }
  unlocked, err := ih.achievementService.Evaluate(c.Request.Context(), userID)
  if err != nil {
    unlocked = []string{}
  }
  RespondOK(c, gin.H{"ok": true, "unlocked_badges": unlocked})
}
