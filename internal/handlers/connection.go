package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type ConnectionHandler struct {
  connectionService     services.ConnectionService
  achievementService    services.AchievementService
}

func NewConnectionHandler(connectionService services.ConnectionService, achievementService services.AchievementService) *ConnectionHandler {
  return &ConnectionHandler{connectionService: connectionService, achievementService: achievementService}
}

func (ch *ConnectionHandler) Invite(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body struct {
    Email string `json:"email"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  connection, err := ch.connectionService.Invite(c.Request.Context(), userID, body.Email)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, gin.H{"connection": connection})
}

func (ch *ConnectionHandler) Respond(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  connectionID, err := uuid.Parse(c.Param("connectionId"))
  if err != nil {
    RespondError(c, apierr.Validation("invalid connection id"))
    return
  }
  var body struct {
    Status string `json:"status"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  if err := ch.connectionService.Respond(c.Request.Context(), userID, connectionID, body.Status); err != nil {
    RespondError(c, err)
    return
  }
  unlocked, err := ch.achievementService.Evaluate(c.Request.Context(), userID)
  if err != nil {
    unlocked = []string{}
  }
  RespondOK(c, gin.H{"ok": true, "unlocked_badges": unlocked})
}

func (ch *ConnectionHandler) List(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  connections, err := ch.connectionService.List(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"connections": connections})
}
