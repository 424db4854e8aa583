package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type UserHandler struct {
  userService     services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  me, err := uh.userService.GetMe(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"me": me})
}

func (uh *UserHandler) SyncProfile(c *gin.Context) {
  var body services.SyncProfileInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  user, err := uh.userService.SyncProfile(c.Request.Context(), body)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}
