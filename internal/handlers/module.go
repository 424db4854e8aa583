package handlers

import (
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type ModuleHandler struct {
  moduleService         services.ModuleService
  achievementService    services.AchievementService
}

func NewModuleHandler(moduleService services.ModuleService, achievementService services.AchievementService) *ModuleHandler {
  return &ModuleHandler{moduleService: moduleService, achievementService: achievementService}
}

func moduleNumber(c *gin.Context) (int, error) {
  number, err := strconv.Atoi(c.Param("moduleNumber"))
  if err != nil {
    return 0, apierr.Validation("invalid module number")
  }
  return number, nil
}

func (mh *ModuleHandler) Complete(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  number, err := moduleNumber(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  if err := mh.moduleService.Complete(c.Request.Context(), userID, number); err != nil {
    RespondError(c, err)
    return
  }
  unlocked, err := mh.achievementService.Evaluate(c.Request.Context(), userID)
  if err != nil {
    unlocked = []string{}
  }
  RespondOK(c, gin.H{"ok": true, "unlocked_badges": unlocked})
}

func (mh *ModuleHandler) SaveReflection(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  number, err := moduleNumber(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  var body struct {
    Reflection string `json:"reflection"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  if err := mh.moduleService.SaveReflection(c.Request.Context(), userID, number, body.Reflection); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (mh *ModuleHandler) List(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  progress, err := mh.moduleService.List(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"modules": progress})
}
