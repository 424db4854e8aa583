package handlers

import (
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type CycleHandler struct {
  cycleService        services.CycleService
  achievementService  services.AchievementService
}

func NewCycleHandler(cycleService services.CycleService, achievementService services.AchievementService) *CycleHandler {
  return &CycleHandler{cycleService: cycleService, achievementService: achievementService}
}

func (ch *CycleHandler) StartMorning(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body struct {
    Calibrations []services.AxisCalibration `json:"calibrations"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  cycle, err := ch.cycleService.StartMorning(c.Request.Context(), userID, body.Calibrations)
  if err != nil {
    RespondError(c, err)
    return
  }
  unlocked := ch.evaluateBadges(c, userID)
  RespondOK(c, gin.H{"cycle": cycle, "unlocked_badges": unlocked})
}

func (ch *CycleHandler) CompleteMidday(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body struct {
    IntendedAction string `json:"intended_action"`
    DecisivePrompt string `json:"decisive_prompt"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  if err := ch.cycleService.CompleteMidday(c.Request.Context(), userID, body.IntendedAction, body.DecisivePrompt); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (ch *CycleHandler) CompleteEvening(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body struct {
    ActionTaken    string `json:"action_taken"`
    ObservedEffect string `json:"observed_effect"`
    Reflection     string `json:"reflection"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  if err := ch.cycleService.CompleteEvening(c.Request.Context(), userID, body.ActionTaken, body.ObservedEffect, body.Reflection); err != nil {
    RespondError(c, err)
    return
  }
  unlocked := ch.evaluateBadges(c, userID)
  RespondOK(c, gin.H{"ok": true, "unlocked_badges": unlocked})
}

func (ch *CycleHandler) GetToday(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  cycle, err := ch.cycleService.GetToday(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"cycle": cycle, "phase": cycle.Phase()})
}

func (ch *CycleHandler) GetHistory(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  days, _ := strconv.Atoi(c.Query("days"))
  cycles, err := ch.cycleService.GetHistory(c.Request.Context(), userID, days)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"cycles": cycles})
}

// evaluateBadges runs achievement evaluation after a practice event. A
// failed evaluation never fails the practice submission itself.
func (ch *CycleHandler) evaluateBadges(c *gin.Context, userID uuid.UUID) []string {
  unlocked, err := ch.achievementService.Evaluate(c.Request.Context(), userID)
  if err != nil {
    return []string{}
  }
  return unlocked
}
