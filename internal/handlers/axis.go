package handlers

import (
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type AxisHandler struct {
  axisService     services.AxisService
}

func NewAxisHandler(axisService services.AxisService) *AxisHandler {
  return &AxisHandler{axisService: axisService}
}

func axisID(c *gin.Context) (uuid.UUID, error) {
  id, err := uuid.Parse(c.Param("axisId"))
  if err != nil {
    return uuid.Nil, apierr.Validation("invalid axis id")
  }
  return id, nil
}

func (ah *AxisHandler) Create(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body services.CreateAxisInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  axis, err := ah.axisService.Create(c.Request.Context(), userID, body)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, gin.H{"axis": axis})
}

func (ah *AxisHandler) List(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  axes, err := ah.axisService.ListActive(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"axes": axes})
}

func (ah *AxisHandler) Update(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := axisID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  var body services.UpdateAxisInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  axis, err := ah.axisService.Update(c.Request.Context(), userID, id, body)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"axis": axis})
}

func (ah *AxisHandler) Deactivate(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := axisID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  if err := ah.axisService.Deactivate(c.Request.Context(), userID, id); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (ah *AxisHandler) Reorder(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body struct {
    AxisIDs []uuid.UUID `json:"axis_ids"`
  }
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  if err := ah.axisService.Reorder(c.Request.Context(), userID, body.AxisIDs); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (ah *AxisHandler) RecordMeasurement(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := axisID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  var body services.RecordMeasurementInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  measurement, err := ah.axisService.RecordMeasurement(c.Request.Context(), userID, id, body)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, gin.H{"measurement": measurement})
}

func (ah *AxisHandler) History(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := axisID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  days, _ := strconv.Atoi(c.Query("days"))
  measurements, err := ah.axisService.History(c.Request.Context(), userID, id, days)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"measurements": measurements})
}

func (ah *AxisHandler) Latest(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := axisID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  measurement, err := ah.axisService.Latest(c.Request.Context(), userID, id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"measurement": measurement})
}
