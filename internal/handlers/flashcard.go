package handlers

import (
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/services"
)

type FlashcardHandler struct {
  flashcardService    services.FlashcardService
}

func NewFlashcardHandler(flashcardService services.FlashcardService) *FlashcardHandler {
  return &FlashcardHandler{flashcardService: flashcardService}
}

func cardID(c *gin.Context) (uuid.UUID, error) {
  id, err := uuid.Parse(c.Param("cardId"))
  if err != nil {
    return uuid.Nil, apierr.Validation("invalid card id")
  }
  return id, nil
}

func (fh *FlashcardHandler) Create(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  var body services.CreateFlashcardInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  card, err := fh.flashcardService.Create(c.Request.Context(), userID, body)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondCreated(c, gin.H{"card": card})
}

func (fh *FlashcardHandler) Get(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := cardID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  card, err := fh.flashcardService.Get(c.Request.Context(), userID, id)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"card": card})
}

func (fh *FlashcardHandler) List(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  cards, err := fh.flashcardService.List(c.Request.Context(), userID, c.Query("deck"))
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"cards": cards})
}

func (fh *FlashcardHandler) Update(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := cardID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  var body services.UpdateFlashcardInput
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, apierr.Validation("invalid request body: %v", err))
    return
  }
  card, err := fh.flashcardService.Update(c.Request.Context(), userID, id, body)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"card": card})
}

func (fh *FlashcardHandler) Delete(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := cardID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  if err := fh.flashcardService.Delete(c.Request.Context(), userID, id); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (fh *FlashcardHandler) Review(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  id, err := cardID(c)
  if err != nil {
    RespondError(c, err)
    return
  }
  var body struct {
    Quality *int `json:"quality"`
  }
  if err := c.ShouldBindJSON(&body); err != nil || body.Quality == nil {
    RespondError(c, apierr.Validation("quality is required"))
    return
  }
  card, err := fh.flashcardService.Review(c.Request.Context(), userID, id, *body.Quality)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"card": card})
}

func (fh *FlashcardHandler) Due(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  limit, _ := strconv.Atoi(c.Query("limit"))
  cards, err := fh.flashcardService.Due(c.Request.Context(), userID, limit)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"cards": cards})
}

func (fh *FlashcardHandler) Stats(c *gin.Context) {
  userID, ok := mustUserID(c)
  if !ok {
    return
  }
  stats, err := fh.flashcardService.Stats(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, stats)
}
