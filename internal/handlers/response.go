package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/middleware"
)

type APIError struct {
  Message     string	`json:"message"`
  Code	      string	`json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error	      APIError	`json:"error"`
}

// RespondError maps a service error onto the wire envelope via the error
// taxonomy; anything unclassified surfaces as a 500 internal_error.
func RespondError(c *gin.Context, err error) {
  ae := apierr.From(err)
  c.JSON(ae.Status, ErrorEnvelope{
    Error: APIError{
      Message: ae.Error(),
      Code:    ae.Code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
  c.JSON(http.StatusCreated, payload)
}

// mustUserID aborts with 401 when auth middleware did not run.
func mustUserID(c *gin.Context) (uuid.UUID, bool) {
  userID, ok := middleware.UserID(c)
  if !ok {
    c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
    return uuid.Nil, false
  }
  return userID, true
}
