package middleware

import (
  "fmt"
  "net/http"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/utils"
)

// UserIDKey is the gin context key the authenticated user id is stored
// under. Tokens are minted by the external identity service; this
// middleware only verifies and extracts.
const UserIDKey = "user_id"

type AuthMiddleware struct {
  log    *logger.Logger
  secret []byte
}

func NewAuthMiddleware(log *logger.Logger) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  secret := utils.GetEnv("JWT_SECRET", "", log)
  if secret == "" {
    middlewareLogger.Warn("JWT_SECRET is empty, all requests will be rejected")
  }
  return &AuthMiddleware{log: middlewareLogger, secret: []byte(secret)}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    userID, err := am.verify(tokenString)
    if err != nil {
      am.log.Debug("Token rejected", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
      return
    }
    c.Set(UserIDKey, userID)
    c.Next()
  }
}

func (am *AuthMiddleware) verify(tokenString string) (uuid.UUID, error) {
  if len(am.secret) == 0 {
    return uuid.Nil, fmt.Errorf("no signing secret configured")
  }
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return am.secret, nil
  })
  if err != nil || !token.Valid {
    return uuid.Nil, fmt.Errorf("token parse failed: %w", err)
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok {
    return uuid.Nil, fmt.Errorf("unexpected claims type")
  }
  sub, err := claims.GetSubject()
  if err != nil || sub == "" {
    return uuid.Nil, fmt.Errorf("missing sub claim")
  }
  userID, err := uuid.Parse(sub)
  if err != nil {
    return uuid.Nil, fmt.Errorf("sub is not a uuid")
  }
  return userID, nil
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  return ""
}

// UserID pulls the authenticated user id out of the gin context. The
// second return is false on unauthenticated routes.
func UserID(c *gin.Context) (uuid.UUID, bool) {
  value, exists := c.Get(UserIDKey)
  if !exists {
    return uuid.Nil, false
  }
  userID, ok := value.(uuid.UUID)
  if !ok || userID == uuid.Nil {
    return uuid.Nil, false
  }
  return userID, true
}
