package services

import (
  "context"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type SyncProfileInput struct {
  Email       string `json:"email"`
  DisplayName string `json:"display_name"`
  Timezone    string `json:"timezone"`
}

type UserService interface {
  // SyncProfile mirrors the identity provider's profile into the local
  // user row, keyed by email. Repeated syncs update display metadata.
  SyncProfile(ctx context.Context, input SyncProfileInput) (*types.User, error)
  GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (s *userService) SyncProfile(ctx context.Context, input SyncProfileInput) (*types.User, error) {
  email := strings.ToLower(strings.TrimSpace(input.Email))
  if email == "" || !strings.Contains(email, "@") {
    return nil, apierr.Validation("a valid email is required")
  }
  displayName := strings.TrimSpace(input.DisplayName)
  if displayName == "" {
    return nil, apierr.Validation("display_name is required")
  }
  timezone := strings.TrimSpace(input.Timezone)
  if timezone == "" {
    timezone = "UTC"
  }

  user := &types.User{
    Email:       email,
    DisplayName: displayName,
    Timezone:    timezone,
  }
  if err := s.userRepo.Upsert(ctx, nil, user); err != nil {
    return nil, err
  }
  return s.userRepo.GetByEmail(ctx, nil, email)
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, err
  }
  if len(users) == 0 {
    return nil, apierr.NotFound("user %s not found", userID)
  }
  return users[0], nil
}
