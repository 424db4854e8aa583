package services

import (
  "context"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type ConnectionService interface {
  // Invite creates a pending connection to the user behind email.
  Invite(ctx context.Context, userID uuid.UUID, email string) (*types.Connection, error)
  // Respond lets the invited user accept, decline, or block. The inviter
  // cannot respond to their own invite.
  Respond(ctx context.Context, userID, connectionID uuid.UUID, status string) error
  List(ctx context.Context, userID uuid.UUID) ([]*types.Connection, error)
}

type connectionService struct {
  db             *gorm.DB
  log            *logger.Logger
  clock          Clock
  connectionRepo repos.ConnectionRepo
  userRepo       repos.UserRepo
}

func NewConnectionService(db *gorm.DB, log *logger.Logger, clock Clock, connectionRepo repos.ConnectionRepo, userRepo repos.UserRepo) ConnectionService {
  serviceLog := log.With("service", "ConnectionService")
  return &connectionService{
    db:             db,
    log:            serviceLog,
    clock:          clock,
    connectionRepo: connectionRepo,
    userRepo:       userRepo,
  }
}

func (s *connectionService) Invite(ctx context.Context, userID uuid.UUID, email string) (*types.Connection, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  if email == "" {
    return nil, apierr.Validation("email is required")
  }

  target, err := s.userRepo.GetByEmail(ctx, nil, email)
  if err != nil {
    return nil, err
  }
  if target == nil {
    return nil, apierr.NotFound("no user with that email")
  }
  if target.ID == userID {
    return nil, apierr.Validation("cannot invite yourself")
  }

  existing, err := s.connectionRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  for _, conn := range existing {
    samePair := (conn.UserID == userID && conn.ConnectedUserID == target.ID) ||
      (conn.UserID == target.ID && conn.ConnectedUserID == userID)
    if samePair && conn.Status != types.ConnectionDeclined {
      return nil, apierr.Precondition("a connection with that user already exists")
    }
  }

  return s.connectionRepo.Create(ctx, nil, &types.Connection{
    UserID:          userID,
    ConnectedUserID: target.ID,
    Status:          types.ConnectionPending,
    InvitedAt:       s.clock.Now(),
  })
}

func (s *connectionService) Respond(ctx context.Context, userID, connectionID uuid.UUID, status string) error {
  switch status {
  case types.ConnectionAccepted, types.ConnectionDeclined, types.ConnectionBlocked:
  default:
    return apierr.Validation("status must be accepted, declined, or blocked")
  }

  var acceptedAt *time.Time
  if status == types.ConnectionAccepted {
    now := s.clock.Now()
    acceptedAt = &now
  }

  rows, err := s.connectionRepo.UpdateStatus(ctx, nil, connectionID, userID, status, acceptedAt)
  if err != nil {
    return err
  }
  if rows == 0 {
    return apierr.NotFound("no pending invite %s addressed to you", connectionID)
  }
  return nil
}

func (s *connectionService) List(ctx context.Context, userID uuid.UUID) ([]*types.Connection, error) {
  return s.connectionRepo.GetByUserID(ctx, nil, userID)
}
