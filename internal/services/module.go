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

type ModuleService interface {
  // Complete marks a curriculum module done. Re-completion is a no-op
  // that keeps the original timestamp.
  Complete(ctx context.Context, userID uuid.UUID, moduleNumber int) error
  SaveReflection(ctx context.Context, userID uuid.UUID, moduleNumber int, reflection string) error
  List(ctx context.Context, userID uuid.UUID) ([]*types.ModuleProgress, error)
}

type moduleService struct {
  db         *gorm.DB
  log        *logger.Logger
  clock      Clock
  moduleRepo repos.ModuleProgressRepo
}

func NewModuleService(db *gorm.DB, log *logger.Logger, clock Clock, moduleRepo repos.ModuleProgressRepo) ModuleService {
  serviceLog := log.With("service", "ModuleService")
  return &moduleService{db: db, log: serviceLog, clock: clock, moduleRepo: moduleRepo}
}

func (s *moduleService) Complete(ctx context.Context, userID uuid.UUID, moduleNumber int) error {
  if moduleNumber < 1 || moduleNumber > types.ModuleCount {
    return apierr.Validation("module_number %d out of range [1,%d]", moduleNumber, types.ModuleCount)
  }
  return s.moduleRepo.UpsertCompletion(ctx, nil, userID, moduleNumber, s.clock.Now())
}

func (s *moduleService) SaveReflection(ctx context.Context, userID uuid.UUID, moduleNumber int, reflection string) error {
  if moduleNumber < 1 || moduleNumber > types.ModuleCount {
    return apierr.Validation("module_number %d out of range [1,%d]", moduleNumber, types.ModuleCount)
  }
  reflection = strings.TrimSpace(reflection)
  if reflection == "" {
    return apierr.Validation("reflection is required")
  }
  return s.moduleRepo.SaveReflection(ctx, nil, userID, moduleNumber, reflection)
}

func (s *moduleService) List(ctx context.Context, userID uuid.UUID) ([]*types.ModuleProgress, error) {
  return s.moduleRepo.GetByUserID(ctx, nil, userID)
}
