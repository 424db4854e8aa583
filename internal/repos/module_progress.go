package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type ModuleProgressRepo interface {
  UpsertCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleNumber int, completedAt time.Time) error
  SaveReflection(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleNumber int, reflection string) error
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ModuleProgress, error)
  CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type moduleProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewModuleProgressRepo(db *gorm.DB, baseLog *logger.Logger) ModuleProgressRepo {
  repoLog := baseLog.With("repo", "ModuleProgressRepo")
  return &moduleProgressRepo{db: db, log: repoLog}
}

func (r *moduleProgressRepo) UpsertCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleNumber int, completedAt time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  row := &types.ModuleProgress{
    UserID:       userID,
    ModuleNumber: moduleNumber,
    CompletedAt:  &completedAt,
  }
  // Re-completing a module keeps the original completion timestamp.
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_number"}},
      DoNothing: true,
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *moduleProgressRepo) SaveReflection(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleNumber int, reflection string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  row := &types.ModuleProgress{
    UserID:       userID,
    ModuleNumber: moduleNumber,
    Reflection:   reflection,
  }
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_number"}},
      DoUpdates: clause.AssignmentColumns([]string{"reflection", "updated_at"}),
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *moduleProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ModuleProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ModuleProgress
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("module_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *moduleProgressRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ModuleProgress{}).
    Where("user_id = ? AND completed_at IS NOT NULL", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
