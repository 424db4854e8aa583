package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type UnlockedBadgeRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UnlockedBadge, error)
  // Upsert inserts the unlock and reports whether the row was newly
  // created. The unique (user_id, badge_id) index turns duplicate unlock
  // attempts into no-ops, which is what makes achievement evaluation
  // idempotent under replay and concurrent calls.
  Upsert(ctx context.Context, tx *gorm.DB, row *types.UnlockedBadge) (bool, error)
}

type unlockedBadgeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUnlockedBadgeRepo(db *gorm.DB, baseLog *logger.Logger) UnlockedBadgeRepo {
  repoLog := baseLog.With("repo", "UnlockedBadgeRepo")
  return &unlockedBadgeRepo{db: db, log: repoLog}
}

func (r *unlockedBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UnlockedBadge, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.UnlockedBadge
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("unlocked_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *unlockedBadgeRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UnlockedBadge) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return false, nil
  }

  result := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
      DoNothing: true,
    }).
    Create(row)
  if result.Error != nil {
    return false, result.Error
  }
  return result.RowsAffected > 0, nil
}
