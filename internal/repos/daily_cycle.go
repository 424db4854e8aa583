package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type DailyCycleRepo interface {
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cycleDate string) (*types.DailyCycle, error)
  // CreateIfAbsent inserts the cycle unless a row for (user, date) already
  // exists. A uniqueness race is not an error: the loser's insert becomes a
  // no-op and the caller falls through to update semantics.
  CreateIfAbsent(ctx context.Context, tx *gorm.DB, cycle *types.DailyCycle) error
  Update(ctx context.Context, tx *gorm.DB, cycleID, userID uuid.UUID, updates map[string]interface{}) error
  GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyCycle, error)
  GetByUserInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startDate, endDate string) ([]*types.DailyCycle, error)
}

type dailyCycleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyCycleRepo(db *gorm.DB, baseLog *logger.Logger) DailyCycleRepo {
  repoLog := baseLog.With("repo", "DailyCycleRepo")
  return &dailyCycleRepo{db: db, log: repoLog}
}

func (r *dailyCycleRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cycleDate string) (*types.DailyCycle, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.DailyCycle
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND cycle_date = ?", userID, cycleDate).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *dailyCycleRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, cycle *types.DailyCycle) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if cycle == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "cycle_date"}},
      DoNothing: true,
    }).
    Create(cycle).Error; err != nil {
    return err
  }
  return nil
}

func (r *dailyCycleRepo) Update(ctx context.Context, tx *gorm.DB, cycleID, userID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(updates) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.DailyCycle{}).
    Where("id = ? AND user_id = ?", cycleID, userID).
    Updates(updates).Error; err != nil {
    return err
  }
  return nil
}

func (r *dailyCycleRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyCycle, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.DailyCycle
  if userID == uuid.Nil {
    return results, nil
  }

  q := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("cycle_date DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *dailyCycleRepo) GetByUserInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startDate, endDate string) ([]*types.DailyCycle, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.DailyCycle
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND cycle_date >= ? AND cycle_date <= ?", userID, startDate, endDate).
    Order("cycle_date DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
