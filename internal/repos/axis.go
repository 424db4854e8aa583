package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type AxisRepo interface {
  Create(ctx context.Context, tx *gorm.DB, axes []*types.EmotionalAxis) ([]*types.EmotionalAxis, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID) (*types.EmotionalAxis, error)
  GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EmotionalAxis, error)
  Update(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID, updates map[string]interface{}) error
  Deactivate(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID) error
  SetDisplayOrder(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID, order int) error
}

type axisRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAxisRepo(db *gorm.DB, baseLog *logger.Logger) AxisRepo {
  repoLog := baseLog.With("repo", "AxisRepo")
  return &axisRepo{db: db, log: repoLog}
}

func (r *axisRepo) Create(ctx context.Context, tx *gorm.DB, axes []*types.EmotionalAxis) ([]*types.EmotionalAxis, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(axes) == 0 {
    return []*types.EmotionalAxis{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&axes).Error; err != nil {
    return nil, err
  }
  return axes, nil
}

func (r *axisRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID) (*types.EmotionalAxis, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.EmotionalAxis
  err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", axisID, userID).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *axisRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EmotionalAxis, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.EmotionalAxis
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND is_active = ?", userID, true).
    Order("display_order ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *axisRepo) Update(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(updates) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.EmotionalAxis{}).
    Where("id = ? AND user_id = ?", axisID, userID).
    Updates(updates).Error; err != nil {
    return err
  }
  return nil
}

// Deactivate soft-deletes an axis. Measurements stay untouched so history
// keeps its integrity.
func (r *axisRepo) Deactivate(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID) error {
  return r.Update(ctx, tx, axisID, userID, map[string]interface{}{"is_active": false})
}

func (r *axisRepo) SetDisplayOrder(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID, order int) error {
  return r.Update(ctx, tx, axisID, userID, map[string]interface{}{"display_order": order})
}
