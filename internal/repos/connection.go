package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type ConnectionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Connection) (*types.Connection, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Connection, error)
  // UpdateStatus only matches rows where the acting user is the invited
  // side; the inviter cannot accept on the invitee's behalf.
  UpdateStatus(ctx context.Context, tx *gorm.DB, connectionID, connectedUserID uuid.UUID, status string, acceptedAt *time.Time) (int64, error)
  CountAccepted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type connectionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewConnectionRepo(db *gorm.DB, baseLog *logger.Logger) ConnectionRepo {
  repoLog := baseLog.With("repo", "ConnectionRepo")
  return &connectionRepo{db: db, log: repoLog}
}

func (r *connectionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Connection) (*types.Connection, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, nil
  }

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return nil, err
  }
  return row, nil
}

func (r *connectionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Connection, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Connection
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? OR connected_user_id = ?", userID, userID).
    Order("invited_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *connectionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, connectionID, connectedUserID uuid.UUID, status string, acceptedAt *time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  updates := map[string]interface{}{"status": status}
  if acceptedAt != nil {
    updates["accepted_at"] = *acceptedAt
  }
  result := transaction.WithContext(ctx).
    Model(&types.Connection{}).
    Where("id = ? AND connected_user_id = ?", connectionID, connectedUserID).
    Updates(updates)
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (r *connectionRepo) CountAccepted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Connection{}).
    Where("(user_id = ? OR connected_user_id = ?) AND status = ?", userID, userID, types.ConnectionAccepted).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
