package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type MeasurementRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.AxisMeasurement) ([]*types.AxisMeasurement, error)
  GetByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.AxisMeasurement, error)
  GetByUserAxisSince(ctx context.Context, tx *gorm.DB, userID, axisID uuid.UUID, since time.Time) ([]*types.AxisMeasurement, error)
  GetLatestForAxis(ctx context.Context, tx *gorm.DB, userID, axisID uuid.UUID) (*types.AxisMeasurement, error)
  CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type measurementRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMeasurementRepo(db *gorm.DB, baseLog *logger.Logger) MeasurementRepo {
  repoLog := baseLog.With("repo", "MeasurementRepo")
  return &measurementRepo{db: db, log: repoLog}
}

func (r *measurementRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AxisMeasurement) ([]*types.AxisMeasurement, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.AxisMeasurement{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *measurementRepo) GetByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.AxisMeasurement, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.AxisMeasurement
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND client_timestamp >= ?", userID, since).
    Order("client_timestamp DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *measurementRepo) GetByUserAxisSince(ctx context.Context, tx *gorm.DB, userID, axisID uuid.UUID, since time.Time) ([]*types.AxisMeasurement, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.AxisMeasurement
  if userID == uuid.Nil || axisID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND axis_id = ? AND client_timestamp >= ?", userID, axisID, since).
    Order("client_timestamp DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *measurementRepo) GetLatestForAxis(ctx context.Context, tx *gorm.DB, userID, axisID uuid.UUID) (*types.AxisMeasurement, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.AxisMeasurement
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND axis_id = ?", userID, axisID).
    Order("client_timestamp DESC").
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *measurementRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.AxisMeasurement{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
