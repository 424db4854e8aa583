package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

// HighInsightRating is the minimum rating that counts as "highly valuable"
// for the breakthrough badge.
const HighInsightRating = 4

type InsightRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Insight) (*types.Insight, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Insight, error)
  MarkRead(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID) error
  Rate(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID, rating int) (int64, error)
  CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  CountHighRated(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type insightRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
  repoLog := baseLog.With("repo", "InsightRepo")
  return &insightRepo{db: db, log: repoLog}
}

func (r *insightRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Insight) (*types.Insight, error) {
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

func (r *insightRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Insight, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Insight
  if userID == uuid.Nil {
    return results, nil
  }

  q := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *insightRepo) MarkRead(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Insight{}).
    Where("id = ? AND user_id = ?", insightID, userID).
    Update("is_read", true).Error; err != nil {
    return err
  }
  return nil
}

func (r *insightRepo) Rate(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID, rating int) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Insight{}).
    Where("id = ? AND user_id = ?", insightID, userID).
    Update("user_rating", rating)
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (r *insightRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Insight{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *insightRepo) CountHighRated(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Insight{}).
    Where("user_id = ? AND user_rating >= ?", userID, HighInsightRating).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
