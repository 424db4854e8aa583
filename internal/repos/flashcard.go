package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type FlashcardStats struct {
  TotalCards    int64   `json:"total_cards"`
  DueCount      int64   `json:"due_count"`
  AvgEaseFactor float64 `json:"avg_ease_factor"`
}

type FlashcardRepo interface {
  Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error)
  GetByIDForUser(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID) (*types.Flashcard, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, deckName string) ([]*types.Flashcard, error)
  Update(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID, updates map[string]interface{}) error
  DeleteByIDForUser(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID) error
  GetDue(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*types.Flashcard, error)
  Stats(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (*FlashcardStats, error)
}

type flashcardRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFlashcardRepo(db *gorm.DB, baseLog *logger.Logger) FlashcardRepo {
  repoLog := baseLog.With("repo", "FlashcardRepo")
  return &flashcardRepo{db: db, log: repoLog}
}

func (r *flashcardRepo) Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(cards) == 0 {
    return []*types.Flashcard{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&cards).Error; err != nil {
    return nil, err
  }
  return cards, nil
}

func (r *flashcardRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID) (*types.Flashcard, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Flashcard
  err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", cardID, userID).
    First(&result).Error
  if err == gorm.ErrRecordNotFound {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *flashcardRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, deckName string) ([]*types.Flashcard, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Flashcard
  if userID == uuid.Nil {
    return results, nil
  }

  q := transaction.WithContext(ctx).Where("user_id = ?", userID)
  if deckName != "" {
    q = q.Where("deck_name = ?", deckName)
  }
  if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *flashcardRepo) Update(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(updates) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.Flashcard{}).
    Where("id = ? AND user_id = ?", cardID, userID).
    Updates(updates).Error; err != nil {
    return err
  }
  return nil
}

func (r *flashcardRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", cardID, userID).
    Delete(&types.Flashcard{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *flashcardRepo) GetDue(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*types.Flashcard, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Flashcard
  if userID == uuid.Nil {
    return results, nil
  }

  // Unreviewed cards (next_due_at IS NULL) are always due.
  q := transaction.WithContext(ctx).
    Where("user_id = ? AND (next_due_at IS NULL OR next_due_at <= ?)", userID, now).
    Order("next_due_at ASC NULLS FIRST")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *flashcardRepo) Stats(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (*FlashcardStats, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  stats := &FlashcardStats{}
  if err := transaction.WithContext(ctx).
    Model(&types.Flashcard{}).
    Where("user_id = ?", userID).
    Count(&stats.TotalCards).Error; err != nil {
    return nil, err
  }
  if err := transaction.WithContext(ctx).
    Model(&types.Flashcard{}).
    Where("user_id = ? AND (next_due_at IS NULL OR next_due_at <= ?)", userID, now).
    Count(&stats.DueCount).Error; err != nil {
    return nil, err
  }
  if stats.TotalCards > 0 {
    if err := transaction.WithContext(ctx).
      Model(&types.Flashcard{}).
      Where("user_id = ?", userID).
      Select("COALESCE(AVG(ease_factor), 0)").
      Scan(&stats.AvgEaseFactor).Error; err != nil {
      return nil, err
    }
  }
  return stats, nil
}
