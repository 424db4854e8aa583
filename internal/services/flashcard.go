package services

import (
  "context"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/engine"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type CreateFlashcardInput struct {
  Front    string `json:"front"`
  Back     string `json:"back"`
  DeckName string `json:"deck_name"`
}

type UpdateFlashcardInput struct {
  Front    *string `json:"front"`
  Back     *string `json:"back"`
  DeckName *string `json:"deck_name"`
}

type FlashcardService interface {
  Create(ctx context.Context, userID uuid.UUID, input CreateFlashcardInput) (*types.Flashcard, error)
  Get(ctx context.Context, userID, cardID uuid.UUID) (*types.Flashcard, error)
  List(ctx context.Context, userID uuid.UUID, deckName string) ([]*types.Flashcard, error)
  Update(ctx context.Context, userID, cardID uuid.UUID, input UpdateFlashcardInput) (*types.Flashcard, error)
  Delete(ctx context.Context, userID, cardID uuid.UUID) error
  // Review grades one recall attempt and reschedules the card. Scheduling
  // state only changes through this path.
  Review(ctx context.Context, userID, cardID uuid.UUID, quality int) (*types.Flashcard, error)
  Due(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Flashcard, error)
  Stats(ctx context.Context, userID uuid.UUID) (*repos.FlashcardStats, error)
}

type flashcardService struct {
  db       *gorm.DB
  log      *logger.Logger
  clock    Clock
  cardRepo repos.FlashcardRepo
}

func NewFlashcardService(db *gorm.DB, log *logger.Logger, clock Clock, cardRepo repos.FlashcardRepo) FlashcardService {
  serviceLog := log.With("service", "FlashcardService")
  return &flashcardService{
    db:       db,
    log:      serviceLog,
    clock:    clock,
    cardRepo: cardRepo,
  }
}

func (s *flashcardService) Create(ctx context.Context, userID uuid.UUID, input CreateFlashcardInput) (*types.Flashcard, error) {
  front := strings.TrimSpace(input.Front)
  back := strings.TrimSpace(input.Back)
  if front == "" {
    return nil, apierr.Validation("front is required")
  }
  if back == "" {
    return nil, apierr.Validation("back is required")
  }

  card := &types.Flashcard{
    UserID:     userID,
    Front:      front,
    Back:       back,
    DeckName:   strings.TrimSpace(input.DeckName),
    EaseFactor: 2.5,
  }
  if _, err := s.cardRepo.Create(ctx, nil, []*types.Flashcard{card}); err != nil {
    return nil, err
  }
  return card, nil
}

func (s *flashcardService) Get(ctx context.Context, userID, cardID uuid.UUID) (*types.Flashcard, error) {
  card, err := s.cardRepo.GetByIDForUser(ctx, nil, cardID, userID)
  if err != nil {
    return nil, err
  }
  if card == nil {
    return nil, apierr.NotFound("flashcard %s not found", cardID)
  }
  return card, nil
}

func (s *flashcardService) List(ctx context.Context, userID uuid.UUID, deckName string) ([]*types.Flashcard, error) {
  return s.cardRepo.GetByUserID(ctx, nil, userID, deckName)
}

func (s *flashcardService) Update(ctx context.Context, userID, cardID uuid.UUID, input UpdateFlashcardInput) (*types.Flashcard, error) {
  updates := map[string]interface{}{}
  if input.Front != nil {
    front := strings.TrimSpace(*input.Front)
    if front == "" {
      return nil, apierr.Validation("front cannot be empty")
    }
    updates["front"] = front
  }
  if input.Back != nil {
    back := strings.TrimSpace(*input.Back)
    if back == "" {
      return nil, apierr.Validation("back cannot be empty")
    }
    updates["back"] = back
  }
  if input.DeckName != nil {
    updates["deck_name"] = strings.TrimSpace(*input.DeckName)
  }

  card, err := s.cardRepo.GetByIDForUser(ctx, nil, cardID, userID)
  if err != nil {
    return nil, err
  }
  if card == nil {
    return nil, apierr.NotFound("flashcard %s not found", cardID)
  }

  // Content edits never touch scheduling columns.
  if len(updates) > 0 {
    if err := s.cardRepo.Update(ctx, nil, cardID, userID, updates); err != nil {
      return nil, err
    }
    card, err = s.cardRepo.GetByIDForUser(ctx, nil, cardID, userID)
    if err != nil {
      return nil, err
    }
  }
  return card, nil
}

func (s *flashcardService) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
  card, err := s.cardRepo.GetByIDForUser(ctx, nil, cardID, userID)
  if err != nil {
    return err
  }
  if card == nil {
    return apierr.NotFound("flashcard %s not found", cardID)
  }
  return s.cardRepo.DeleteByIDForUser(ctx, nil, cardID, userID)
}

func (s *flashcardService) Review(ctx context.Context, userID, cardID uuid.UUID, quality int) (*types.Flashcard, error) {
  if quality < 0 || quality > 5 {
    return nil, apierr.Validation("quality %d out of range [0,5]", quality)
  }

  card, err := s.cardRepo.GetByIDForUser(ctx, nil, cardID, userID)
  if err != nil {
    return nil, err
  }
  if card == nil {
    return nil, apierr.NotFound("flashcard %s not found", cardID)
  }

  update := engine.ScheduleSM2(quality, card.EaseFactor, card.Repetitions, card.IntervalDays)
  now := s.clock.Now()
  nextDue := now.AddDate(0, 0, update.IntervalDays)

  if err := s.cardRepo.Update(ctx, nil, cardID, userID, map[string]interface{}{
    "ease_factor":      update.EaseFactor,
    "repetitions":      update.Repetitions,
    "interval_days":    update.IntervalDays,
    "last_reviewed_at": now,
    "next_due_at":      nextDue,
  }); err != nil {
    return nil, err
  }

  card.EaseFactor = update.EaseFactor
  card.Repetitions = update.Repetitions
  card.IntervalDays = update.IntervalDays
  card.LastReviewedAt = &now
  card.NextDueAt = &nextDue
  return card, nil
}

func (s *flashcardService) Due(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Flashcard, error) {
  if limit <= 0 {
    limit = 20
  }
  if limit > 100 {
    limit = 100
  }
  return s.cardRepo.GetDue(ctx, nil, userID, s.clock.Now(), limit)
}

func (s *flashcardService) Stats(ctx context.Context, userID uuid.UUID) (*repos.FlashcardStats, error) {
  return s.cardRepo.Stats(ctx, nil, userID, s.clock.Now())
}
