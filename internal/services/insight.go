package services

import (
  "context"
  "strings"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type RecordInsightInput struct {
  InsightType string         `json:"insight_type"`
  Title       string         `json:"title"`
  Content     string         `json:"content"`
  PatternData datatypes.JSON `json:"pattern_data"`
}

type InsightService interface {
  Record(ctx context.Context, userID uuid.UUID, input RecordInsightInput) (*types.Insight, error)
  List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Insight, error)
  MarkRead(ctx context.Context, userID, insightID uuid.UUID) error
  Rate(ctx context.Context, userID, insightID uuid.UUID, rating int) error
}

type insightService struct {
  db          *gorm.DB
  log         *logger.Logger
  insightRepo repos.InsightRepo
}

func NewInsightService(db *gorm.DB, log *logger.Logger, insightRepo repos.InsightRepo) InsightService {
  serviceLog := log.With("service", "InsightService")
  return &insightService{db: db, log: serviceLog, insightRepo: insightRepo}
}

func validInsightType(t string) bool {
  switch t {
  case types.InsightDaily, types.InsightWeekly, types.InsightPattern, types.InsightCauseEffect:
    return true
  }
  return false
}

func (s *insightService) Record(ctx context.Context, userID uuid.UUID, input RecordInsightInput) (*types.Insight, error) {
  if !validInsightType(input.InsightType) {
    return nil, apierr.Validation("unknown insight_type %q", input.InsightType)
  }
  title := strings.TrimSpace(input.Title)
  content := strings.TrimSpace(input.Content)
  if title == "" {
    return nil, apierr.Validation("title is required")
  }
  if content == "" {
    return nil, apierr.Validation("content is required")
  }

  return s.insightRepo.Create(ctx, nil, &types.Insight{
    UserID:      userID,
    InsightType: input.InsightType,
    Title:       title,
    Content:     content,
    PatternData: input.PatternData,
  })
}

func (s *insightService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Insight, error) {
  if limit <= 0 {
    limit = 50
  }
  if limit > 200 {
    limit = 200
  }
  return s.insightRepo.GetByUserID(ctx, nil, userID, limit)
}

func (s *insightService) MarkRead(ctx context.Context, userID, insightID uuid.UUID) error {
  return s.insightRepo.MarkRead(ctx, nil, insightID, userID)
}

func (s *insightService) Rate(ctx context.Context, userID, insightID uuid.UUID, rating int) error {
  if rating < 1 || rating > 5 {
    return apierr.Validation("rating %d out of range [1,5]", rating)
  }
  rows, err := s.insightRepo.Rate(ctx, nil, insightID, userID, rating)
  if err != nil {
    return err
  }
  if rows == 0 {
    return apierr.NotFound("insight %s not found", insightID)
  }
  return nil
}
