package services

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/engine"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
)

// DestinyScoreResult reports the banded score. Calibrated distinguishes a
// genuine zero score from "no measurements yet".
type DestinyScoreResult struct {
  Score      int    `json:"score"`
  Level      string `json:"level"`
  Calibrated bool   `json:"calibrated"`
}

type StatsService interface {
  GetCurrentStreak(ctx context.Context, userID uuid.UUID) (int, error)
  GetDestinyScore(ctx context.Context, userID uuid.UUID) (*DestinyScoreResult, error)
  GetAxisStreak(ctx context.Context, userID, axisID uuid.UUID) (int, error)
}

type statsService struct {
  db              *gorm.DB
  log             *logger.Logger
  clock           Clock
  cycleRepo       repos.DailyCycleRepo
  axisRepo        repos.AxisRepo
  measurementRepo repos.MeasurementRepo
}

func NewStatsService(db *gorm.DB, log *logger.Logger, clock Clock, cycleRepo repos.DailyCycleRepo, axisRepo repos.AxisRepo, measurementRepo repos.MeasurementRepo) StatsService {
  serviceLog := log.With("service", "StatsService")
  return &statsService{
    db:              db,
    log:             serviceLog,
    clock:           clock,
    cycleRepo:       cycleRepo,
    axisRepo:        axisRepo,
    measurementRepo: measurementRepo,
  }
}

// Every read recomputes from source-of-truth history; there are no stored
// counters to drift.

func (s *statsService) GetCurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
  cycles, err := s.cycleRepo.GetRecentByUserID(ctx, nil, userID, 0)
  if err != nil {
    return 0, err
  }
  return engine.CycleStreak(cycles, s.clock.Now()), nil
}

func (s *statsService) GetDestinyScore(ctx context.Context, userID uuid.UUID) (*DestinyScoreResult, error) {
  axes, err := s.axisRepo.GetActiveByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }

  values := make([]int, 0, len(axes))
  for _, axis := range axes {
    latest, err := s.measurementRepo.GetLatestForAxis(ctx, nil, userID, axis.ID)
    if err != nil {
      return nil, err
    }
    if latest != nil {
      values = append(values, latest.Value)
    }
  }

  score, calibrated := engine.DestinyScore(values)
  result := &DestinyScoreResult{Score: score, Calibrated: calibrated}
  if calibrated {
    result.Level = engine.LevelForScore(score)
  }
  return result, nil
}

func (s *statsService) GetAxisStreak(ctx context.Context, userID, axisID uuid.UUID) (int, error) {
  since := s.clock.Now().AddDate(0, 0, -90)
  measurements, err := s.measurementRepo.GetByUserAxisSince(ctx, nil, userID, axisID, since)
  if err != nil {
    return 0, err
  }
  return engine.AxisValueStreak(measurements, engine.AxisStreakThreshold), nil
}
