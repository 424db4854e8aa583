package services

import (
  "context"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

// AxisCalibration is one (axis, value) pair submitted with the morning
// calibration.
type AxisCalibration struct {
  AxisID uuid.UUID `json:"axis_id"`
  Value  int       `json:"value"`
}

type CycleService interface {
  // StartMorning opens (or re-stamps) today's cycle and appends the given
  // calibrations atomically. Creating the cycle is idempotent per (user,
  // calendar date); repeated calls re-stamp morningCompletedAt and append
  // more measurements.
  StartMorning(ctx context.Context, userID uuid.UUID, calibrations []AxisCalibration) (*types.DailyCycle, error)
  CompleteMidday(ctx context.Context, userID uuid.UUID, intendedAction, decisivePrompt string) error
  CompleteEvening(ctx context.Context, userID uuid.UUID, actionTaken, observedEffect, reflection string) error
  GetToday(ctx context.Context, userID uuid.UUID) (*types.DailyCycle, error)
  GetHistory(ctx context.Context, userID uuid.UUID, days int) ([]*types.DailyCycle, error)
}

type cycleService struct {
  db              *gorm.DB
  log             *logger.Logger
  clock           Clock
  cycleRepo       repos.DailyCycleRepo
  measurementRepo repos.MeasurementRepo
}

func NewCycleService(db *gorm.DB, log *logger.Logger, clock Clock, cycleRepo repos.DailyCycleRepo, measurementRepo repos.MeasurementRepo) CycleService {
  serviceLog := log.With("service", "CycleService")
  return &cycleService{
    db:              db,
    log:             serviceLog,
    clock:           clock,
    cycleRepo:       cycleRepo,
    measurementRepo: measurementRepo,
  }
}

// inTx runs fn inside a transaction. A nil db (unit tests with fake repos)
// runs the unit of work directly.
func (s *cycleService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
  if s.db == nil {
    return fn(nil)
  }
  return s.db.WithContext(ctx).Transaction(fn)
}

func (s *cycleService) StartMorning(ctx context.Context, userID uuid.UUID, calibrations []AxisCalibration) (*types.DailyCycle, error) {
  // Validate everything up front: one bad value rejects the whole call
  // with no partial measurement writes.
  for _, cal := range calibrations {
    if cal.AxisID == uuid.Nil {
      return nil, apierr.Validation("calibration axis_id is required")
    }
    if cal.Value < 0 || cal.Value > 100 {
      return nil, apierr.Validation("calibration value %d out of range [0,100]", cal.Value)
    }
  }

  now := s.clock.Now()
  today := now.Format(types.CycleDateLayout)

  var out *types.DailyCycle
  err := s.inTx(ctx, func(tx *gorm.DB) error {
    // A concurrent duplicate submission loses the insert race and falls
    // through to the update path; both calls succeed.
    if err := s.cycleRepo.CreateIfAbsent(ctx, tx, &types.DailyCycle{
      UserID:             userID,
      CycleDate:          today,
      MorningCompletedAt: &now,
    }); err != nil {
      return err
    }

    cycle, err := s.cycleRepo.GetByUserAndDate(ctx, tx, userID, today)
    if err != nil {
      return err
    }
    if cycle == nil {
      return apierr.New(500, apierr.CodeInternal, nil)
    }

    if err := s.cycleRepo.Update(ctx, tx, cycle.ID, userID, map[string]interface{}{
      "morning_completed_at": now,
    }); err != nil {
      return err
    }
    cycle.MorningCompletedAt = &now

    rows := make([]*types.AxisMeasurement, 0, len(calibrations))
    for _, cal := range calibrations {
      rows = append(rows, &types.AxisMeasurement{
        UserID:          userID,
        AxisID:          cal.AxisID,
        DailyCycleID:    &cycle.ID,
        Value:           cal.Value,
        Phase:           types.PhaseMorning,
        ClientTimestamp: now,
      })
    }
    if _, err := s.measurementRepo.Create(ctx, tx, rows); err != nil {
      return err
    }

    out = cycle
    return nil
  })
  if err != nil {
    return nil, err
  }
  return out, nil
}

func (s *cycleService) CompleteMidday(ctx context.Context, userID uuid.UUID, intendedAction, decisivePrompt string) error {
  intendedAction = strings.TrimSpace(intendedAction)
  if intendedAction == "" {
    return apierr.Validation("intended_action is required")
  }

  now := s.clock.Now()
  today := now.Format(types.CycleDateLayout)

  return s.inTx(ctx, func(tx *gorm.DB) error {
    cycle, err := s.cycleRepo.GetByUserAndDate(ctx, tx, userID, today)
    if err != nil {
      return err
    }
    if cycle == nil {
      return apierr.Precondition("no cycle found for today, complete morning calibration first")
    }

    // Re-invocation overwrites the intended action and timestamp;
    // transitions only move forward, never back.
    return s.cycleRepo.Update(ctx, tx, cycle.ID, userID, map[string]interface{}{
      "decisive_prompt":     decisivePrompt,
      "intended_action":     intendedAction,
      "midday_completed_at": now,
    })
  })
}

func (s *cycleService) CompleteEvening(ctx context.Context, userID uuid.UUID, actionTaken, observedEffect, reflection string) error {
  actionTaken = strings.TrimSpace(actionTaken)
  observedEffect = strings.TrimSpace(observedEffect)
  if actionTaken == "" {
    return apierr.Validation("action_taken is required")
  }
  if observedEffect == "" {
    return apierr.Validation("observed_effect is required")
  }

  now := s.clock.Now()
  today := now.Format(types.CycleDateLayout)

  return s.inTx(ctx, func(tx *gorm.DB) error {
    cycle, err := s.cycleRepo.GetByUserAndDate(ctx, tx, userID, today)
    if err != nil {
      return err
    }
    if cycle == nil {
      return apierr.Precondition("no cycle found for today, complete morning calibration first")
    }

    // Evening submission marks the cycle complete whether or not midday
    // was stamped; completion means "the day was closed out".
    return s.cycleRepo.Update(ctx, tx, cycle.ID, userID, map[string]interface{}{
      "action_taken":         actionTaken,
      "observed_effect":      observedEffect,
      "reflection":           reflection,
      "evening_completed_at": now,
      "is_complete":          true,
    })
  })
}

func (s *cycleService) GetToday(ctx context.Context, userID uuid.UUID) (*types.DailyCycle, error) {
  today := s.clock.Now().Format(types.CycleDateLayout)
  return s.cycleRepo.GetByUserAndDate(ctx, nil, userID, today)
}

func (s *cycleService) GetHistory(ctx context.Context, userID uuid.UUID, days int) ([]*types.DailyCycle, error) {
  if days <= 0 {
    days = 7
  }
  if days > 90 {
    days = 90
  }
  return s.cycleRepo.GetRecentByUserID(ctx, nil, userID, days)
}
