package services

import (
  "context"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

type CreateAxisInput struct {
  LeftLabel   string `json:"left_label"`
  RightLabel  string `json:"right_label"`
  ContextTag  string `json:"context_tag"`
  Description string `json:"description"`
  Color       string `json:"color"`
}

type UpdateAxisInput struct {
  LeftLabel   *string `json:"left_label"`
  RightLabel  *string `json:"right_label"`
  ContextTag  *string `json:"context_tag"`
  Description *string `json:"description"`
  Color       *string `json:"color"`
}

type RecordMeasurementInput struct {
  Value           int            `json:"value"`
  Phase           string         `json:"phase"`
  Note            string         `json:"note"`
  Metadata        datatypes.JSON `json:"metadata"`
  ClientTimestamp *time.Time     `json:"client_timestamp"`
}

type AxisService interface {
  Create(ctx context.Context, userID uuid.UUID, input CreateAxisInput) (*types.EmotionalAxis, error)
  Update(ctx context.Context, userID, axisID uuid.UUID, input UpdateAxisInput) (*types.EmotionalAxis, error)
  Deactivate(ctx context.Context, userID, axisID uuid.UUID) error
  ListActive(ctx context.Context, userID uuid.UUID) ([]*types.EmotionalAxis, error)
  // Reorder assigns display_order by position in axisIDs. Every active
  // axis must appear exactly once.
  Reorder(ctx context.Context, userID uuid.UUID, axisIDs []uuid.UUID) error
  // RecordMeasurement appends one ad-hoc sample outside the daily cycle.
  RecordMeasurement(ctx context.Context, userID, axisID uuid.UUID, input RecordMeasurementInput) (*types.AxisMeasurement, error)
  History(ctx context.Context, userID, axisID uuid.UUID, days int) ([]*types.AxisMeasurement, error)
  Latest(ctx context.Context, userID, axisID uuid.UUID) (*types.AxisMeasurement, error)
}

type axisService struct {
  db              *gorm.DB
  log             *logger.Logger
  clock           Clock
  axisRepo        repos.AxisRepo
  measurementRepo repos.MeasurementRepo
}

func NewAxisService(db *gorm.DB, log *logger.Logger, clock Clock, axisRepo repos.AxisRepo, measurementRepo repos.MeasurementRepo) AxisService {
  serviceLog := log.With("service", "AxisService")
  return &axisService{
    db:              db,
    log:             serviceLog,
    clock:           clock,
    axisRepo:        axisRepo,
    measurementRepo: measurementRepo,
  }
}

func (s *axisService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
  if s.db == nil {
    return fn(nil)
  }
  return s.db.WithContext(ctx).Transaction(fn)
}

func validPhase(phase string) bool {
  switch phase {
  case types.PhaseMorning, types.PhaseMidday, types.PhaseEvening, types.PhaseManual:
    return true
  }
  return false
}

func (s *axisService) Create(ctx context.Context, userID uuid.UUID, input CreateAxisInput) (*types.EmotionalAxis, error) {
  left := strings.TrimSpace(input.LeftLabel)
  right := strings.TrimSpace(input.RightLabel)
  if left == "" {
    return nil, apierr.Validation("left_label is required")
  }
  if right == "" {
    return nil, apierr.Validation("right_label is required")
  }

  existing, err := s.axisRepo.GetActiveByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }

  axis := &types.EmotionalAxis{
    UserID:       userID,
    LeftLabel:    left,
    RightLabel:   right,
    ContextTag:   strings.TrimSpace(input.ContextTag),
    Description:  strings.TrimSpace(input.Description),
    Color:        strings.TrimSpace(input.Color),
    DisplayOrder: len(existing),
    IsActive:     true,
  }
  if _, err := s.axisRepo.Create(ctx, nil, []*types.EmotionalAxis{axis}); err != nil {
    return nil, err
  }
  return axis, nil
}

func (s *axisService) Update(ctx context.Context, userID, axisID uuid.UUID, input UpdateAxisInput) (*types.EmotionalAxis, error) {
  axis, err := s.axisRepo.GetByIDForUser(ctx, nil, axisID, userID)
  if err != nil {
    return nil, err
  }
  if axis == nil {
    return nil, apierr.NotFound("axis %s not found", axisID)
  }

  updates := map[string]interface{}{}
  if input.LeftLabel != nil {
    left := strings.TrimSpace(*input.LeftLabel)
    if left == "" {
      return nil, apierr.Validation("left_label cannot be empty")
    }
    updates["left_label"] = left
  }
  if input.RightLabel != nil {
    right := strings.TrimSpace(*input.RightLabel)
    if right == "" {
      return nil, apierr.Validation("right_label cannot be empty")
    }
    updates["right_label"] = right
  }
  if input.ContextTag != nil {
    updates["context_tag"] = strings.TrimSpace(*input.ContextTag)
  }
  if input.Description != nil {
    updates["description"] = strings.TrimSpace(*input.Description)
  }
  if input.Color != nil {
    updates["color"] = strings.TrimSpace(*input.Color)
  }

  if len(updates) > 0 {
    if err := s.axisRepo.Update(ctx, nil, axisID, userID, updates); err != nil {
      return nil, err
    }
    axis, err = s.axisRepo.GetByIDForUser(ctx, nil, axisID, userID)
    if err != nil {
      return nil, err
    }
  }
  return axis, nil
}

func (s *axisService) Deactivate(ctx context.Context, userID, axisID uuid.UUID) error {
  axis, err := s.axisRepo.GetByIDForUser(ctx, nil, axisID, userID)
  if err != nil {
    return err
  }
  if axis == nil {
    return apierr.NotFound("axis %s not found", axisID)
  }
  return s.axisRepo.Deactivate(ctx, nil, axisID, userID)
}

func (s *axisService) ListActive(ctx context.Context, userID uuid.UUID) ([]*types.EmotionalAxis, error) {
  return s.axisRepo.GetActiveByUserID(ctx, nil, userID)
}

func (s *axisService) Reorder(ctx context.Context, userID uuid.UUID, axisIDs []uuid.UUID) error {
  active, err := s.axisRepo.GetActiveByUserID(ctx, nil, userID)
  if err != nil {
    return err
  }
  if len(axisIDs) != len(active) {
    return apierr.Validation("reorder must list all %d active axes", len(active))
  }

  activeSet := make(map[uuid.UUID]bool, len(active))
  for _, axis := range active {
    activeSet[axis.ID] = true
  }
  seen := make(map[uuid.UUID]bool, len(axisIDs))
  for _, id := range axisIDs {
    if !activeSet[id] {
      return apierr.Validation("axis %s is not an active axis", id)
    }
    if seen[id] {
      return apierr.Validation("axis %s listed twice", id)
    }
    seen[id] = true
  }

  return s.inTx(ctx, func(tx *gorm.DB) error {
    for position, id := range axisIDs {
      if err := s.axisRepo.SetDisplayOrder(ctx, tx, id, userID, position); err != nil {
        return err
      }
    }
    return nil
  })
}

func (s *axisService) RecordMeasurement(ctx context.Context, userID, axisID uuid.UUID, input RecordMeasurementInput) (*types.AxisMeasurement, error) {
  if input.Value < 0 || input.Value > 100 {
    return nil, apierr.Validation("value %d out of range [0,100]", input.Value)
  }
  phase := input.Phase
  if phase == "" {
    phase = types.PhaseManual
  }
  if !validPhase(phase) {
    return nil, apierr.Validation("unknown phase %q", phase)
  }

  axis, err := s.axisRepo.GetByIDForUser(ctx, nil, axisID, userID)
  if err != nil {
    return nil, err
  }
  if axis == nil {
    return nil, apierr.NotFound("axis %s not found", axisID)
  }
  if !axis.IsActive {
    return nil, apierr.Precondition("axis %s is deactivated", axisID)
  }

  ts := s.clock.Now()
  if input.ClientTimestamp != nil {
    ts = *input.ClientTimestamp
  }

  row := &types.AxisMeasurement{
    UserID:          userID,
    AxisID:          axisID,
    Value:           input.Value,
    Phase:           phase,
    Note:            strings.TrimSpace(input.Note),
    Metadata:        input.Metadata,
    ClientTimestamp: ts,
  }
  if _, err := s.measurementRepo.Create(ctx, nil, []*types.AxisMeasurement{row}); err != nil {
    return nil, err
  }
  return row, nil
}

func (s *axisService) History(ctx context.Context, userID, axisID uuid.UUID, days int) ([]*types.AxisMeasurement, error) {
  if days <= 0 {
    days = 30
  }
  if days > 365 {
    days = 365
  }
  since := s.clock.Now().AddDate(0, 0, -days)
  return s.measurementRepo.GetByUserAxisSince(ctx, nil, userID, axisID, since)
}

func (s *axisService) Latest(ctx context.Context, userID, axisID uuid.UUID) (*types.AxisMeasurement, error) {
  return s.measurementRepo.GetLatestForAxis(ctx, nil, userID, axisID)
}
