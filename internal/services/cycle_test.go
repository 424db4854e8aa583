package services

import (
  "context"
  "testing"
  "github.com/google/uuid"
  "github.com/praxislabs/praxis-backend/internal/apierr"
  "github.com/praxislabs/praxis-backend/internal/types"
)

func newCycleFixture() (CycleService, *fakeCycleRepo, *fakeMeasurementRepo, *fakeClock) {
  clock := &fakeClock{now: testNow}
  cycleRepo := &fakeCycleRepo{}
  measurementRepo := &fakeMeasurementRepo{}
  svc := NewCycleService(nil, testLogger(), clock, cycleRepo, measurementRepo)
  return svc, cycleRepo, measurementRepo, clock
}

func TestStartMorningCreatesCycleAndMeasurements(t *testing.T) {
  svc, cycleRepo, measurementRepo, _ := newCycleFixture()
  userID := uuid.New()
  axisA := uuid.New()
  axisB := uuid.New()

  cycle, err := svc.StartMorning(context.Background(), userID, []AxisCalibration{
    {AxisID: axisA, Value: 70},
    {AxisID: axisB, Value: 45},
  })
  if err != nil {
    t.Fatalf("StartMorning: %v", err)
  }
  if cycle.CycleDate != "2025-12-20" {
    t.Errorf("cycle_date = %q, want 2025-12-20", cycle.CycleDate)
  }
  if cycle.MorningCompletedAt == nil {
    t.Error("morning_completed_at not stamped")
  }
  if got := cycle.Phase(); got != types.CycleMorning {
    t.Errorf("phase = %q, want %q", got, types.CycleMorning)
  }
  if len(cycleRepo.cycles) != 1 {
    t.Fatalf("cycles stored = %d, want 1", len(cycleRepo.cycles))
  }
  if len(measurementRepo.rows) != 2 {
    t.Fatalf("measurements stored = %d, want 2", len(measurementRepo.rows))
  }
  for _, row := range measurementRepo.rows {
    if row.Phase != types.PhaseMorning {
      t.Errorf("measurement phase = %q, want morning", row.Phase)
    }
    if row.DailyCycleID == nil || *row.DailyCycleID != cycle.ID {
      t.Error("measurement not linked to cycle")
    }
  }
}

func TestStartMorningRejectsOutOfRangeValue(t *testing.T) {
  svc, cycleRepo, measurementRepo, _ := newCycleFixture()
  userID := uuid.New()

  _, err := svc.StartMorning(context.Background(), userID, []AxisCalibration{
    {AxisID: uuid.New(), Value: 50},
    {AxisID: uuid.New(), Value: 101},
  })
  if !apierr.IsCode(err, apierr.CodeValidation) {
    t.Fatalf("err = %v, want validation_error", err)
  }
  // One bad value rejects the whole submission.
  if len(cycleRepo.cycles) != 0 {
    t.Error("cycle created despite validation failure")
  }
  if len(measurementRepo.rows) != 0 {
    t.Error("measurements written despite validation failure")
  }
}

func TestStartMorningSameDayIsIdempotent(t *testing.T) {
  svc, cycleRepo, measurementRepo, _ := newCycleFixture()
  userID := uuid.New()
  axisID := uuid.New()

  first, err := svc.StartMorning(context.Background(), userID, []AxisCalibration{{AxisID: axisID, Value: 60}})
  if err != nil {
    t.Fatalf("first StartMorning: %v", err)
  }
  second, err := svc.StartMorning(context.Background(), userID, []AxisCalibration{{AxisID: axisID, Value: 65}})
  if err != nil {
    t.Fatalf("second StartMorning: %v", err)
  }
  if first.ID != second.ID {
    t.Error("second call created a new cycle for the same day")
  }
  if len(cycleRepo.cycles) != 1 {
    t.Errorf("cycles stored = %d, want 1", len(cycleRepo.cycles))
  }
  // Measurements append; they are history, not state.
  if len(measurementRepo.rows) != 2 {
    t.Errorf("measurements stored = %d, want 2", len(measurementRepo.rows))
  }
}

func TestCompleteMiddayRequiresMorning(t *testing.T) {
  svc, _, _, _ := newCycleFixture()

  err := svc.CompleteMidday(context.Background(), uuid.New(), "ship the draft", "what would the brave version do?")
  if !apierr.IsCode(err, apierr.CodePrecondition) {
    t.Fatalf("err = %v, want precondition_failed", err)
  }
}

func TestCompleteMiddayOverwritesOnRepeat(t *testing.T) {
  svc, cycleRepo, _, _ := newCycleFixture()
  userID := uuid.New()

  if _, err := svc.StartMorning(context.Background(), userID, nil); err != nil {
    t.Fatalf("StartMorning: %v", err)
  }
  if err := svc.CompleteMidday(context.Background(), userID, "first intention", ""); err != nil {
    t.Fatalf("first CompleteMidday: %v", err)
  }
  if err := svc.CompleteMidday(context.Background(), userID, "revised intention", "prompt"); err != nil {
    t.Fatalf("second CompleteMidday: %v", err)
  }

  cycle := cycleRepo.cycles[0]
  if cycle.IntendedAction != "revised intention" {
    t.Errorf("intended_action = %q, want the later submission", cycle.IntendedAction)
  }
  if cycle.Phase() != types.CycleMidday {
    t.Errorf("phase = %q, want %q", cycle.Phase(), types.CycleMidday)
  }
}

func TestCompleteEveningWithoutMiddayStillCompletes(t *testing.T) {
  svc, cycleRepo, _, _ := newCycleFixture()
  userID := uuid.New()

  if _, err := svc.StartMorning(context.Background(), userID, nil); err != nil {
    t.Fatalf("StartMorning: %v", err)
  }
  if err := svc.CompleteEvening(context.Background(), userID, "spoke up in the meeting", "felt lighter after", ""); err != nil {
    t.Fatalf("CompleteEvening: %v", err)
  }

  cycle := cycleRepo.cycles[0]
  if !cycle.IsComplete {
    t.Error("cycle not marked complete")
  }
  if cycle.MiddayCompletedAt != nil {
    t.Error("midday stamped without a midday submission")
  }
  if cycle.Phase() != types.CycleComplete {
    t.Errorf("phase = %q, want %q", cycle.Phase(), types.CycleComplete)
  }
}

func TestCompleteEveningRequiresFields(t *testing.T) {
  svc, _, _, _ := newCycleFixture()
  userID := uuid.New()

  if _, err := svc.StartMorning(context.Background(), userID, nil); err != nil {
    t.Fatalf("StartMorning: %v", err)
  }

  if err := svc.CompleteEvening(context.Background(), userID, "", "an effect", ""); !apierr.IsCode(err, apierr.CodeValidation) {
    t.Errorf("missing action_taken: err = %v, want validation_error", err)
  }
  if err := svc.CompleteEvening(context.Background(), userID, "an action", "  ", ""); !apierr.IsCode(err, apierr.CodeValidation) {
    t.Errorf("missing observed_effect: err = %v, want validation_error", err)
  }
}

func TestGetTodayReturnsNilBeforeStart(t *testing.T) {
  svc, _, _, _ := newCycleFixture()

  cycle, err := svc.GetToday(context.Background(), uuid.New())
  if err != nil {
    t.Fatalf("GetToday: %v", err)
  }
  if cycle != nil {
    t.Errorf("cycle = %+v, want nil", cycle)
  }
}

func TestNextDayGetsFreshCycle(t *testing.T) {
  svc, cycleRepo, _, clock := newCycleFixture()
  userID := uuid.New()

  if _, err := svc.StartMorning(context.Background(), userID, nil); err != nil {
    t.Fatalf("day 1 StartMorning: %v", err)
  }
  clock.advanceDays(1)
  second, err := svc.StartMorning(context.Background(), userID, nil)
  if err != nil {
    t.Fatalf("day 2 StartMorning: %v", err)
  }
  if second.CycleDate != "2025-12-21" {
    t.Errorf("cycle_date = %q, want 2025-12-21", second.CycleDate)
  }
  if len(cycleRepo.cycles) != 2 {
    t.Errorf("cycles stored = %d, want 2", len(cycleRepo.cycles))
  }
}
