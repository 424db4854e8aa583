package services

import (
  "context"
  "sort"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

// In-memory repo fakes. Services are constructed with a nil *gorm.DB so
// inTx runs the unit of work directly against these.

var testNow = time.Date(2025, 12, 20, 15, 0, 0, 0, time.UTC)

type fakeClock struct {
  now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advanceDays(days int) { c.now = c.now.AddDate(0, 0, days) }

func testLogger() *logger.Logger {
  log, _ := logger.New("test")
  return log
}

type fakeCycleRepo struct {
  cycles []*types.DailyCycle
  err    error
}

func (f *fakeCycleRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, cycleDate string) (*types.DailyCycle, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, c := range f.cycles {
    if c.UserID == userID && c.CycleDate == cycleDate {
      return c, nil
    }
  }
  return nil, nil
}

func (f *fakeCycleRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, cycle *types.DailyCycle) error {
  if f.err != nil {
    return f.err
  }
  for _, c := range f.cycles {
    if c.UserID == cycle.UserID && c.CycleDate == cycle.CycleDate {
      return nil
    }
  }
  cycle.ID = uuid.New()
  f.cycles = append(f.cycles, cycle)
  return nil
}

func (f *fakeCycleRepo) Update(ctx context.Context, tx *gorm.DB, cycleID, userID uuid.UUID, updates map[string]interface{}) error {
  if f.err != nil {
    return f.err
  }
  for _, c := range f.cycles {
    if c.ID != cycleID || c.UserID != userID {
      continue
    }
    for key, value := range updates {
      switch key {
      case "morning_completed_at":
        t := value.(time.Time)
        c.MorningCompletedAt = &t
      case "decisive_prompt":
        c.DecisivePrompt = value.(string)
      case "intended_action":
        c.IntendedAction = value.(string)
      case "midday_completed_at":
        t := value.(time.Time)
        c.MiddayCompletedAt = &t
      case "action_taken":
        c.ActionTaken = value.(string)
      case "observed_effect":
        c.ObservedEffect = value.(string)
      case "reflection":
        c.Reflection = value.(string)
      case "evening_completed_at":
        t := value.(time.Time)
        c.EveningCompletedAt = &t
      case "is_complete":
        c.IsComplete = value.(bool)
      }
    }
  }
  return nil
}

func (f *fakeCycleRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyCycle, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.DailyCycle
  for _, c := range f.cycles {
    if c.UserID == userID {
      out = append(out, c)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].CycleDate > out[j].CycleDate })
  if limit > 0 && len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

func (f *fakeCycleRepo) GetByUserInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startDate, endDate string) ([]*types.DailyCycle, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.DailyCycle
  for _, c := range f.cycles {
    if c.UserID == userID && c.CycleDate >= startDate && c.CycleDate <= endDate {
      out = append(out, c)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].CycleDate > out[j].CycleDate })
  return out, nil
}

type fakeMeasurementRepo struct {
  rows []*types.AxisMeasurement
  err  error
}

func (f *fakeMeasurementRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AxisMeasurement) ([]*types.AxisMeasurement, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, row := range rows {
    row.ID = uuid.New()
    f.rows = append(f.rows, row)
  }
  return rows, nil
}

func (f *fakeMeasurementRepo) GetByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.AxisMeasurement, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.AxisMeasurement
  for _, row := range f.rows {
    if row.UserID == userID && !row.ClientTimestamp.Before(since) {
      out = append(out, row)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].ClientTimestamp.After(out[j].ClientTimestamp) })
  return out, nil
}

func (f *fakeMeasurementRepo) GetByUserAxisSince(ctx context.Context, tx *gorm.DB, userID, axisID uuid.UUID, since time.Time) ([]*types.AxisMeasurement, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.AxisMeasurement
  for _, row := range f.rows {
    if row.UserID == userID && row.AxisID == axisID && !row.ClientTimestamp.Before(since) {
      out = append(out, row)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].ClientTimestamp.After(out[j].ClientTimestamp) })
  return out, nil
}

func (f *fakeMeasurementRepo) GetLatestForAxis(ctx context.Context, tx *gorm.DB, userID, axisID uuid.UUID) (*types.AxisMeasurement, error) {
  if f.err != nil {
    return nil, f.err
  }
  var latest *types.AxisMeasurement
  for _, row := range f.rows {
    if row.UserID != userID || row.AxisID != axisID {
      continue
    }
    if latest == nil || row.ClientTimestamp.After(latest.ClientTimestamp) {
      latest = row
    }
  }
  return latest, nil
}

func (f *fakeMeasurementRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  if f.err != nil {
    return 0, f.err
  }
  var count int64
  for _, row := range f.rows {
    if row.UserID == userID {
      count++
    }
  }
  return count, nil
}

type fakeAxisRepo struct {
  axes []*types.EmotionalAxis
  err  error
}

func (f *fakeAxisRepo) Create(ctx context.Context, tx *gorm.DB, axes []*types.EmotionalAxis) ([]*types.EmotionalAxis, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, axis := range axes {
    axis.ID = uuid.New()
    f.axes = append(f.axes, axis)
  }
  return axes, nil
}

func (f *fakeAxisRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID) (*types.EmotionalAxis, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, axis := range f.axes {
    if axis.ID == axisID && axis.UserID == userID {
      return axis, nil
    }
  }
  return nil, nil
}

func (f *fakeAxisRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EmotionalAxis, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.EmotionalAxis
  for _, axis := range f.axes {
    if axis.UserID == userID && axis.IsActive {
      out = append(out, axis)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
  return out, nil
}

func (f *fakeAxisRepo) Update(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID, updates map[string]interface{}) error {
  if f.err != nil {
    return f.err
  }
  for _, axis := range f.axes {
    if axis.ID != axisID || axis.UserID != userID {
      continue
    }
    for key, value := range updates {
      switch key {
      case "left_label":
        axis.LeftLabel = value.(string)
      case "right_label":
        axis.RightLabel = value.(string)
      case "context_tag":
        axis.ContextTag = value.(string)
      case "description":
        axis.Description = value.(string)
      case "color":
        axis.Color = value.(string)
      case "display_order":
        axis.DisplayOrder = value.(int)
      case "is_active":
        axis.IsActive = value.(bool)
      }
    }
  }
  return nil
}

func (f *fakeAxisRepo) Deactivate(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID) error {
  return f.Update(ctx, tx, axisID, userID, map[string]interface{}{"is_active": false})
}

func (f *fakeAxisRepo) SetDisplayOrder(ctx context.Context, tx *gorm.DB, axisID, userID uuid.UUID, order int) error {
  return f.Update(ctx, tx, axisID, userID, map[string]interface{}{"display_order": order})
}

type fakeBadgeRepo struct {
  rows []*types.UnlockedBadge
  err  error
}

func (f *fakeBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UnlockedBadge, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.UnlockedBadge
  for _, row := range f.rows {
    if row.UserID == userID {
      out = append(out, row)
    }
  }
  return out, nil
}

func (f *fakeBadgeRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UnlockedBadge) (bool, error) {
  if f.err != nil {
    return false, f.err
  }
  for _, existing := range f.rows {
    if existing.UserID == row.UserID && existing.BadgeID == row.BadgeID {
      return false, nil
    }
  }
  row.ID = uuid.New()
  f.rows = append(f.rows, row)
  return true, nil
}

type fakeModuleRepo struct {
  rows []*types.ModuleProgress
  err  error
}

func (f *fakeModuleRepo) find(userID uuid.UUID, moduleNumber int) *types.ModuleProgress {
  for _, row := range f.rows {
    if row.UserID == userID && row.ModuleNumber == moduleNumber {
      return row
    }
  }
  return nil
}

func (f *fakeModuleRepo) UpsertCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleNumber int, completedAt time.Time) error {
  if f.err != nil {
    return f.err
  }
  if f.find(userID, moduleNumber) != nil {
    return nil
  }
  at := completedAt
  f.rows = append(f.rows, &types.ModuleProgress{
    ID:           uuid.New(),
    UserID:       userID,
    ModuleNumber: moduleNumber,
    CompletedAt:  &at,
  })
  return nil
}

func (f *fakeModuleRepo) SaveReflection(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleNumber int, reflection string) error {
  if f.err != nil {
    return f.err
  }
  if row := f.find(userID, moduleNumber); row != nil {
    row.Reflection = reflection
    return nil
  }
  f.rows = append(f.rows, &types.ModuleProgress{
    ID:           uuid.New(),
    UserID:       userID,
    ModuleNumber: moduleNumber,
    Reflection:   reflection,
  })
  return nil
}

func (f *fakeModuleRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ModuleProgress, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.ModuleProgress
  for _, row := range f.rows {
    if row.UserID == userID {
      out = append(out, row)
    }
  }
  sort.Slice(out, func(i, j int) bool { return out[i].ModuleNumber < out[j].ModuleNumber })
  return out, nil
}

func (f *fakeModuleRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  if f.err != nil {
    return 0, f.err
  }
  var count int64
  for _, row := range f.rows {
    if row.UserID == userID && row.CompletedAt != nil {
      count++
    }
  }
  return count, nil
}

type fakeConnectionRepo struct {
  rows []*types.Connection
  err  error
}

func (f *fakeConnectionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Connection) (*types.Connection, error) {
  if f.err != nil {
    return nil, f.err
  }
  row.ID = uuid.New()
  f.rows = append(f.rows, row)
  return row, nil
}

func (f *fakeConnectionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Connection, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.Connection
  for _, row := range f.rows {
    if row.UserID == userID || row.ConnectedUserID == userID {
      out = append(out, row)
    }
  }
  return out, nil
}

func (f *fakeConnectionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, connectionID, connectedUserID uuid.UUID, status string, acceptedAt *time.Time) (int64, error) {
  if f.err != nil {
    return 0, f.err
  }
  for _, row := range f.rows {
    if row.ID == connectionID && row.ConnectedUserID == connectedUserID {
      row.Status = status
      if acceptedAt != nil {
        at := *acceptedAt
        row.AcceptedAt = &at
      }
      return 1, nil
    }
  }
  return 0, nil
}

func (f *fakeConnectionRepo) CountAccepted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  if f.err != nil {
    return 0, f.err
  }
  var count int64
  for _, row := range f.rows {
    if (row.UserID == userID || row.ConnectedUserID == userID) && row.Status == types.ConnectionAccepted {
      count++
    }
  }
  return count, nil
}

type fakeInsightRepo struct {
  rows []*types.Insight
  err  error
}

func (f *fakeInsightRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Insight) (*types.Insight, error) {
  if f.err != nil {
    return nil, f.err
  }
  row.ID = uuid.New()
  f.rows = append(f.rows, row)
  return row, nil
}

func (f *fakeInsightRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Insight, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.Insight
  for _, row := range f.rows {
    if row.UserID == userID {
      out = append(out, row)
    }
  }
  if limit > 0 && len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

func (f *fakeInsightRepo) MarkRead(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID) error {
  if f.err != nil {
    return f.err
  }
  for _, row := range f.rows {
    if row.ID == insightID && row.UserID == userID {
      row.IsRead = true
    }
  }
  return nil
}

func (f *fakeInsightRepo) Rate(ctx context.Context, tx *gorm.DB, insightID, userID uuid.UUID, rating int) (int64, error) {
  if f.err != nil {
    return 0, f.err
  }
  for _, row := range f.rows {
    if row.ID == insightID && row.UserID == userID {
      r := rating
      row.UserRating = &r
      return 1, nil
    }
  }
  return 0, nil
}

func (f *fakeInsightRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  if f.err != nil {
    return 0, f.err
  }
  var count int64
  for _, row := range f.rows {
    if row.UserID == userID {
      count++
    }
  }
  return count, nil
}

func (f *fakeInsightRepo) CountHighRated(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  if f.err != nil {
    return 0, f.err
  }
  var count int64
  for _, row := range f.rows {
    if row.UserID == userID && row.UserRating != nil && *row.UserRating >= repos.HighInsightRating {
      count++
    }
  }
  return count, nil
}

type fakeFlashcardRepo struct {
  cards []*types.Flashcard
  err   error
}

func (f *fakeFlashcardRepo) Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, card := range cards {
    card.ID = uuid.New()
    f.cards = append(f.cards, card)
  }
  return cards, nil
}

func (f *fakeFlashcardRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID) (*types.Flashcard, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, card := range f.cards {
    if card.ID == cardID && card.UserID == userID {
      copied := *card
      return &copied, nil
    }
  }
  return nil, nil
}

func (f *fakeFlashcardRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, deckName string) ([]*types.Flashcard, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.Flashcard
  for _, card := range f.cards {
    if card.UserID != userID {
      continue
    }
    if deckName != "" && card.DeckName != deckName {
      continue
    }
    out = append(out, card)
  }
  return out, nil
}

func (f *fakeFlashcardRepo) Update(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID, updates map[string]interface{}) error {
  if f.err != nil {
    return f.err
  }
  for _, card := range f.cards {
    if card.ID != cardID || card.UserID != userID {
      continue
    }
    for key, value := range updates {
      switch key {
      case "front":
        card.Front = value.(string)
      case "back":
        card.Back = value.(string)
      case "deck_name":
        card.DeckName = value.(string)
      case "ease_factor":
        card.EaseFactor = value.(float64)
      case "repetitions":
        card.Repetitions = value.(int)
      case "interval_days":
        card.IntervalDays = value.(int)
      case "last_reviewed_at":
        t := value.(time.Time)
        card.LastReviewedAt = &t
      case "next_due_at":
        t := value.(time.Time)
        card.NextDueAt = &t
      }
    }
  }
  return nil
}

func (f *fakeFlashcardRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, cardID, userID uuid.UUID) error {
  if f.err != nil {
    return f.err
  }
  kept := f.cards[:0]
  for _, card := range f.cards {
    if card.ID == cardID && card.UserID == userID {
      continue
    }
    kept = append(kept, card)
  }
  f.cards = kept
  return nil
}

func (f *fakeFlashcardRepo) GetDue(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*types.Flashcard, error) {
  if f.err != nil {
    return nil, f.err
  }
  var out []*types.Flashcard
  for _, card := range f.cards {
    if card.UserID != userID {
      continue
    }
    if card.NextDueAt == nil || !card.NextDueAt.After(now) {
      out = append(out, card)
    }
  }
  if limit > 0 && len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

func (f *fakeFlashcardRepo) Stats(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (*repos.FlashcardStats, error) {
  if f.err != nil {
    return nil, f.err
  }
  stats := &repos.FlashcardStats{}
  var easeSum float64
  for _, card := range f.cards {
    if card.UserID != userID {
      continue
    }
    stats.TotalCards++
    easeSum += card.EaseFactor
    if card.NextDueAt == nil || !card.NextDueAt.After(now) {
      stats.DueCount++
    }
  }
  if stats.TotalCards > 0 {
    stats.AvgEaseFactor = easeSum / float64(stats.TotalCards)
  }
  return stats, nil
}

type fakeUserRepo struct {
  users []*types.User
  err   error
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
  if f.err != nil {
    return nil, f.err
  }
  want := make(map[uuid.UUID]bool, len(userIDs))
  for _, id := range userIDs {
    want[id] = true
  }
  var out []*types.User
  for _, user := range f.users {
    if want[user.ID] {
      out = append(out, user)
    }
  }
  return out, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
  if f.err != nil {
    return nil, f.err
  }
  for _, user := range f.users {
    if user.Email == email {
      return user, nil
    }
  }
  return nil, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  user, err := f.GetByEmail(ctx, tx, email)
  return user != nil, err
}

func (f *fakeUserRepo) Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error {
  if f.err != nil {
    return f.err
  }
  for _, existing := range f.users {
    if existing.Email == user.Email {
      existing.DisplayName = user.DisplayName
      existing.Timezone = user.Timezone
      return nil
    }
  }
  user.ID = uuid.New()
  f.users = append(f.users, user)
  return nil
}
