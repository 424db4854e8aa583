package services

import (
  "context"
  "sync"
  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"
  "github.com/praxislabs/praxis-backend/internal/engine"
  "github.com/praxislabs/praxis-backend/internal/logger"
  "github.com/praxislabs/praxis-backend/internal/repos"
  "github.com/praxislabs/praxis-backend/internal/types"
)

// BadgeStatus is one catalog entry decorated with the caller's unlock state.
type BadgeStatus struct {
  ID          string `json:"id"`
  Name        string `json:"name"`
  Description string `json:"description"`
  Category    string `json:"category"`
  Rarity      string `json:"rarity"`
  Icon        string `json:"icon"`
  Unlocked    bool   `json:"unlocked"`
  UnlockedAt  string `json:"unlocked_at,omitempty"`
}

type AchievementService interface {
  // Evaluate recomputes the caller's stats from history, checks every
  // catalog badge, and persists any newly earned unlocks. It returns the
  // ids unlocked by THIS call; replaying the same history returns an
  // empty slice.
  Evaluate(ctx context.Context, userID uuid.UUID) ([]string, error)
  List(ctx context.Context, userID uuid.UUID) ([]*BadgeStatus, error)
}

type achievementService struct {
  db              *gorm.DB
  log             *logger.Logger
  clock           Clock
  badgeRepo       repos.UnlockedBadgeRepo
  cycleRepo       repos.DailyCycleRepo
  axisRepo        repos.AxisRepo
  measurementRepo repos.MeasurementRepo
  moduleRepo      repos.ModuleProgressRepo
  connectionRepo  repos.ConnectionRepo
  insightRepo     repos.InsightRepo
}

func NewAchievementService(db *gorm.DB, log *logger.Logger, clock Clock, badgeRepo repos.UnlockedBadgeRepo, cycleRepo repos.DailyCycleRepo, axisRepo repos.AxisRepo, measurementRepo repos.MeasurementRepo, moduleRepo repos.ModuleProgressRepo, connectionRepo repos.ConnectionRepo, insightRepo repos.InsightRepo) AchievementService {
  serviceLog := log.With("service", "AchievementService")
  return &achievementService{
    db:              db,
    log:             serviceLog,
    clock:           clock,
    badgeRepo:       badgeRepo,
    cycleRepo:       cycleRepo,
    axisRepo:        axisRepo,
    measurementRepo: measurementRepo,
    moduleRepo:      moduleRepo,
    connectionRepo:  connectionRepo,
    insightRepo:     insightRepo,
  }
}

// statSnapshot carries the computed counters plus per-category failure
// flags. A failed counter skips its badge category for this run instead of
// failing the whole evaluation; the next call retries from scratch.
// Counter goroutines each write disjoint stats fields; the failed map is
// shared and guarded.
type statSnapshot struct {
  mu     sync.Mutex
  stats  engine.Stats
  failed map[string]bool
}

func (s *statSnapshot) markFailed(category string) {
  s.mu.Lock()
  s.failed[category] = true
  s.mu.Unlock()
}

func (s *achievementService) computeStats(ctx context.Context, userID uuid.UUID) *statSnapshot {
  now := s.clock.Now()
  snap := &statSnapshot{failed: map[string]bool{}}

  var g errgroup.Group

  g.Go(func() error {
    count, err := s.measurementRepo.CountByUserID(ctx, nil, userID)
    if err != nil {
      s.log.Warn("Calibration count failed, skipping category", "error", err)
      snap.markFailed("calibration")
      return nil
    }
    snap.stats.TotalCalibrations = int(count)
    return nil
  })

  g.Go(func() error {
    cycles, err := s.cycleRepo.GetRecentByUserID(ctx, nil, userID, 0)
    if err != nil {
      s.log.Warn("Cycle history fetch failed, skipping category", "error", err)
      snap.markFailed("streak")
      return nil
    }
    snap.stats.CycleStreakDays = engine.CycleStreak(cycles, now)
    return nil
  })

  g.Go(func() error {
    count, err := s.moduleRepo.CountCompleted(ctx, nil, userID)
    if err != nil {
      s.log.Warn("Module count failed, skipping category", "error", err)
      snap.markFailed("learning")
      return nil
    }
    snap.stats.CompletedModules = int(count)
    return nil
  })

  g.Go(func() error {
    count, err := s.connectionRepo.CountAccepted(ctx, nil, userID)
    if err != nil {
      s.log.Warn("Connection count failed, skipping category", "error", err)
      snap.markFailed("social")
      return nil
    }
    snap.stats.AcceptedConnections = int(count)
    return nil
  })

  g.Go(func() error {
    total, err := s.insightRepo.CountByUserID(ctx, nil, userID)
    if err != nil {
      s.log.Warn("Insight count failed, skipping category", "error", err)
      snap.markFailed("insight")
      return nil
    }
    high, err := s.insightRepo.CountHighRated(ctx, nil, userID)
    if err != nil {
      s.log.Warn("High-rated insight count failed, skipping category", "error", err)
      snap.markFailed("insight")
      return nil
    }
    snap.stats.ReceivedInsights = int(total)
    snap.stats.HighRatedInsights = int(high)
    return nil
  })

  g.Go(func() error {
    axes, err := s.axisRepo.GetActiveByUserID(ctx, nil, userID)
    if err != nil {
      s.log.Warn("Axis fetch failed, skipping category", "error", err)
      snap.markFailed("mastery")
      return nil
    }

    since := now.AddDate(0, 0, -90)
    above := 0
    best := 0
    latest := make([]int, 0, len(axes))
    for _, axis := range axes {
      current, err := s.measurementRepo.GetLatestForAxis(ctx, nil, userID, axis.ID)
      if err != nil {
        s.log.Warn("Latest measurement fetch failed, skipping category", "error", err)
        snap.markFailed("mastery")
        return nil
      }
      if current != nil {
        latest = append(latest, current.Value)
        if current.Value >= engine.AxisStreakThreshold {
          above++
        }
      }

      history, err := s.measurementRepo.GetByUserAxisSince(ctx, nil, userID, axis.ID, since)
      if err != nil {
        s.log.Warn("Axis history fetch failed, skipping category", "error", err)
        snap.markFailed("mastery")
        return nil
      }
      if streak := engine.AxisValueStreak(history, engine.AxisStreakThreshold); streak > best {
        best = streak
      }
    }

    score, calibrated := engine.DestinyScore(latest)
    snap.stats.AxesAboveThreshold = above
    snap.stats.BestAxisStreakDays = best
    snap.stats.DestinyScore = score
    snap.stats.ScoreCalibrated = calibrated
    return nil
  })

  // Goroutines report failures through snap.failed, never as errors.
  _ = g.Wait()
  return snap
}

func (s *achievementService) Evaluate(ctx context.Context, userID uuid.UUID) ([]string, error) {
  snap := s.computeStats(ctx, userID)
  now := s.clock.Now()

  newlyUnlocked := []string{}
  for _, badge := range engine.Catalog {
    if snap.failed[badge.Category] {
      continue
    }
    if badge.Unlocks == nil || !badge.Unlocks(snap.stats) {
      continue
    }
    wasNew, err := s.badgeRepo.Upsert(ctx, nil, &types.UnlockedBadge{
      UserID:     userID,
      BadgeID:    badge.ID,
      UnlockedAt: now,
    })
    if err != nil {
      return nil, err
    }
    if wasNew {
      s.log.Info("Badge unlocked", "badge_id", badge.ID)
      newlyUnlocked = append(newlyUnlocked, badge.ID)
    }
  }
  return newlyUnlocked, nil
}

func (s *achievementService) List(ctx context.Context, userID uuid.UUID) ([]*BadgeStatus, error) {
  unlocked, err := s.badgeRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }

  unlockedAt := make(map[string]string, len(unlocked))
  for _, row := range unlocked {
    unlockedAt[row.BadgeID] = row.UnlockedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
  }

  out := make([]*BadgeStatus, 0, len(engine.Catalog))
  for _, badge := range engine.Catalog {
    status := &BadgeStatus{
      ID:          badge.ID,
      Name:        badge.Name,
      Description: badge.Description,
      Category:    badge.Category,
      Rarity:      badge.Rarity,
      Icon:        badge.Icon,
    }
    if at, ok := unlockedAt[badge.ID]; ok {
      status.Unlocked = true
      status.UnlockedAt = at
    }
    out = append(out, status)
  }
  return out, nil
}
