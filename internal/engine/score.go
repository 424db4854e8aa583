package engine

import "math"

// Level bands for a destiny score.
const (
	LevelCritical  = "critical"
	LevelNeedsWork = "needs_work"
	LevelGrowing   = "growing"
	LevelStrong    = "strong"
	LevelMastery   = "mastery"
)

// DestinyScore averages the latest value per active axis, rounded half-up
// to the nearest integer. The second return is false when there are no
// measurements at all: an uncalibrated user is not the same as a user
// scoring zero.
func DestinyScore(latestValues []int) (int, bool) {
	if len(latestValues) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range latestValues {
		sum += v
	}
	avg := float64(sum) / float64(len(latestValues))
	return int(math.Floor(avg + 0.5)), true
}

// LevelForScore maps a score to its band. Upper bounds are inclusive:
// exactly 30 is critical, exactly 85 is strong.
func LevelForScore(score int) string {
	switch {
	case score <= 30:
		return LevelCritical
	case score <= 50:
		return LevelNeedsWork
	case score <= 70:
		return LevelGrowing
	case score <= 85:
		return LevelStrong
	default:
		return LevelMastery
	}
}
