package engine

import (
	"sort"
	"time"

	"github.com/praxislabs/praxis-backend/internal/types"
)

// AxisStreakThreshold is the minimum daily value for a day to count toward
// an axis value streak.
const AxisStreakThreshold = 70

// axisStreakWindowDays caps how far back an axis value streak is scanned.
const axisStreakWindowDays = 90

// CycleStreak counts consecutive calendar days with a completed cycle,
// ending at the most recent day. The day anchors at today, or at yesterday
// when today has no completed cycle yet (the current ritual may still be
// open). A day without a completed row breaks the streak; the row must
// exist for that exact date, a gap is never inferred over.
func CycleStreak(cycles []*types.DailyCycle, today time.Time) int {
	complete := make(map[string]bool, len(cycles))
	for _, c := range cycles {
		if c != nil && c.IsComplete {
			complete[c.CycleDate] = true
		}
	}

	day := today
	if !complete[day.Format(types.CycleDateLayout)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for complete[day.Format(types.CycleDateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// AxisValueStreak counts consecutive calendar days, most recent measured
// day first, on which the axis value was at or above threshold. Multiple
// same-day measurements collapse to the first one seen after sorting by
// client timestamp descending; duplicates never extend the streak. The
// scan stops at the first day below threshold, the first missing day, or
// the 90-day window edge.
func AxisValueStreak(measurements []*types.AxisMeasurement, threshold int) int {
	if len(measurements) == 0 {
		return 0
	}

	ordered := make([]*types.AxisMeasurement, 0, len(measurements))
	for _, m := range measurements {
		if m != nil {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ClientTimestamp.After(ordered[j].ClientTimestamp)
	})

	valueByDay := make(map[string]int, len(ordered))
	var latestDay time.Time
	for i, m := range ordered {
		day := m.ClientTimestamp
		key := day.Format(types.CycleDateLayout)
		if _, seen := valueByDay[key]; !seen {
			valueByDay[key] = m.Value
		}
		if i == 0 {
			latestDay = day
		}
	}

	streak := 0
	day := latestDay
	for i := 0; i < axisStreakWindowDays; i++ {
		v, ok := valueByDay[day.Format(types.CycleDateLayout)]
		if !ok || v < threshold {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
