package engine

import (
	"testing"
	"time"

	"github.com/praxislabs/praxis-backend/internal/types"
)

var testToday = time.Date(2025, 12, 20, 15, 0, 0, 0, time.UTC)

func cycleOn(daysAgo int, complete bool) *types.DailyCycle {
	return &types.DailyCycle{
		CycleDate:  testToday.AddDate(0, 0, -daysAgo).Format(types.CycleDateLayout),
		IsComplete: complete,
	}
}

func TestCycleStreak(t *testing.T) {
	cases := []struct {
		name   string
		cycles []*types.DailyCycle
		want   int
	}{
		{name: "empty_history", cycles: nil, want: 0},
		{name: "single_completed_today", cycles: []*types.DailyCycle{cycleOn(0, true)}, want: 1},
		{name: "three_consecutive", cycles: []*types.DailyCycle{cycleOn(0, true), cycleOn(1, true), cycleOn(2, true)}, want: 3},
		{
			name:   "gap_breaks_streak",
			cycles: []*types.DailyCycle{cycleOn(0, true), cycleOn(1, true), cycleOn(3, true), cycleOn(4, true)},
			want:   2,
		},
		{
			name:   "incomplete_day_breaks_streak",
			cycles: []*types.DailyCycle{cycleOn(0, true), cycleOn(1, false), cycleOn(2, true)},
			want:   1,
		},
		{
			name:   "today_open_anchors_yesterday",
			cycles: []*types.DailyCycle{cycleOn(0, false), cycleOn(1, true), cycleOn(2, true)},
			want:   2,
		},
		{
			name:   "today_missing_anchors_yesterday",
			cycles: []*types.DailyCycle{cycleOn(1, true), cycleOn(2, true)},
			want:   2,
		},
		{
			name:   "stale_history_only",
			cycles: []*types.DailyCycle{cycleOn(5, true), cycleOn(6, true)},
			want:   0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CycleStreak(tc.cycles, testToday)
			if got != tc.want {
				t.Errorf("CycleStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCycleStreakIdempotent(t *testing.T) {
	cycles := []*types.DailyCycle{cycleOn(0, true), cycleOn(1, true)}
	first := CycleStreak(cycles, testToday)
	second := CycleStreak(cycles, testToday)
	if first != second {
		t.Fatalf("repeated evaluation changed result: %d then %d", first, second)
	}
}

func measurementOn(daysAgo, value int) *types.AxisMeasurement {
	return &types.AxisMeasurement{
		Value:           value,
		ClientTimestamp: testToday.AddDate(0, 0, -daysAgo),
	}
}

func TestAxisValueStreak(t *testing.T) {
	cases := []struct {
		name         string
		measurements []*types.AxisMeasurement
		want         int
	}{
		{name: "no_measurements", measurements: nil, want: 0},
		{
			// values 75, 72, 68, 80 over the 4 most recent days: the 68 breaks it
			name: "broken_by_below_threshold_day",
			measurements: []*types.AxisMeasurement{
				measurementOn(0, 75), measurementOn(1, 72), measurementOn(2, 68), measurementOn(3, 80),
			},
			want: 2,
		},
		{
			name: "missing_day_breaks",
			measurements: []*types.AxisMeasurement{
				measurementOn(0, 80), measurementOn(2, 90), measurementOn(3, 90),
			},
			want: 1,
		},
		{
			name:         "threshold_is_inclusive",
			measurements: []*types.AxisMeasurement{measurementOn(0, 70)},
			want:         1,
		},
		{
			name:         "single_below_threshold",
			measurements: []*types.AxisMeasurement{measurementOn(0, 69)},
			want:         0,
		},
		{
			name: "anchors_at_most_recent_measured_day",
			measurements: []*types.AxisMeasurement{
				measurementOn(4, 80), measurementOn(5, 85),
			},
			want: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AxisValueStreak(tc.measurements, AxisStreakThreshold)
			if got != tc.want {
				t.Errorf("AxisValueStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAxisValueStreakCollapsesSameDay(t *testing.T) {
	// Two readings on the same day: first seen after descending sort wins,
	// and the duplicate must not extend the streak.
	morning := &types.AxisMeasurement{Value: 40, ClientTimestamp: testToday.Add(-6 * time.Hour)}
	evening := &types.AxisMeasurement{Value: 90, ClientTimestamp: testToday}
	got := AxisValueStreak([]*types.AxisMeasurement{morning, evening}, AxisStreakThreshold)
	if got != 1 {
		t.Fatalf("streak = %d, want 1 (same-day readings collapse to latest)", got)
	}

	got = AxisValueStreak([]*types.AxisMeasurement{evening, morning}, AxisStreakThreshold)
	if got != 1 {
		t.Fatalf("streak = %d, want 1 regardless of input order", got)
	}
}

func TestAxisValueStreakWindowCap(t *testing.T) {
	measurements := make([]*types.AxisMeasurement, 0, 120)
	for i := 0; i < 120; i++ {
		measurements = append(measurements, measurementOn(i, 95))
	}
	got := AxisValueStreak(measurements, AxisStreakThreshold)
	if got != 90 {
		t.Fatalf("streak = %d, want capped at 90", got)
	}
}
