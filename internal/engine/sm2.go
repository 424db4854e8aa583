package engine

import "math"

// MinEaseFactor is the SM-2 ease-factor floor. There is no ceiling.
const MinEaseFactor = 1.3

// ReviewUpdate is the scheduling state produced by one SM-2 review.
type ReviewUpdate struct {
	EaseFactor   float64
	Repetitions  int
	IntervalDays int
}

// ScheduleSM2 applies one SM-2 review to a card's scheduling state.
// Quality is the recall grade in [0,5]. A failing grade (<3) resets the
// repetition count and schedules the card for tomorrow; the ease factor is
// updated either way, so failures still erode it. Successful reviews use
// the fixed 1- and 6-day openings, then multiply the prior interval by the
// prior ease factor.
//
// The function is total for any quality in [0,5] and any valid prior
// state, and depends on nothing but its arguments.
func ScheduleSM2(quality int, easeFactor float64, repetitions, intervalDays int) ReviewUpdate {
	q := float64(quality)
	ease := easeFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}

	if quality < 3 {
		return ReviewUpdate{EaseFactor: ease, Repetitions: 0, IntervalDays: 1}
	}

	reps := repetitions + 1
	var interval int
	switch reps {
	case 1:
		interval = 1
	case 2:
		interval = 6
	default:
		interval = int(math.Round(float64(intervalDays) * easeFactor))
	}
	if interval < 1 {
		interval = 1
	}
	return ReviewUpdate{EaseFactor: ease, Repetitions: reps, IntervalDays: interval}
}
