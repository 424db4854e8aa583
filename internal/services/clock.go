package services

import "time"

// Clock supplies "now" to every service so the daily-cycle date math and
// spaced-repetition due dates are deterministic under test. The pure
// computations in internal/engine never read a clock themselves.
type Clock interface {
  Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewRealClock() Clock { return realClock{} }
