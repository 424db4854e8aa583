// Package engine holds the pure computation core of the practice backend:
// streak and score aggregation over measurement/cycle history, the SM-2
// spaced-repetition update rule, and the fixed badge catalog with its
// unlock predicates.
//
// Everything in this package is deterministic and side-effect free. Inputs
// are history snapshots plus an explicit reference time; no function reads
// a clock or touches storage. Callers recompute from source-of-truth
// history on every invocation rather than trusting cached counters.
package engine
