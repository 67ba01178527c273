package faults

import (
	"math/rand"
	"time"
)

const (
	// The retention window keeps every emitted record until it grows past
	// maxRetained, then truncates hard to the most recent trimTo entries.
	// Not a rolling window; the coarse trim is intentional.
	maxRetained = 5000
	trimTo      = 2000

	minSkewSeconds = 60
	maxSkewSeconds = 3600
)

// Config sets the per-record corruption probabilities.
type Config struct {
	// DupRate is the probability of replacing a fresh record with a replay
	// of a previously emitted one.
	DupRate float64
	// OORate is the probability of shifting a record's timestamp into
	// the past.
	OORate float64
}

// Injector corrupts a fraction of emitted records to simulate stream
// anomalies seen in real pipelines: out-of-order timestamps and
// at-least-once duplicates. Single-threaded; callers own the sequencing.
type Injector struct {
	cfg    Config
	rng    *rand.Rand
	window [][]byte
}

// New creates an injector drawing from rng.
func New(cfg Config, rng *rand.Rand) *Injector {
	return &Injector{cfg: cfg, rng: rng}
}

// Skew decides whether the current record's timestamp should be corrupted.
// On injection it returns a timestamp 60..3600 seconds (inclusive) earlier
// than now.
func (i *Injector) Skew(now time.Time) (time.Time, bool) {
	if i.rng.Float64() >= i.cfg.OORate {
		return time.Time{}, false
	}
	shift := minSkewSeconds + i.rng.Intn(maxSkewSeconds-minSkewSeconds+1)
	return now.Add(-time.Duration(shift) * time.Second), true
}

// Duplicate decides whether the fresh record should be discarded in favor of
// a replay. The returned line is a previously recorded one, verbatim, so the
// re-emission is byte-identical to the original. Never fires before the
// first record has been retained.
func (i *Injector) Duplicate() ([]byte, bool) {
	if len(i.window) == 0 || i.rng.Float64() >= i.cfg.DupRate {
		return nil, false
	}
	return i.window[i.rng.Intn(len(i.window))], true
}

// Record retains an emitted line for future duplicate replay, applying the
// retention trim when the window breaches its cap.
func (i *Injector) Record(line []byte) {
	i.window = append(i.window, line)
	if len(i.window) > maxRetained {
		trimmed := make([][]byte, trimTo)
		copy(trimmed, i.window[len(i.window)-trimTo:])
		i.window = trimmed
	}
}

// Retained reports the current window size.
func (i *Injector) Retained() int {
	return len(i.window)
}
