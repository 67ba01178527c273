package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/domain"
	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/faults"
	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/synth"
)

const progressInterval = 1000

// Config bounds a generation run.
type Config struct {
	TotalEvents         int
	MaxEventsPerSession int
	// Sleep is a plain pacing delay between emissions, simulating
	// real-time arrival. Zero disables it.
	Sleep time.Duration
}

// Emitter drives session generation, applies fault injection, and writes
// one compact JSON record per line to the output sink.
type Emitter struct {
	cfg      Config
	synth    *synth.Synthesizer
	injector *faults.Injector
	out      io.Writer
	log      *zap.Logger
}

// New creates an emitter writing to out.
func New(cfg Config, s *synth.Synthesizer, injector *faults.Injector, out io.Writer, log *zap.Logger) *Emitter {
	return &Emitter{
		cfg:      cfg,
		synth:    s,
		injector: injector,
		out:      out,
		log:      log,
	}
}

// Run emits records until the configured total is reached or ctx is
// cancelled. Each pass mints a new user and session; the final session is
// truncated mid-generation when the counter limit is hit. Returns the
// number of records written.
func (e *Emitter) Run(ctx context.Context) (int, error) {
	start := time.Now()
	emitted := 0

	for emitted < e.cfg.TotalEvents {
		userID := e.synth.NewUserID()
		session := e.synth.Session(userID, e.cfg.MaxEventsPerSession)

		for _, event := range session {
			if emitted >= e.cfg.TotalEvents {
				break
			}
			select {
			case <-ctx.Done():
				return emitted, ctx.Err()
			default:
			}

			// Skew before the duplicate check: a replayed record keeps
			// its original timestamp.
			if skewed, ok := e.injector.Skew(time.Now()); ok {
				event.EventTS = domain.FormatTimestamp(skewed)
			}

			line, err := encodeLine(event)
			if err != nil {
				return emitted, fmt.Errorf("failed to encode event: %w", err)
			}
			if replay, ok := e.injector.Duplicate(); ok {
				line = replay
			}

			if _, err := e.out.Write(line); err != nil {
				return emitted, fmt.Errorf("failed to write record: %w", err)
			}
			e.injector.Record(line)
			emitted++

			if emitted%progressInterval == 0 {
				e.log.Info("Emission progress",
					zap.Int("emitted", emitted),
					zap.Int("total", e.cfg.TotalEvents))
			}

			if e.cfg.Sleep > 0 {
				time.Sleep(e.cfg.Sleep)
			}
		}
	}

	e.log.Info("Emission complete",
		zap.Int("emitted", emitted),
		zap.Duration("elapsed", time.Since(start)))
	return emitted, nil
}

// encodeLine renders one event as a compact, newline-terminated JSON line.
// HTML escaping is off so page paths and non-ASCII city names pass through
// verbatim.
func encodeLine(event *domain.ClickstreamEvent) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(event); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
