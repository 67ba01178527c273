package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/config"
	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/emitter"
	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/faults"
	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/logger"
	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/synth"
)

// newRootCmd builds the generator command with its flag set.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generator",
		Short: "Generate synthetic clickstream events as JSONL",
		Long: `Generate a stream of realistic clickstream events for testing downstream
ingestion pipelines. Each line of output is one compact JSON record.

A fraction of records is deliberately corrupted: duplicates replay a
previously emitted record verbatim (at-least-once delivery), and
out-of-order records carry a timestamp 60..3600 seconds in the past
(network/clock skew).

Examples:
  generator                              # 200 events to stdout
  generator --events 10000 --out out.jsonl
  generator --dup-rate 0.05 --oo-rate 0.1 --seed 42
  generator --sleep-ms 50                # pace emissions`,
		Args:          cobra.NoArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().Int("events", 200, "total records to emit")
	cmd.Flags().Int("max-events-per-session", 12, "upper bound on session length")
	cmd.Flags().Int("sleep-ms", 0, "delay between emissions in milliseconds")
	cmd.Flags().String("out", "-", "output path for JSONL, '-' for stdout")
	cmd.Flags().Float64("dup-rate", 0.01, "probability [0..1] of re-emitting a previous record")
	cmd.Flags().Float64("oo-rate", 0.02, "probability [0..1] of shifting a timestamp into the past")
	cmd.Flags().Int64("seed", 0, "random seed, 0 derives one from the clock")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	out, closeOut, err := openSink(cfg.Out)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	log.Info("Producer starting",
		zap.Int("events", cfg.Events),
		zap.Int("max_events_per_session", cfg.MaxEventsPerSession),
		zap.Int("sleep_ms", cfg.SleepMs),
		zap.String("out", cfg.Out),
		zap.Float64("dup_rate", cfg.DupRate),
		zap.Float64("oo_rate", cfg.OORate),
		zap.Int64("seed", seed))

	em := emitter.New(
		emitter.Config{
			TotalEvents:         cfg.Events,
			MaxEventsPerSession: cfg.MaxEventsPerSession,
			Sleep:               time.Duration(cfg.SleepMs) * time.Millisecond,
		},
		synth.New(rng, gofakeit.New(uint64(seed))),
		faults.New(faults.Config{DupRate: cfg.DupRate, OORate: cfg.OORate}, rng),
		out,
		log,
	)

	emitted, runErr := em.Run(ctx)

	// The sink is released on every exit path; a flush/close failure on an
	// otherwise clean run is still a process error.
	if closeErr := closeOut(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close output: %w", closeErr)
	}
	if runErr != nil {
		log.Error("Producer failed",
			zap.Int("emitted", emitted),
			zap.Error(runErr))
		return runErr
	}

	return nil
}

// loadConfig layers the environment over built-in defaults, then explicit
// CLI flags over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("events") {
		cfg.Events, _ = flags.GetInt("events")
	}
	if flags.Changed("max-events-per-session") {
		cfg.MaxEventsPerSession, _ = flags.GetInt("max-events-per-session")
	}
	if flags.Changed("sleep-ms") {
		cfg.SleepMs, _ = flags.GetInt("sleep-ms")
	}
	if flags.Changed("out") {
		cfg.Out, _ = flags.GetString("out")
	}
	if flags.Changed("dup-rate") {
		cfg.DupRate, _ = flags.GetFloat64("dup-rate")
	}
	if flags.Changed("oo-rate") {
		cfg.OORate, _ = flags.GetFloat64("oo-rate")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}

	return cfg, nil
}

// openSink resolves the output path to a buffered writer and a release
// function. "-" selects stdout; file paths get their parent directories
// created on demand.
func openSink(path string) (io.Writer, func() error, error) {
	if path == "-" {
		w := bufio.NewWriter(os.Stdout)
		return w, w.Flush, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output file: %w", err)
	}

	w := bufio.NewWriter(f)
	closeFn := func() error {
		if err := w.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	return w, closeFn, nil
}
