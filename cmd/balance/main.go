package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ugaemi/spotlight-server/internal/autopilot"
	"github.com/ugaemi/spotlight-server/internal/game"
	"github.com/ugaemi/spotlight-server/internal/telemetry"
)

func main() {
	runs := flag.Int("runs", 10, "Number of headless sessions to play")
	seed := flag.Int64("seed", 1, "Seed of the first run; run i uses seed+i")
	ticks := flag.Int("ticks", 20*60*5, "Maximum ticks per run")
	outDir := flag.String("out", "data/telemetry", "Output directory for parquet tick batches")
	useTUI := flag.Bool("tui", false, "Show a live progress view instead of logs")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := telemetry.NewBatchWriter(*outDir)
	if err != nil {
		slog.Error("failed to open telemetry writer", "error", err)
		os.Exit(1)
	}

	updates := make(chan RunUpdate, *runs)
	done := make(chan error, 1)
	go func() {
		done <- playAll(ctx, w, *runs, *seed, *ticks, updates)
		close(updates)
	}()

	if *useTUI {
		p := tea.NewProgram(initialModel(updates, *runs))
		if _, err := p.Run(); err != nil {
			slog.Error("tui failed", "error", err)
		}
		stop()
	} else {
		for u := range updates {
			slog.Info("run finished",
				"run", u.Run,
				"seed", u.Seed,
				"ticks", u.Ticks,
				"score", u.State.Score,
				"level", u.State.Level,
				"delivered", u.State.Delivered,
				"caught", u.State.Caught,
				"lost", u.State.Lost,
				"game_over", !u.State.Playing)
		}
	}

	if err := <-done; err != nil {
		slog.Error("balance run failed", "error", err)
	}

	out, rows, written, err := w.Finalize()
	if err != nil {
		slog.Error("failed to finalize telemetry", "error", err)
		os.Exit(1)
	}
	slog.Info("telemetry written", "path", out, "rows", rows, "runs", written)
}

// RunUpdate reports one finished run.
type RunUpdate struct {
	Run      int
	Seed     int64
	Ticks    int64
	State    game.GameState
	Duration time.Duration
}

// playAll plays runs sequentially and writes every tick to w.
func playAll(ctx context.Context, w *telemetry.BatchWriter, runs int, seed int64, maxTicks int, updates chan<- RunUpdate) error {
	for i := range runs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		runSeed := seed + int64(i)
		start := time.Now()

		rows, state, ticks := playOne(ctx, runSeed, maxTicks)
		if err := w.WriteRows(rows); err != nil {
			return fmt.Errorf("write run %d: %w", i, err)
		}
		w.NoteRunWritten()

		updates <- RunUpdate{
			Run:      i,
			Seed:     runSeed,
			Ticks:    ticks,
			State:    state,
			Duration: time.Since(start),
		}
	}
	return nil
}

// playOne runs one autopilot session until game over or maxTicks.
func playOne(ctx context.Context, seed int64, maxTicks int) ([]telemetry.TickRow, game.GameState, int64) {
	runID := uuid.New().String()
	sim := game.NewSimulation(rand.New(rand.NewSource(seed)))
	pilot := autopilot.New()

	rows := make([]telemetry.TickRow, 0, maxTicks)
	for range maxTicks {
		if ctx.Err() != nil || !sim.State.Playing {
			break
		}
		pilot.Drive(sim)
		sim.Tick(game.TickInterval)
		rows = append(rows, telemetry.RowFromSnapshot(runID, seed, sim.Snapshot()))
	}
	return rows, sim.State, sim.Ticks()
}
