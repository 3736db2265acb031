package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/flockworks/boids/internal/config"
	"github.com/flockworks/boids/internal/render"
	"github.com/flockworks/boids/internal/simulation"
)

// runHeadless ticks on a wall-clock ticker with nothing drawn, until
// simulation.frames frames, a quit from the script, or SIGINT/SIGTERM.
func runHeadless(cfg *config.Config, log *zap.Logger) error {
	sim, err := simulation.New(cfg, render.NewRecorder(), log)
	if err != nil {
		return err
	}
	defer sim.Close()
	printSummary(sim.Stats())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Simulation.FrameInterval)
	defer ticker.Stop()

	printReady(fmt.Sprintf("headless loop (pulse: %s, frames: %d)", cfg.Simulation.FrameInterval, cfg.Simulation.Frames))
	fmt.Println()

	if err := sim.Run(ctx, ticker.C, cfg.Simulation.Frames); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, sim.Status())
	return nil
}
