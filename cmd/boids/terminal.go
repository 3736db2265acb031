package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/flockworks/boids/internal/config"
	"github.com/flockworks/boids/internal/control"
	"github.com/flockworks/boids/internal/render/term"
	"github.com/flockworks/boids/internal/simulation"
)

// runTerminal draws into the terminal with tcell. Input is read on its own
// goroutine and turned into control commands; the ticker is the pulse.
func runTerminal(cfg *config.Config, log *zap.Logger) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()

	surface := term.New(scr, cfg.Simulation.Bounds().Size())
	sim, err := simulation.New(cfg, surface, log)
	if err != nil {
		return err
	}
	defer sim.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(cfg.Simulation.FrameInterval)
	defer ticker.Stop()

	hud := cfg.Render.HUD
	sim.World().Start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if handleKey(ev, sim.Controller(), sim.SpawnBatch()) {
					hud = !hud
				}
			case *tcell.EventResize:
				scr.Sync()
			}
		case <-ticker.C:
			done, err := sim.Frame()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			if hud {
				surface.Status(sim.Status())
			}
			surface.Show()
		}
	}
}

// handleKey maps a key press to a command. It reports whether the key
// toggles the status line, which is local to the driver.
func handleKey(ev *tcell.EventKey, ctrl *control.Controller, batch int) (toggleHUD bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ctrl.Quit()
		return false
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case ' ':
		ctrl.TogglePause()
	case 's':
		ctrl.Step()
	case '+', '=':
		ctrl.Spawn(batch, 0)
	case 'p':
		ctrl.Spawn(1, 1)
	case 'h':
		return true
	case 'q':
		ctrl.Quit()
	}
	return false
}
