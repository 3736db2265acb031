// Package control applies control-surface commands to the world. Input
// sources (keyboard, scripts) emit events on the bus; the controller's
// frame hook dispatches them between ticks.
package control

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/core/event"
)

// Spawner builds new boids for the Spawn command.
type Spawner interface {
	Boids(count, predators int) []*ecs.Entity
}

type Controller struct {
	world   *ecs.World
	bus     *event.Bus
	spawner Spawner
	quit    bool
	log     *zap.Logger
}

// New subscribes the controller to bus and installs its frame hook on w.
func New(w *ecs.World, bus *event.Bus, spawner Spawner, log *zap.Logger) *Controller {
	c := &Controller{world: w, bus: bus, spawner: spawner, log: log.Named("control")}

	event.Subscribe(bus, c.onTogglePause)
	event.Subscribe(bus, c.onStep)
	event.Subscribe(bus, c.onSpawn)
	event.Subscribe(bus, c.onQuit)
	w.AddFrameHook(c.frame)
	return c
}

// QuitRequested reports whether a Quit command has been applied.
func (c *Controller) QuitRequested() bool { return c.quit }

// Command helpers for input surfaces. Safe to call from any goroutine.
func (c *Controller) TogglePause() { event.Emit(c.bus, event.TogglePause{}) }
func (c *Controller) Step()        { event.Emit(c.bus, event.StepOnce{}) }
func (c *Controller) Spawn(count, predators int) {
	event.Emit(c.bus, event.Spawn{Count: count, Predators: predators})
}
func (c *Controller) Quit() { event.Emit(c.bus, event.Quit{}) }

func (c *Controller) frame(_ *ecs.World) error {
	c.bus.SwapBuffers()
	return c.bus.DispatchAll()
}

func (c *Controller) onTogglePause(event.TogglePause) error {
	c.world.Pause()
	return nil
}

// onStep only acts while paused; a running world ticks this frame anyway.
func (c *Controller) onStep(event.StepOnce) error {
	if c.world.Running() {
		c.log.Debug("step ignored while running", zap.Uint64("tick", c.world.Ticks()))
		return nil
	}
	if err := c.world.Step(); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	return nil
}

func (c *Controller) onSpawn(ev event.Spawn) error {
	if ev.Count <= 0 {
		return nil
	}
	predators := min(ev.Predators, ev.Count)
	if err := c.world.AddEntities(c.spawner.Boids(ev.Count, predators)...); err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	c.log.Info("boids spawned",
		zap.Int("count", ev.Count),
		zap.Int("predators", predators),
		zap.Int("population", len(c.world.Entities())))
	return nil
}

func (c *Controller) onQuit(event.Quit) error {
	c.quit = true
	return nil
}
