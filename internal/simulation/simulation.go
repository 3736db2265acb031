// Package simulation assembles the world, its systems, the population and
// the control surface from configuration. Drivers only supply a drawing
// surface and a pulse source.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/config"
	"github.com/flockworks/boids/internal/control"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/core/event"
	"github.com/flockworks/boids/internal/render"
	"github.com/flockworks/boids/internal/scenario"
	"github.com/flockworks/boids/internal/scripting"
	"github.com/flockworks/boids/internal/system"
)

// errStop ends Run without reporting a failure.
var errStop = errors.New("simulation: stop")

type Simulation struct {
	cfg    *config.Config
	set    *component.Set
	world  *ecs.World
	ctrl   *control.Controller
	script *scripting.Engine // nil without [script] path
	hud    *render.HUD
	log    *zap.Logger

	frames int // frames handled so far
	limit  int
	report bool // periodic stats logging, on under Run
}

// Option adjusts the world before systems are added.
type Option = ecs.WorldOption

// New builds a ready-to-run simulation drawing onto surface. Frame hooks
// run in this order: control commands, script, run bookkeeping.
func New(cfg *config.Config, surface render.Surface, log *zap.Logger, opts ...Option) (*Simulation, error) {
	bounds := cfg.Simulation.Bounds()
	params := cfg.Flocking.Params(bounds)

	set, err := component.Register(ecs.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("register components: %w", err)
	}

	worldOpts := []ecs.WorldOption{
		ecs.WithLogger(log),
		ecs.WithNominalFrame(cfg.Simulation.NominalFrame),
		ecs.WithGlobal(system.GlobalBounds, bounds),
	}
	w := ecs.NewWorld(append(worldOpts, opts...)...)

	// Order matters: lines spin, drifters move, boids flock, then draw.
	if err := w.AddSystems(
		system.NewControlSystem(set),
		system.NewPhysicsSystem(set),
		system.NewFlockingSystem(set, params),
		system.NewRenderSystem(set, surface),
	); err != nil {
		return nil, fmt.Errorf("add systems: %w", err)
	}

	spawner := scenario.NewSpawner(set, bounds,
		scenario.Range{Min: cfg.Simulation.SpawnSpeedMin, Max: cfg.Simulation.SpawnSpeedMax},
		scenario.NewRand(cfg.Simulation.Seed))

	population, err := populate(cfg.Scenario, spawner)
	if err != nil {
		return nil, err
	}
	if err := w.AddEntities(population...); err != nil {
		return nil, fmt.Errorf("add population: %w", err)
	}

	tag, err := language.Parse(cfg.Render.Language)
	if err != nil {
		log.Warn("unknown HUD language, using English", zap.String("language", cfg.Render.Language))
		tag = language.English
	}

	s := &Simulation{
		cfg:   cfg,
		set:   set,
		world: w,
		ctrl:  control.New(w, event.NewBus(), spawner, log),
		hud:   render.NewHUD(tag),
		log:   log,
	}

	if cfg.Script.Path != "" {
		s.script = scripting.NewEngine(w, s.ctrl, log)
		if err := s.script.LoadPath(cfg.Script.Path); err != nil {
			s.script.Close()
			return nil, err
		}
		w.AddFrameHook(s.script.Hook)
	}
	w.AddFrameHook(s.bookkeeping)

	log.Info("simulation ready",
		zap.Int("entities", len(w.Entities())),
		zap.Float64("bound_x", bounds.Max.X),
		zap.Float64("bound_y", bounds.Max.Y),
		zap.Bool("script", s.script != nil))
	return s, nil
}

func populate(cfg config.ScenarioConfig, spawner *scenario.Spawner) ([]*ecs.Entity, error) {
	if cfg.Path == "" {
		return spawner.Boids(cfg.Boids, cfg.Predators), nil
	}
	sc, err := scenario.Load(cfg.Path)
	if err != nil {
		return nil, err
	}
	ents, err := spawner.Populate(sc)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", cfg.Path, err)
	}
	return ents, nil
}

func (s *Simulation) World() *ecs.World               { return s.world }
func (s *Simulation) Controller() *control.Controller { return s.ctrl }
func (s *Simulation) Components() *component.Set      { return s.set }

// SpawnBatch is how many boids one spawn key press adds.
func (s *Simulation) SpawnBatch() int { return s.cfg.Simulation.SpawnBatch }

func (s *Simulation) Stats() render.Stats { return system.Census(s.world, s.set) }

// Status is the HUD line for the current state.
func (s *Simulation) Status() string { return s.hud.Line(s.Stats()) }

// Frame handles one pulse for drivers that own their loop. done reports
// that a quit was requested.
func (s *Simulation) Frame() (done bool, err error) {
	if err := s.world.Frame(); err != nil {
		if errors.Is(err, errStop) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// Run drives the world from pulses until quit, ctx cancellation, the pulse
// channel closing, or limit frames have ticked (0 = no limit).
func (s *Simulation) Run(ctx context.Context, pulses <-chan time.Time, limit int) error {
	s.limit, s.report = limit, true
	err := s.world.Run(ctx, pulses)
	switch {
	case errors.Is(err, errStop), errors.Is(err, context.Canceled):
		err = nil
	}
	s.log.Info("simulation stopped",
		zap.Int("frames", s.frames),
		zap.Uint64("ticks", s.world.Ticks()),
		zap.Int("entities", len(s.world.Entities())))
	return err
}

// bookkeeping ends the run and logs periodic stats.
func (s *Simulation) bookkeeping(w *ecs.World) error {
	if s.ctrl.QuitRequested() {
		return errStop
	}
	if s.limit > 0 && s.frames >= s.limit {
		return errStop
	}
	s.frames++
	if every := s.statsEvery(); s.report && every > 0 && s.frames%every == 0 {
		st := s.Stats()
		s.log.Info("stats",
			zap.Uint64("tick", st.Tick),
			zap.Int("boids", st.Boids),
			zap.Int("predators", st.Predators),
			zap.Duration("dt", st.Delta),
			zap.Bool("running", st.Running))
	}
	return nil
}

// statsEvery is roughly one second of pulses.
func (s *Simulation) statsEvery() int {
	return int(time.Second / s.cfg.Simulation.FrameInterval)
}

func (s *Simulation) Close() {
	if s.script != nil {
		s.script.Close()
	}
}
