package ecs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FrameHook runs once per clock pulse before the tick, outside the sweep.
// It is the only place where the population may change while running.
type FrameHook func(w *World) error

type slot struct {
	system  System
	matched []*Entity
}

// World owns systems, entities and the tick clock. It is single-threaded:
// every method must be called from the loop goroutine.
type World struct {
	slots    []*slot
	entities []*Entity
	byID     map[EntityID]*Entity
	nextID   EntityID
	globals  map[string]any
	clock    clock
	running  bool
	ticking  bool
	ticks    uint64
	hooks    []FrameHook
	log      *zap.Logger
}

type WorldOption func(*World)

// WithClock overrides the time source (default time.Now).
func WithClock(now func() time.Time) WorldOption {
	return func(w *World) {
		if now != nil {
			nominal := w.clock.nominal
			w.clock = newClock(now)
			w.clock.nominal = nominal
		}
	}
}

// WithNominalFrame overrides the post-resume delta.
func WithNominalFrame(d time.Duration) WorldOption {
	return func(w *World) {
		if d > 0 {
			w.clock.nominal = d
		}
	}
}

func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithGlobal seeds one configuration value visible to systems at setup.
func WithGlobal(key string, value any) WorldOption {
	return func(w *World) {
		w.globals[key] = value
	}
}

func NewWorld(opts ...WorldOption) *World {
	w := &World{
		slots:    make([]*slot, 0, 8),
		entities: make([]*Entity, 0, 256),
		byID:     make(map[EntityID]*Entity, 256),
		globals:  make(map[string]any),
		clock:    newClock(time.Now),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Logger() *zap.Logger { return w.log }

// GlobalAs returns the configuration value under key if it has type T.
func GlobalAs[T any](w *World, key string) (T, bool) {
	v, ok := w.globals[key].(T)
	return v, ok
}

// AddSystems constructs each system with the world and appends it.
// Registration order is execution order.
func (w *World) AddSystems(factories ...SystemFactory) error {
	if w.ticking {
		return ErrTickInProgress
	}
	for _, f := range factories {
		s, err := f(w)
		if err != nil {
			return fmt.Errorf("construct system: %w", err)
		}
		if s == nil {
			return ErrNilSystem
		}
		sl := &slot{system: s}
		sl.rematch(w.entities)
		w.slots = append(w.slots, sl)
		w.log.Debug("system added",
			zap.String("system", s.Name()),
			zap.Int("order", len(w.slots)-1),
			zap.Int("matched", len(sl.matched)))
	}
	return nil
}

// AddEntities assigns ids in order, appends the entities and recomputes
// every match cache. The batch is all-or-nothing: a nil entity, one that
// is already inserted, or one listed twice rejects the whole call.
func (w *World) AddEntities(entities ...*Entity) error {
	if w.ticking {
		return ErrTickInProgress
	}
	seen := make(map[*Entity]struct{}, len(entities))
	for i, e := range entities {
		if e == nil {
			return fmt.Errorf("%w: position %d", ErrNilEntity, i)
		}
		if !e.id.IsZero() {
			return fmt.Errorf("%w: %d", ErrEntityInserted, e.id)
		}
		if _, dup := seen[e]; dup {
			return fmt.Errorf("%w: listed twice in one batch", ErrEntityInserted)
		}
		seen[e] = struct{}{}
	}
	for _, e := range entities {
		w.nextID++
		e.id = w.nextID
		w.entities = append(w.entities, e)
		w.byID[e.id] = e
	}
	for _, sl := range w.slots {
		sl.rematch(w.entities)
	}
	w.log.Debug("entities added", zap.Int("added", len(entities)), zap.Int("total", len(w.entities)))
	return nil
}

func (sl *slot) rematch(entities []*Entity) {
	req := MaskOf(sl.system.Requires()...)
	sl.matched = sl.matched[:0]
	for _, e := range entities {
		if e.mask.Contains(req) {
			sl.matched = append(sl.matched, e)
		}
	}
}

// Entities returns all entities in insertion order. The slice is owned by
// the world and must not be modified.
func (w *World) Entities() []*Entity { return w.entities }

func (w *World) Entity(id EntityID) (*Entity, bool) {
	e, ok := w.byID[id]
	return e, ok
}

// Systems returns the systems in execution order.
func (w *World) Systems() []System {
	out := make([]System, len(w.slots))
	for i, sl := range w.slots {
		out[i] = sl.system
	}
	return out
}

// Matched returns the match cache of s, or nil if s is not registered.
func (w *World) Matched(s System) []*Entity {
	for _, sl := range w.slots {
		if sl.system == s {
			return sl.matched
		}
	}
	return nil
}

func (w *World) DeltaTime() time.Duration { return w.clock.deltaTime }
func (w *World) LastTime() time.Time      { return w.clock.lastTime }
func (w *World) Ticks() uint64            { return w.ticks }
func (w *World) Running() bool            { return w.running }

// Tick advances the clock and runs one full sweep: for each system in
// order, BeforeTick once, then OnEntity for each matched entity. The
// first error aborts the sweep.
func (w *World) Tick() error {
	if w.ticking {
		return ErrTickInProgress
	}
	w.clock.advance()
	w.ticking = true
	defer func() { w.ticking = false }()
	w.ticks++

	for _, sl := range w.slots {
		s := sl.system
		if err := s.BeforeTick(w); err != nil {
			return fmt.Errorf("tick %d: %s: before tick: %w", w.ticks, s.Name(), err)
		}
		for _, e := range sl.matched {
			if err := s.OnEntity(w, e); err != nil {
				return fmt.Errorf("tick %d: %s: %w", w.ticks, s.Name(), err)
			}
		}
	}
	return nil
}

// AddFrameHook registers fn to run on every pulse before the tick.
func (w *World) AddFrameHook(fn FrameHook) {
	w.hooks = append(w.hooks, fn)
}

// Frame handles one external clock pulse: frame hooks, then a tick if
// the world is running.
func (w *World) Frame() error {
	for _, h := range w.hooks {
		if err := h(w); err != nil {
			return fmt.Errorf("frame hook: %w", err)
		}
	}
	if !w.running {
		return nil
	}
	return w.Tick()
}

// Start marks the world running without waiting for a pulse. A stale
// baseline is replaced as on resume.
func (w *World) Start() {
	if w.running {
		return
	}
	w.clock.rebase()
	w.running = true
	w.log.Info("simulation started", zap.Int("entities", len(w.entities)))
}

// Pause toggles running. Resuming rebases the clock so the next tick sees
// one nominal frame instead of the paused wall-clock gap. A tick already
// in progress is not interrupted.
func (w *World) Pause() {
	if w.running {
		w.running = false
		w.log.Info("simulation paused", zap.Uint64("tick", w.ticks))
		return
	}
	w.clock.rebase()
	w.running = true
	w.log.Info("simulation resumed", zap.Uint64("tick", w.ticks))
}

// Step forces one tick, typically while paused.
func (w *World) Step() error {
	if !w.running {
		w.clock.rebase()
	}
	return w.Tick()
}

// Run starts the world and handles pulses until ctx is done, the pulse
// channel closes, or a tick fails. While paused, pulses still run frame
// hooks so control input can resume the world.
func (w *World) Run(ctx context.Context, pulses <-chan time.Time) error {
	w.Start()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-pulses:
			if !ok {
				return nil
			}
			if err := w.Frame(); err != nil {
				return err
			}
		}
	}
}
