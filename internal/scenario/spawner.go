package scenario

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/physics"
	"github.com/flockworks/boids/internal/vmath"
)

// PredatorColor strokes predators whose flock names no color.
var PredatorColor = color.RGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}

// NewRand returns a generator for seed; seed 0 picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawner builds fully initialized entities. Boids uses the default speed
// range across the whole field; scenario flocks override both.
type Spawner struct {
	rng    *rand.Rand
	set    *component.Set
	bounds physics.Bounds
	speed  Range
}

func NewSpawner(set *component.Set, bounds physics.Bounds, speed Range, rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng, set: set, bounds: bounds, speed: speed}
}

// Boids returns count boids anywhere in the field; the first predators of
// them hunt.
func (s *Spawner) Boids(count, predators int) []*ecs.Entity {
	return s.flock(Flock{Count: count, Predators: predators, Speed: s.speed},
		component.DefaultColor, PredatorColor)
}

// Populate builds every entity sc describes: flocks, then lines, then
// drifters.
func (s *Spawner) Populate(sc *Scenario) ([]*ecs.Entity, error) {
	out := make([]*ecs.Entity, 0, sc.Population())
	for i, f := range sc.Flocks {
		prey, err := ParseColor(f.Color, component.DefaultColor)
		if err != nil {
			return nil, fmt.Errorf("flocks[%d]: %w", i, err)
		}
		hunter, err := ParseColor(f.PredatorColor, PredatorColor)
		if err != nil {
			return nil, fmt.Errorf("flocks[%d]: %w", i, err)
		}
		out = append(out, s.flock(f, prey, hunter)...)
	}
	for i, l := range sc.Lines {
		c, err := ParseColor(l.Color, component.DefaultColor)
		if err != nil {
			return nil, fmt.Errorf("lines[%d]: %w", i, err)
		}
		out = append(out, s.line(l, c))
	}
	for i, d := range sc.Drifters {
		c, err := ParseColor(d.Color, component.DefaultColor)
		if err != nil {
			return nil, fmt.Errorf("drifters[%d]: %w", i, err)
		}
		for range d.Count {
			out = append(out, s.drifter(d, c))
		}
	}
	return out, nil
}

func (s *Spawner) flock(f Flock, prey, hunter color.RGBA) []*ecs.Entity {
	out := make([]*ecs.Entity, f.Count)
	for i := range out {
		e := ecs.NewEntity(s.set.BoidArchetype()...)
		predator := i < f.Predators
		pos, vel := s.place(f.Region), s.velocity(f.Speed)

		mustGet[component.Boid](e, s.set.Boid).Predator = predator
		p := mustGet[component.Position](e, s.set.Position)
		p.Pos, p.Rot = pos, vel.HeadingDeg()
		mustGet[component.Velocity](e, s.set.Velocity).Vel = vel
		r := mustGet[component.Renderable](e, s.set.Renderable)
		r.Color = prey
		if predator {
			r.Color = hunter
		}
		out[i] = e
	}
	return out
}

func (s *Spawner) line(l Line, c color.RGBA) *ecs.Entity {
	e := ecs.NewEntity(s.set.LineArchetype()...)
	p := mustGet[component.Position](e, s.set.Position)
	p.Pos = vmath.V(l.Pos.X, l.Pos.Y)
	if l.Dir != (Point{}) {
		p.Dir = vmath.V(l.Dir.X, l.Dir.Y)
	}
	p.Rot = l.Rot
	mustGet[component.Spin](e, s.set.Spin).DegPerSec = l.Spin
	mustGet[component.Renderable](e, s.set.Renderable).Color = c
	return e
}

func (s *Spawner) drifter(d Drifters, c color.RGBA) *ecs.Entity {
	e := ecs.NewEntity(s.set.DrifterArchetype()...)
	vel := s.velocity(d.Speed)
	p := mustGet[component.Position](e, s.set.Position)
	p.Pos, p.Rot = s.place(d.Region), vel.HeadingDeg()
	mustGet[component.Velocity](e, s.set.Velocity).Vel = vel
	mustGet[component.Renderable](e, s.set.Renderable).Color = c
	return e
}

// place picks a uniform point in r clipped to the field.
func (s *Spawner) place(r Rect) vmath.Vec2 {
	lo, hi := s.bounds.Min, s.bounds.Max
	if !r.IsZero() {
		lo = vmath.V(max(lo.X, r.X), max(lo.Y, r.Y))
		hi = vmath.V(min(hi.X, r.X+r.W), min(hi.Y, r.Y+r.H))
	}
	return vmath.V(s.between(lo.X, hi.X), s.between(lo.Y, hi.Y))
}

// velocity picks a uniform heading and a speed in r.
func (s *Spawner) velocity(r Range) vmath.Vec2 {
	speed := s.between(r.Min, r.Max)
	angle := s.rng.Float64() * 2 * math.Pi
	return vmath.V(math.Cos(angle), math.Sin(angle)).Scale(speed)
}

func (s *Spawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// mustGet is safe here: every archetype carries the components it is
// asked for.
func mustGet[T any](e *ecs.Entity, c *ecs.Component) *T {
	v, err := ecs.Get[T](e, c)
	if err != nil {
		panic(err)
	}
	return v
}
