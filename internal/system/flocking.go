package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/flock"
)

// FlockingSystem steers and moves every boid. BeforeTick snapshots
// references to the live position/velocity state of all matched boids and
// rebuilds the distance table; OnEntity runs the flocking rules for one
// boid and integrates it in place.
type FlockingSystem struct {
	ecs.Base
	set    *component.Set
	params flock.Params
	table  *flock.DistanceTable
	boids  []flock.Boid
	index  map[ecs.EntityID]int
	log    *zap.Logger
}

// NewFlockingSystem reads the field bounds from the world at construction;
// params.Bounds is replaced by them.
func NewFlockingSystem(set *component.Set, params flock.Params) ecs.SystemFactory {
	return func(w *ecs.World) (ecs.System, error) {
		b, err := boundsOf(w)
		if err != nil {
			return nil, err
		}
		params.Bounds = b
		if err := params.Validate(); err != nil {
			return nil, err
		}
		return &FlockingSystem{
			Base:   ecs.NewBase("flocking", set.Position, set.Velocity, set.Boid),
			set:    set,
			params: params,
			table:  flock.NewDistanceTable(),
			boids:  make([]flock.Boid, 0, 256),
			index:  make(map[ecs.EntityID]int, 256),
			log:    w.Logger().Named("flocking"),
		}, nil
	}
}

func (s *FlockingSystem) Params() flock.Params        { return s.params }
func (s *FlockingSystem) Table() *flock.DistanceTable { return s.table }

func (s *FlockingSystem) BeforeTick(w *ecs.World) error {
	s.boids = s.boids[:0]
	clear(s.index)
	for _, e := range w.Matched(s) {
		pos, err := ecs.Get[component.Position](e, s.set.Position)
		if err != nil {
			return err
		}
		vel, err := ecs.Get[component.Velocity](e, s.set.Velocity)
		if err != nil {
			return err
		}
		b, err := ecs.Get[component.Boid](e, s.set.Boid)
		if err != nil {
			return err
		}
		s.index[e.ID()] = len(s.boids)
		s.boids = append(s.boids, flock.Boid{ID: e.ID(), Pos: &pos.Pos, Vel: &vel.Vel, Predator: b.Predator})
	}
	s.table.Rebuild(s.boids)
	return nil
}

func (s *FlockingSystem) OnEntity(w *ecs.World, e *ecs.Entity) error {
	i, ok := s.index[e.ID()]
	if !ok {
		return fmt.Errorf("flocking: entity %d missing from this tick's snapshot", e.ID())
	}
	n := flock.Update(i, s.boids, s.table, w.DeltaTime(), s.params)
	if s.log.Core().Enabled(zap.DebugLevel) && s.boids[i].Predator && len(n.Cohesion) > 0 {
		s.log.Debug("predator hunting",
			zap.Uint64("entity", uint64(e.ID())),
			zap.Uint64("target", uint64(s.boids[n.Cohesion[0]].ID)))
	}

	pos, err := ecs.Get[component.Position](e, s.set.Position)
	if err != nil {
		return err
	}
	pos.Rot = s.boids[i].Vel.HeadingDeg()
	return nil
}
