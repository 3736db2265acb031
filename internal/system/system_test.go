package system

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/flock"
	"github.com/flockworks/boids/internal/physics"
	"github.com/flockworks/boids/internal/render"
	"github.com/flockworks/boids/internal/vmath"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	set      *component.Set
	clock    *fakeClock
	world    *ecs.World
	recorder *render.Recorder
}

func newHarness(t *testing.T, params flock.Params) *harness {
	t.Helper()
	set, err := component.Register(ecs.NewRegistry())
	require.NoError(t, err)
	h := &harness{
		set:      set,
		clock:    &fakeClock{t: time.Unix(1_700_000_000, 0)},
		recorder: render.NewRecorder(),
	}
	h.world = ecs.NewWorld(
		ecs.WithClock(h.clock.Now),
		ecs.WithGlobal(GlobalBounds, params.Bounds),
	)
	require.NoError(t, h.world.AddSystems(
		NewControlSystem(set),
		NewPhysicsSystem(set),
		NewFlockingSystem(set, params),
		NewRenderSystem(set, h.recorder),
	))
	return h
}

func (h *harness) boid(t *testing.T, pos, vel vmath.Vec2, predator bool) *ecs.Entity {
	t.Helper()
	e := ecs.NewEntity(h.set.BoidArchetype()...)
	p, err := ecs.Get[component.Position](e, h.set.Position)
	require.NoError(t, err)
	p.Pos = pos
	v, err := ecs.Get[component.Velocity](e, h.set.Velocity)
	require.NoError(t, err)
	v.Vel = vel
	b, err := ecs.Get[component.Boid](e, h.set.Boid)
	require.NoError(t, err)
	b.Predator = predator
	return e
}

func state(t *testing.T, set *component.Set, e *ecs.Entity) (component.Position, component.Velocity) {
	t.Helper()
	p, err := ecs.Get[component.Position](e, set.Position)
	require.NoError(t, err)
	v, err := ecs.Get[component.Velocity](e, set.Velocity)
	require.NoError(t, err)
	return *p, *v
}

func TestTwoBoidsOneSecond(t *testing.T) {
	params := flock.DefaultParams()
	params.Bounds = physics.NewBounds(400, 400)
	h := newHarness(t, params)

	a := h.boid(t, vmath.V(0, 0), vmath.V(30, -15), false)
	b := h.boid(t, vmath.V(0, 200), vmath.V(30, 0), false)
	require.NoError(t, h.world.AddEntities(a, b))

	h.clock.Advance(time.Second)
	require.NoError(t, h.world.Tick())
	assert.Equal(t, time.Second, h.world.DeltaTime())

	// both sit in the x-min margin: +1.3 on x, then clamp to 25
	wantA := vmath.V(31.3, -15).WithLen(25)
	pa, va := state(t, h.set, a)
	assert.InDelta(t, 25.0, va.Vel.Len(), 1e-6)
	assert.True(t, va.Vel.Approx(wantA, 1e-9), "got %v want %v", va.Vel, wantA)
	// y went negative and wrapped to the far edge
	assert.InDelta(t, wantA.X, pa.Pos.X, 1e-9)
	assert.Equal(t, 399.0, pa.Pos.Y)

	pb, vb := state(t, h.set, b)
	assert.InDelta(t, 25.0, vb.Vel.Len(), 1e-6)
	assert.Equal(t, vmath.V(25, 0), vb.Vel)
	assert.Equal(t, vmath.V(25, 200), pb.Pos)
	assert.InDelta(t, 0.0, pb.Rot, 1e-12)

	require.Len(t, h.recorder.Segments, 2)
	seg := h.recorder.Segments[1]
	assert.Equal(t, vmath.V(25, 200), seg.From)
	assert.True(t, seg.To.Approx(vmath.V(33, 200), 1e-9), "got %v", seg.To)
}

func TestFlockingDistanceTableCoversMatchedBoids(t *testing.T) {
	h := newHarness(t, flock.DefaultParams())
	require.NoError(t, h.world.AddEntities(
		h.boid(t, vmath.V(100, 100), vmath.V(1, 0), false),
		h.boid(t, vmath.V(110, 100), vmath.V(1, 0), false),
		h.boid(t, vmath.V(120, 100), vmath.V(1, 0), true),
		ecs.NewEntity(h.set.DrifterArchetype()...),
	))
	h.clock.Advance(33 * time.Millisecond)
	require.NoError(t, h.world.Tick())

	fs := h.world.Systems()[2].(*FlockingSystem)
	assert.Equal(t, 3, fs.Table().Len(), "drifters are not part of the flock")
	d, ok := fs.Table().Dist(1, 2)
	require.True(t, ok)
	assert.InDelta(t, 10.0, d, 1e-12)
	assert.Len(t, h.world.Matched(fs), 3)
}

func TestFlockingSpeedAfterUpdate(t *testing.T) {
	h := newHarness(t, flock.DefaultParams())
	var prey []*ecs.Entity
	for i := 0; i < 12; i++ {
		e := h.boid(t, vmath.V(150+float64(i%4)*9, 150+float64(i/4)*9), vmath.V(float64(i), 3), i == 11)
		if i != 11 {
			prey = append(prey, e)
		}
		require.NoError(t, h.world.AddEntities(e))
	}
	h.clock.Advance(33 * time.Millisecond)
	require.NoError(t, h.world.Tick())
	for _, e := range prey {
		_, v := state(t, h.set, e)
		assert.InDelta(t, 25.0, v.Vel.Len(), 1e-6, "entity %d", e.ID())
	}
}

func TestPhysicsSystemMovesDrifters(t *testing.T) {
	h := newHarness(t, flock.DefaultParams())
	d := ecs.NewEntity(h.set.DrifterArchetype()...)
	p, _ := ecs.Get[component.Position](d, h.set.Position)
	p.Pos = vmath.V(395, 10)
	v, _ := ecs.Get[component.Velocity](d, h.set.Velocity)
	v.Vel = vmath.V(10, 0)
	require.NoError(t, h.world.AddEntities(d))

	h.clock.Advance(time.Second)
	require.NoError(t, h.world.Tick())

	pos, vel := state(t, h.set, d)
	assert.Equal(t, vmath.V(1, 10), pos.Pos, "wrapped, not clamped")
	assert.Equal(t, vmath.V(10, 0), vel.Vel, "no steering, no clamp")
}

func TestControlSystemSpinsLines(t *testing.T) {
	h := newHarness(t, flock.DefaultParams())
	line := ecs.NewEntity(h.set.LineArchetype()...)
	s, _ := ecs.Get[component.Spin](line, h.set.Spin)
	s.DegPerSec = -90
	p, _ := ecs.Get[component.Position](line, h.set.Position)
	p.Pos = vmath.V(100, 100)
	p.Dir = vmath.V(100, 0)
	require.NoError(t, h.world.AddEntities(line))

	h.clock.Advance(time.Second)
	require.NoError(t, h.world.Tick())
	assert.InDelta(t, 270.0, p.Rot, 1e-9)

	require.Len(t, h.recorder.Segments, 1)
	seg := h.recorder.Segments[0]
	assert.True(t, seg.To.Approx(vmath.V(100, 0), 1e-9), "got %v", seg.To)

	h.clock.Advance(4 * time.Second)
	require.NoError(t, h.world.Tick())
	assert.InDelta(t, 270.0, p.Rot, 1e-9)
}

func TestRenderSkipsInvisibleAndClears(t *testing.T) {
	h := newHarness(t, flock.DefaultParams())
	shown := ecs.NewEntity(h.set.LineArchetype()...)
	hidden := ecs.NewEntity(h.set.LineArchetype()...)
	r, _ := ecs.Get[component.Renderable](hidden, h.set.Renderable)
	r.Visible = false
	rs, _ := ecs.Get[component.Renderable](shown, h.set.Renderable)
	rs.Color = color.RGBA{R: 200, A: 255}
	rs.Width = 3
	require.NoError(t, h.world.AddEntities(shown, hidden))

	require.NoError(t, h.world.Tick())
	require.NoError(t, h.world.Tick())

	assert.Equal(t, 2, h.recorder.Clears)
	require.Len(t, h.recorder.Segments, 1)
	assert.Equal(t, rs.Color, h.recorder.Segments[0].Color)
	assert.Equal(t, 3.0, h.recorder.Segments[0].Width)
}

func TestSystemsNeedBounds(t *testing.T) {
	set, err := component.Register(ecs.NewRegistry())
	require.NoError(t, err)
	w := ecs.NewWorld()
	assert.ErrorIs(t, w.AddSystems(NewFlockingSystem(set, flock.DefaultParams())), errNoBounds)
	assert.ErrorIs(t, w.AddSystems(NewPhysicsSystem(set)), errNoBounds)
}

func TestFlockingRejectsBadParams(t *testing.T) {
	set, err := component.Register(ecs.NewRegistry())
	require.NoError(t, err)
	w := ecs.NewWorld(ecs.WithGlobal(GlobalBounds, physics.NewBounds(100, 100)))
	p := flock.DefaultParams()
	p.SeparationRadius = 50
	assert.Error(t, w.AddSystems(NewFlockingSystem(set, p)))
}

func TestCensus(t *testing.T) {
	h := newHarness(t, flock.DefaultParams())
	require.NoError(t, h.world.AddEntities(
		h.boid(t, vmath.V(10, 10), vmath.V(1, 0), false),
		h.boid(t, vmath.V(20, 10), vmath.V(1, 0), true),
		ecs.NewEntity(h.set.LineArchetype()...),
	))
	st := Census(h.world, h.set)
	assert.Equal(t, 3, st.Entities)
	assert.Equal(t, 2, st.Boids)
	assert.Equal(t, 1, st.Predators)
	assert.False(t, st.Running)
}
