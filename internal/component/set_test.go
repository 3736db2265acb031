package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/vmath"
)

func TestRegister(t *testing.T) {
	reg := ecs.NewRegistry()
	set, err := Register(reg)
	require.NoError(t, err)
	assert.Equal(t, 6, reg.Len())

	c, ok := reg.Lookup(NameBoid)
	require.True(t, ok)
	assert.Same(t, set.Boid, c)

	_, err = Register(reg)
	assert.ErrorIs(t, err, ecs.ErrDuplicateComponent)
}

func TestArchetypesBuildIndependentState(t *testing.T) {
	set, err := Register(ecs.NewRegistry())
	require.NoError(t, err)

	a := ecs.NewEntity(set.BoidArchetype()...)
	b := ecs.NewEntity(set.BoidArchetype()...)

	pa, err := ecs.Get[Position](a, set.Position)
	require.NoError(t, err)
	pb, err := ecs.Get[Position](b, set.Position)
	require.NoError(t, err)
	pa.Pos = vmath.V(10, 10)
	pa.Dir.X = 99
	assert.Equal(t, vmath.Vec2{}, pb.Pos)
	assert.Equal(t, 8.0, pb.Dir.X)

	r, err := ecs.Get[Renderable](b, set.Renderable)
	require.NoError(t, err)
	assert.True(t, r.Visible)
	assert.Equal(t, DefaultColor, r.Color)

	assert.True(t, a.Has(set.Boid))
	assert.False(t, a.Has(set.Drift))
	assert.True(t, ecs.NewEntity(set.LineArchetype()...).Has(set.Spin))
	assert.True(t, ecs.NewEntity(set.DrifterArchetype()...).Has(set.Drift))
}
