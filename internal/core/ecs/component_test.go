package ecs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y float64 }

type flockState struct {
	Pos     point
	Trail   []point
	Tags    map[string]bool
	Leader  *point
	Weights [2]float64
}

func TestDefineFactoryIndependence(t *testing.T) {
	reg := NewRegistry()
	tmpl := flockState{
		Pos:    point{1, 2},
		Trail:  []point{{0, 0}},
		Tags:   map[string]bool{"prey": true},
		Leader: &point{5, 5},
	}
	c, err := Define(reg, "flock", tmpl)
	require.NoError(t, err)

	a := NewEntity(c)
	b := NewEntity(c)
	sa, err := Get[flockState](a, c)
	require.NoError(t, err)
	sb, err := Get[flockState](b, c)
	require.NoError(t, err)

	sa.Pos.X = 99
	sa.Trail[0].X = 99
	sa.Trail = append(sa.Trail, point{7, 7})
	sa.Tags["prey"] = false
	sa.Leader.Y = 99
	sa.Weights[1] = 99

	assert.Equal(t, 1.0, sb.Pos.X)
	assert.Equal(t, 0.0, sb.Trail[0].X)
	assert.Len(t, sb.Trail, 1)
	assert.True(t, sb.Tags["prey"])
	assert.Equal(t, 5.0, sb.Leader.Y)
	assert.Equal(t, 0.0, sb.Weights[1])

	// the template itself is untouched too
	assert.Equal(t, 0.0, tmpl.Trail[0].X)
	assert.True(t, tmpl.Tags["prey"])
	assert.Equal(t, 5.0, tmpl.Leader.Y)
	assert.NotSame(t, sa, sb)
}

type hiddenState struct {
	tags  map[string]bool
	trail []point
	count int
}

func TestDefineCopiesUnexportedState(t *testing.T) {
	reg := NewRegistry()
	c, err := Define(reg, "hidden", hiddenState{
		tags:  map[string]bool{"x": true},
		trail: []point{{1, 1}},
		count: 3,
	})
	require.NoError(t, err)

	sa, err := Get[hiddenState](NewEntity(c), c)
	require.NoError(t, err)
	sb, err := Get[hiddenState](NewEntity(c), c)
	require.NoError(t, err)

	sa.tags["x"] = false
	sa.trail[0].X = 99
	sa.count++

	assert.True(t, sb.tags["x"])
	assert.Equal(t, 1.0, sb.trail[0].X)
	assert.Equal(t, 3, sb.count, "unexported scalars keep the template value")
}

func TestDefineRejectsUncopyableTemplates(t *testing.T) {
	type withChan struct{ Events chan int }
	type withFunc struct{ inner struct{ onHit func() } }
	type nested struct{ Hooks map[string][]func() }
	type selfRef struct {
		Next *selfRef
		N    int
	}

	tests := []struct {
		name string
		def  func(*Registry) error
		want string
	}{
		{"channel", func(r *Registry) error { _, err := Define(r, "c", withChan{}); return err }, "Events"},
		{"unexported func", func(r *Registry) error { _, err := Define(r, "f", withFunc{}); return err }, "onHit"},
		{"func in map of slices", func(r *Registry) error { _, err := Define(r, "n", nested{}); return err }, "Hooks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := tt.def(reg)
			assert.ErrorIs(t, err, ErrUnsafeTemplate)
			assert.ErrorContains(t, err, tt.want)
			assert.Equal(t, 0, reg.Len(), "nothing registered")
		})
	}

	// recursive types are fine as long as every field is copyable
	reg := NewRegistry()
	c, err := Define(reg, "list", selfRef{Next: &selfRef{N: 2}, N: 1})
	require.NoError(t, err)
	s, err := Get[selfRef](NewEntity(c), c)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Next.N)
}

func TestDefineRejectsDuplicateNames(t *testing.T) {
	reg := NewRegistry()
	_, err := Define(reg, "position", point{})
	require.NoError(t, err)
	_, err = Define(reg, "position", point{})
	assert.ErrorIs(t, err, ErrDuplicateComponent)
	assert.Equal(t, 1, reg.Len())
}

func TestDefineAssignsSequentialIDs(t *testing.T) {
	reg := NewRegistry()
	a := MustDefine(reg, "a", point{})
	b := MustDefine(reg, "b", point{})
	assert.Equal(t, ComponentID(0), a.ID())
	assert.Equal(t, ComponentID(1), b.ID())

	got, ok := reg.Lookup("b")
	assert.True(t, ok)
	assert.Same(t, b, got)
}

func TestDefineLimit(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < maxComponents; i++ {
		MustDefine(reg, fmt.Sprintf("c%d", i), struct{}{})
	}
	_, err := Define(reg, "overflow", struct{}{})
	assert.ErrorIs(t, err, ErrTooManyComponents)
	assert.Panics(t, func() { MustDefine(reg, "again", struct{}{}) })
}

func TestGetErrors(t *testing.T) {
	reg := NewRegistry()
	pos := MustDefine(reg, "position", point{})
	vel := MustDefine(reg, "velocity", point{})
	tag := MustDefine(reg, "tag", "boid")

	e := NewEntity(pos, tag)

	_, err := Get[point](e, vel)
	assert.ErrorIs(t, err, ErrMissingComponent)

	_, err = Get[point](e, tag)
	assert.ErrorIs(t, err, ErrComponentType)

	s, err := Get[string](e, tag)
	require.NoError(t, err)
	assert.Equal(t, "boid", *s)

	assert.True(t, e.Has(pos))
	assert.False(t, e.Has(vel))
	assert.Equal(t, []string{"position", "tag"}, e.Components())
}

func TestMask(t *testing.T) {
	reg := NewRegistry()
	a := MustDefine(reg, "a", 0)
	b := MustDefine(reg, "b", 0)
	c := MustDefine(reg, "c", 0)

	ab := MaskOf(a, b)
	assert.Equal(t, 2, ab.Len())
	assert.True(t, ab.Has(a))
	assert.False(t, ab.Has(c))
	assert.True(t, MaskOf(a, b, c).Contains(ab))
	assert.False(t, ab.Contains(MaskOf(c)))
	assert.True(t, ab.Contains(0))
	assert.Equal(t, MaskOf(b, a), ab)
}
