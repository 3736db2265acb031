package scenario

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flockworks/boids/internal/component"
	"github.com/flockworks/boids/internal/core/ecs"
	"github.com/flockworks/boids/internal/physics"
	"github.com/flockworks/boids/internal/vmath"
)

const sample = `
name: sample
flocks:
  - count: 4
    predators: 1
    region: {x: 100, y: 100, w: 50, h: 50}
    speed: {min: 10, max: 20}
    color: "#3060c0"
lines:
  - pos: {x: 200, y: 200}
    dir: {x: 0, y: 30}
    rot: 45
    spin: 90
drifters:
  - count: 2
    speed: {min: 5, max: 5}
`

func newSpawner(t *testing.T) (*component.Set, *Spawner) {
	t.Helper()
	set, err := component.Register(ecs.NewRegistry())
	require.NoError(t, err)
	return set, NewSpawner(set, physics.NewBounds(400, 400), Range{Min: 0, Max: 25}, NewRand(7))
}

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "sample", sc.Name)
	require.Len(t, sc.Flocks, 1)
	assert.Equal(t, Rect{X: 100, Y: 100, W: 50, H: 50}, sc.Flocks[0].Region)
	assert.Equal(t, Point{X: 0, Y: 30}, sc.Lines[0].Dir)
	assert.Equal(t, 4+1+2, sc.Population())
}

func TestValidateCollectsErrors(t *testing.T) {
	_, err := Parse([]byte(`
flocks:
  - count: 2
    predators: 3
    speed: {min: 5, max: 1}
lines:
  - color: red
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flocks[0]: need 0 <= predators")
	assert.Contains(t, err.Error(), "flocks[0].speed")
	assert.Contains(t, err.Error(), "lines[0].color")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sc.Drifters, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "scenario: read")
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#102030", color.RGBA{})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	c, err = ParseColor("#10203040", color.RGBA{})
	require.NoError(t, err)
	assert.Equal(t, uint8(0x40), c.A)

	def := color.RGBA{R: 1}
	c, err = ParseColor("", def)
	require.NoError(t, err)
	assert.Equal(t, def, c)

	for _, bad := range []string{"102030", "#12345", "#zzzzzz"} {
		_, err := ParseColor(bad, def)
		assert.Error(t, err, bad)
	}
}

func TestPopulate(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)
	set, sp := newSpawner(t)

	ents, err := sp.Populate(sc)
	require.NoError(t, err)
	require.Len(t, ents, 7)

	predators := 0
	for _, e := range ents[:4] {
		assert.True(t, e.Has(set.Boid))
		b, _ := ecs.Get[component.Boid](e, set.Boid)
		p, _ := ecs.Get[component.Position](e, set.Position)
		v, _ := ecs.Get[component.Velocity](e, set.Velocity)
		r, _ := ecs.Get[component.Renderable](e, set.Renderable)
		if b.Predator {
			predators++
			assert.Equal(t, PredatorColor, r.Color)
		} else {
			assert.Equal(t, color.RGBA{R: 0x30, G: 0x60, B: 0xc0, A: 0xff}, r.Color)
		}
		assert.True(t, p.Pos.X >= 100 && p.Pos.X <= 150, "x %v", p.Pos.X)
		assert.True(t, p.Pos.Y >= 100 && p.Pos.Y <= 150, "y %v", p.Pos.Y)
		assert.InDelta(t, 15, v.Vel.Len(), 5+1e-9)
	}
	assert.Equal(t, 1, predators)

	line := ents[4]
	assert.True(t, line.Has(set.Spin))
	assert.False(t, line.Has(set.Velocity))
	lp, _ := ecs.Get[component.Position](line, set.Position)
	assert.Equal(t, vmath.V(200, 200), lp.Pos)
	assert.Equal(t, vmath.V(0, 30), lp.Dir)
	assert.Equal(t, 45.0, lp.Rot)
	sp2, _ := ecs.Get[component.Spin](line, set.Spin)
	assert.Equal(t, 90.0, sp2.DegPerSec)

	for _, e := range ents[5:] {
		assert.True(t, e.Has(set.Drift))
		v, _ := ecs.Get[component.Velocity](e, set.Velocity)
		assert.InDelta(t, 5, v.Vel.Len(), 1e-9)
	}
}

func TestBoidsSpawnsAcrossField(t *testing.T) {
	set, sp := newSpawner(t)
	bounds := physics.NewBounds(400, 400)

	ents := sp.Boids(20, 2)
	require.Len(t, ents, 20)
	for i, e := range ents {
		b, _ := ecs.Get[component.Boid](e, set.Boid)
		assert.Equal(t, i < 2, b.Predator)
		p, _ := ecs.Get[component.Position](e, set.Position)
		assert.True(t, bounds.Contains(p.Pos))
		v, _ := ecs.Get[component.Velocity](e, set.Velocity)
		assert.LessOrEqual(t, v.Vel.Len(), 25+1e-9)
	}
}

func TestSameSeedSameScenario(t *testing.T) {
	set, err := component.Register(ecs.NewRegistry())
	require.NoError(t, err)
	positions := func() []vmath.Vec2 {
		sp := NewSpawner(set, physics.NewBounds(400, 400), Range{Max: 25}, NewRand(42))
		var out []vmath.Vec2
		for _, e := range sp.Boids(5, 0) {
			p, _ := ecs.Get[component.Position](e, set.Position)
			out = append(out, p.Pos)
		}
		return out
	}
	assert.Equal(t, positions(), positions())
}
