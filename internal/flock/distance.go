package flock

import "github.com/flockworks/boids/internal/core/ecs"

type pairKey struct {
	lo, hi ecs.EntityID
}

func keyOf(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// DistanceTable holds the Euclidean distance of every unordered pair of
// boids, computed once per tick. Lookups are symmetric by construction.
type DistanceTable struct {
	d map[pairKey]float64
}

func NewDistanceTable() *DistanceTable {
	return &DistanceTable{d: make(map[pairKey]float64, 1024)}
}

// Rebuild discards the previous tick's table and scans all pairs. Cost is
// quadratic in len(boids).
func (t *DistanceTable) Rebuild(boids []Boid) {
	clear(t.d)
	for i := 0; i < len(boids); i++ {
		a := boids[i]
		for j := i + 1; j < len(boids); j++ {
			b := boids[j]
			t.d[keyOf(a.ID, b.ID)] = a.Pos.Dist(*b.Pos)
		}
	}
}

// Dist returns the distance between a and b. Self pairs and unknown ids
// report false.
func (t *DistanceTable) Dist(a, b ecs.EntityID) (float64, bool) {
	if a == b {
		return 0, false
	}
	d, ok := t.d[keyOf(a, b)]
	return d, ok
}

// Len is the number of stored pairs.
func (t *DistanceTable) Len() int { return len(t.d) }
