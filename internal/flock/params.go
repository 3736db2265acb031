package flock

import (
	"fmt"

	"github.com/flockworks/boids/internal/physics"
)

// Params are the flocking coefficients. Distances are in field units,
// SpeedLimit in units per second.
type Params struct {
	Bounds physics.Bounds

	SpeedLimit float64

	SeparationRadius float64
	AlignmentRadius  float64
	CohesionRadius   float64

	SeparationFactor float64
	VelocityFactor   float64
	CohesionFactor   float64

	PredatorDetectionRange float64
	PredatorFactor         float64
	AttackFactor           float64

	NudgeFactor float64
	Margin      float64
}

// PredatorSpeedGap is how much slower than SpeedLimit a predator flies.
const PredatorSpeedGap = 5

func DefaultParams() Params {
	return Params{
		Bounds:                 physics.NewBounds(400, 400),
		SpeedLimit:             25,
		SeparationRadius:       20,
		AlignmentRadius:        30,
		CohesionRadius:         40,
		SeparationFactor:       0.1,
		VelocityFactor:         0.1,
		CohesionFactor:         0,
		PredatorDetectionRange: 20,
		PredatorFactor:         0.5,
		AttackFactor:           0.1,
		NudgeFactor:            1.3,
		Margin:                 50,
	}
}

// PredatorSpeed is the clamp applied to predators.
func (p Params) PredatorSpeed() float64 {
	return p.SpeedLimit - PredatorSpeedGap
}

// Validate rejects parameter sets that break the neighbor nesting or
// produce a degenerate field.
func (p Params) Validate() error {
	size := p.Bounds.Size()
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("flock: bound must be positive, got %v", size)
	}
	if p.SpeedLimit <= PredatorSpeedGap {
		return fmt.Errorf("flock: speed_limit must exceed %d, got %g", PredatorSpeedGap, p.SpeedLimit)
	}
	if !(0 < p.SeparationRadius && p.SeparationRadius < p.AlignmentRadius && p.AlignmentRadius < p.CohesionRadius) {
		return fmt.Errorf("flock: radii must satisfy 0 < separation < alignment < cohesion, got %g/%g/%g",
			p.SeparationRadius, p.AlignmentRadius, p.CohesionRadius)
	}
	if p.Margin < 0 || p.PredatorDetectionRange < 0 {
		return fmt.Errorf("flock: margin and predator_detection_range must not be negative")
	}
	return nil
}
