package event

// Control events, emitted by input surfaces and scripts and applied
// between ticks.

// TogglePause pauses a running world or resumes a paused one.
type TogglePause struct{}

// StepOnce forces a single tick.
type StepOnce struct{}

// Spawn adds Count boids, Predators of which hunt.
type Spawn struct {
	Count     int
	Predators int
}

// Quit asks the driver to stop after the current frame.
type Quit struct{}
