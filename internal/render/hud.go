package render

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats is the per-frame status shown by drivers.
type Stats struct {
	Tick      uint64
	Entities  int
	Boids     int
	Predators int
	Delta     time.Duration
	Running   bool
}

// HUD formats Stats with locale-aware digit grouping.
type HUD struct {
	p *message.Printer
}

func NewHUD(tag language.Tag) *HUD {
	return &HUD{p: message.NewPrinter(tag)}
}

func (h *HUD) Line(s Stats) string {
	state := "running"
	if !s.Running {
		state = "paused"
	}
	return h.p.Sprintf("tick %d | entities %d | boids %d | predators %d | dt %dms | %s",
		s.Tick, s.Entities, s.Boids, s.Predators, s.Delta.Milliseconds(), state)
}
