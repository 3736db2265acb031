// Package render defines the drawing surface the render system strokes
// entity segments onto, plus an in-memory surface used by tests and the
// headless driver.
package render

import (
	"image/color"

	"github.com/flockworks/boids/internal/vmath"
)

// Surface accepts path-based line drawing. A path starts at MoveTo, grows
// with LineTo and is emitted by Stroke, which also resets it.
type Surface interface {
	Clear()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke(c color.RGBA, width float64)
}

// Segment is one stroked line.
type Segment struct {
	From, To vmath.Vec2
	Color    color.RGBA
	Width    float64
}

// Pen turns MoveTo/LineTo/Stroke calls into segments. Backends embed it.
type Pen struct {
	path []vmath.Vec2
}

func (p *Pen) MoveTo(x, y float64) {
	p.path = append(p.path[:0], vmath.V(x, y))
}

// LineTo extends the path; without a preceding MoveTo it starts one.
func (p *Pen) LineTo(x, y float64) {
	p.path = append(p.path, vmath.V(x, y))
}

// Flush returns the current path as segments and resets it.
func (p *Pen) Flush(c color.RGBA, width float64) []Segment {
	if len(p.path) < 2 {
		p.path = p.path[:0]
		return nil
	}
	segs := make([]Segment, 0, len(p.path)-1)
	for i := 1; i < len(p.path); i++ {
		segs = append(segs, Segment{From: p.path[i-1], To: p.path[i], Color: c, Width: width})
	}
	p.path = p.path[:0]
	return segs
}

// Recorder is a Surface that keeps the segments of the current frame.
type Recorder struct {
	Pen
	Segments []Segment
	Clears   int
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear() {
	r.Segments = r.Segments[:0]
	r.Clears++
}

func (r *Recorder) Stroke(c color.RGBA, width float64) {
	r.Segments = append(r.Segments, r.Flush(c, width)...)
}
