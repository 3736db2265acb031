// Package screen is the ebiten drawing surface. Strokes are buffered
// during the tick and replayed onto the frame in Draw.
package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/flockworks/boids/internal/render"
)

var _ render.Surface = (*Surface)(nil)

type Surface struct {
	render.Pen
	segments   []render.Segment
	background color.RGBA
}

func New(background color.RGBA) *Surface {
	return &Surface{
		segments:   make([]render.Segment, 0, 1024),
		background: background,
	}
}

func (s *Surface) Clear() {
	s.segments = s.segments[:0]
}

func (s *Surface) Stroke(c color.RGBA, width float64) {
	s.segments = append(s.segments, s.Flush(c, width)...)
}

// Draw paints the background and every buffered segment onto dst.
func (s *Surface) Draw(dst *ebiten.Image) {
	dst.Fill(s.background)
	for _, seg := range s.segments {
		vector.StrokeLine(dst,
			float32(seg.From.X), float32(seg.From.Y),
			float32(seg.To.X), float32(seg.To.Y),
			float32(seg.Width), seg.Color, true)
	}
}
