// Package term rasterizes stroked segments onto a tcell screen. Field
// coordinates are scaled to the cell grid; the bottom row is kept for a
// status line.
package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/flockworks/boids/internal/render"
	"github.com/flockworks/boids/internal/vmath"
)

type Surface struct {
	render.Pen
	screen tcell.Screen
	field  vmath.Vec2
}

// New draws a field of the given size onto screen.
func New(screen tcell.Screen, field vmath.Vec2) *Surface {
	return &Surface{screen: screen, field: field}
}

func (s *Surface) Clear() {
	s.screen.Clear()
}

// grid is the drawable area in cells.
func (s *Surface) grid() (cols, rows int) {
	cols, rows = s.screen.Size()
	return cols, rows - 1
}

// Cell maps a field position to a cell. ok is false outside the grid.
func (s *Surface) Cell(p vmath.Vec2) (x, y int, ok bool) {
	cols, rows := s.grid()
	if cols <= 0 || rows <= 0 || s.field.X <= 0 || s.field.Y <= 0 {
		return 0, 0, false
	}
	x = int(p.X / s.field.X * float64(cols))
	y = int(p.Y / s.field.Y * float64(rows))
	if x == cols {
		x--
	}
	if y == rows {
		y--
	}
	return x, y, x >= 0 && x < cols && y >= 0 && y < rows
}

func (s *Surface) Stroke(c color.RGBA, _ float64) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	for _, seg := range s.Flush(c, 1) {
		x0, y0, ok0 := s.Cell(seg.From)
		x1, y1, ok1 := s.Cell(seg.To)
		if !ok0 && !ok1 {
			continue
		}
		glyph := slopeGlyph(x1-x0, y1-y0)
		cols, rows := s.grid()
		line(x0, y0, x1, y1, func(x, y int) {
			if x >= 0 && x < cols && y >= 0 && y < rows {
				s.screen.SetContent(x, y, glyph, nil, style)
			}
		})
		if ok0 {
			s.screen.SetContent(x0, y0, 'o', nil, style)
		}
	}
}

// Status writes text on the reserved bottom row.
func (s *Surface) Status(text string) {
	cols, rows := s.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		s.screen.SetContent(x, rows-1, r, nil, style)
		x++
	}
}

// Show flushes the frame to the terminal.
func (s *Surface) Show() {
	s.screen.Show()
}

// slopeGlyph picks a character approximating the direction (y grows down).
func slopeGlyph(dx, dy int) rune {
	adx, ady := abs(dx), abs(dy)
	switch {
	case adx == 0 && ady == 0:
		return '*'
	case ady*2 < adx:
		return '-'
	case adx*2 < ady:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// line visits every cell of the Bresenham line from (x0,y0) to (x1,y1).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
