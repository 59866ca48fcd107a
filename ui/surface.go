package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Scale is the size of one terminal cell in panel units.
type Scale struct {
	X, Y int
}

// DefaultScale maps the 600x800 panel onto 120x40 cells.
var DefaultScale = Scale{X: 5, Y: 20}

// Point returns the panel position of the centre of cell (cx, cy).
func (s Scale) Point(cx, cy int) (int, int) {
	return cx*s.X + s.X/2, cy*s.Y + s.Y/2
}

// span returns the half-open range of cells whose centre lies in [pos, pos+size).
func span(pos, size, unit int) (int, int) {
	half := unit / 2
	return ceilDiv(pos-half, unit), ceilDiv(pos+size-half, unit)
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

// Surface draws panel-unit geometry onto a tcell screen. A cell is covered by
// a rectangle when its centre is inside it, the same rule Scale.Point uses for
// pointer input, so what is drawn is exactly what can be hit.
type Surface struct {
	screen tcell.Screen
	scale  Scale
	bounds Rect // panel units
}

func NewSurface(screen tcell.Screen, scale Scale) *Surface {
	return &Surface{
		screen: screen,
		scale:  scale,
		bounds: Rect{W: PanelWidth, H: PanelHeight},
	}
}

func (s *Surface) Scale() Scale { return s.scale }

// Cells returns the cell rectangle covered by r.
func (s *Surface) Cells(r Rect) Rect {
	x0, x1 := span(r.X, r.W, s.scale.X)
	y0, y1 := span(r.Y, r.H, s.scale.Y)
	return Rect{X: x0, Y: y0, W: max(x1-x0, 0), H: max(y1-y0, 0)}
}

// visible reports whether cell (cx, cy) is on screen and inside the panel.
func (s *Surface) visible(cx, cy int) bool {
	w, h := s.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return false
	}
	px, py := s.scale.Point(cx, cy)
	return s.bounds.Contains(px, py)
}

// Clear paints the whole panel with style.
func (s *Surface) Clear(style Style) {
	s.screen.HideCursor()
	s.Fill(s.bounds, style)
}

// Fill paints every cell covered by r.
func (s *Surface) Fill(r Rect, style Style) {
	st := style.Apply()
	c := s.Cells(r)
	for y := c.Y; y < c.Y+c.H; y++ {
		for x := c.X; x < c.X+c.W; x++ {
			if s.visible(x, y) {
				s.screen.SetContent(x, y, ' ', nil, st)
			}
		}
	}
}

// Text draws text on the first cell row of r, truncated to the width of r.
// It returns the number of cells used.
func (s *Surface) Text(r Rect, text string, style Style) int {
	c := s.Cells(r)
	if c.W == 0 || c.H == 0 {
		return 0
	}
	if runewidth.StringWidth(text) > c.W {
		text = runewidth.Truncate(text, c.W, "…")
	}
	st := style.Apply()
	x := c.X
	for _, ch := range text {
		if s.visible(x, c.Y) {
			s.screen.SetContent(x, c.Y, ch, nil, st)
		}
		x += runewidth.RuneWidth(ch)
	}
	return x - c.X
}

// ShowCursor places the terminal cursor at the cell col cells right of the
// top-left cell of r.
func (s *Surface) ShowCursor(r Rect, col int) {
	c := s.Cells(r)
	x := c.X + min(col, max(c.W-1, 0))
	if s.visible(x, c.Y) {
		s.screen.ShowCursor(x, c.Y)
	}
}
