// Package ui provides the widgets of the control panel built on top of tcell.
// Widgets live in panel units and are drawn onto a Surface, which maps panel
// units onto terminal cells. Events reaching a widget are already expressed in
// content coordinates, i.e. with the scroll offset removed.
package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/cansyan/ctrlpanel/store"
)

type Color = tcell.Color

// Panel geometry in panel units.
const (
	PanelWidth  = 600
	PanelHeight = 800

	LabelX    = 20
	ControlX  = 170
	FirstRowY = 50
	RowPitch  = 60

	RenameGap   = 100
	RenameWidth = 120
	EntryHeight = 30

	// The caption bar is drawn over the top of the content and hides
	// whatever has scrolled under it.
	CaptionTitle  = "Control Panel"
	CaptionHeight = 20
)

// RowY returns the top of the i-th widget row.
func RowY(i int) int { return FirstRowY + i*RowPitch }

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Widget is implemented by every control on the panel.
type Widget interface {
	// Name is the store key the widget publishes under.
	Name() string
	// Label is the text shown in the label column.
	Label() string
	// Bounds is the control's rectangle in content coordinates.
	Bounds() Rect
	HandleEvent(ev Event)
	// Render draws the widget translated vertically by offset.
	Render(s *Surface, offset int)
}

// Publisher receives every value a widget publishes.
type Publisher func(name string, v store.Value)

// Env carries what widgets share with the runtime that owns them.
type Env struct {
	Focus     *Focus
	Publish   Publisher
	Clipboard Clipboard
}

func (e Env) publish(name string, v store.Value) {
	if e.Publish != nil {
		e.Publish(name, v)
	}
}

type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Underline bool
}

var DefaultStyle = Style{FG: tcell.ColorDefault, BG: tcell.ColorDefault}

func (s Style) Apply() tcell.Style {
	st := tcell.StyleDefault
	if s.FG != tcell.ColorDefault {
		st = st.Foreground(s.FG)
	}
	if s.BG != tcell.ColorDefault {
		st = st.Background(s.BG)
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	return st
}

// Merge returns a new Style by applying the child style's non-default attributes
// over the receiver (parent) style.
func (s Style) Merge(child Style) Style {
	if child.FG == tcell.ColorDefault {
		child.FG = s.FG
	}
	if child.BG == tcell.ColorDefault {
		child.BG = s.BG
	}
	child.Bold = child.Bold || s.Bold
	child.Underline = child.Underline || s.Underline
	return child
}
