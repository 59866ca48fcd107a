package ui

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/cansyan/ctrlpanel/store"
)

// Focus records which text entry receives key events. At most one entry is
// active at a time.
type Focus struct {
	owner *TextEntry
}

func (f *Focus) Owner() *TextEntry { return f.owner }
func (f *Focus) Set(e *TextEntry)  { f.owner = e }

// Release drops focus if e holds it.
func (f *Focus) Release(e *TextEntry) {
	if f.owner == e {
		f.owner = nil
	}
}

// TextEntry is a single-line text input. A pointer press inside the entry
// activates it, a press anywhere else deactivates it. While active,
// Backspace deletes the last rune, Enter deactivates, Ctrl+U clears,
// Ctrl+V pastes the first clipboard line, and printable keys and Tab append.
type TextEntry struct {
	Rect      Rect
	Clipboard Clipboard
	// OnKey is called with the current text after every key handled
	// while the entry is active.
	OnKey func(string)

	text  []rune
	focus *Focus
}

func NewTextEntry(r Rect, text string, focus *Focus) *TextEntry {
	return &TextEntry{Rect: r, text: []rune(text), focus: focus}
}

func (t *TextEntry) Text() string { return string(t.text) }

func (t *TextEntry) SetText(s string) { t.text = []rune(s) }

func (t *TextEntry) Active() bool {
	return t.focus != nil && t.focus.Owner() == t
}

func (t *TextEntry) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case PointerDown:
		if t.focus == nil {
			return
		}
		if t.Rect.Contains(ev.X, ev.Y) {
			t.focus.Set(t)
		} else {
			t.focus.Release(t)
		}
	case Key:
		if t.Active() && t.handleKey(ev) && t.OnKey != nil {
			t.OnKey(string(t.text))
		}
	}
}

func (t *TextEntry) handleKey(ev Key) bool {
	switch ev.Key {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.text) > 0 {
			t.text = t.text[:len(t.text)-1]
		}
	case tcell.KeyEnter:
		t.focus.Release(t)
	case tcell.KeyCtrlU:
		t.text = t.text[:0]
	case tcell.KeyCtrlV:
		if t.Clipboard != nil {
			t.text = append(t.text, []rune(firstLine(t.Clipboard.ReadText()))...)
		}
	case tcell.KeyRune:
		t.text = slices.Insert(t.text, len(t.text), ev.Rune)
	case tcell.KeyTab:
		t.text = append(t.text, '\t')
	default:
		return false
	}
	return true
}

func (t *TextEntry) Render(s *Surface, offset int) {
	r := t.Rect.Translate(0, offset)
	st := Theme.Base().Merge(Style{BG: Theme.Entry})
	if t.Active() {
		st = st.Merge(Style{FG: Theme.Focus, Underline: true})
	}
	s.Fill(r, st)
	inner := Rect{X: r.X + 5, Y: r.Y, W: r.W - 10, H: r.H}
	// tabs are stored as typed but drawn one cell wide
	n := s.Text(inner, strings.ReplaceAll(string(t.text), "\t", " "), st)
	if t.Active() {
		s.ShowCursor(inner, n)
	}
}

// control holds what every widget has: its store key and the rename entry
// whose text is shown as the label.
type control struct {
	name   string
	y      int
	rename *TextEntry
	env    Env
}

func newControl(name string, y, controlRight int, env Env) control {
	rename := NewTextEntry(Rect{X: controlRight + RenameGap, Y: y, W: RenameWidth, H: EntryHeight}, name, env.Focus)
	rename.Clipboard = env.Clipboard
	return control{name: name, y: y, rename: rename, env: env}
}

func (c *control) Name() string { return c.name }

func (c *control) Label() string {
	if l := c.rename.Text(); l != "" {
		return l
	}
	return c.name
}

// Rename returns the entry used to relabel the widget. Its text is never
// published.
func (c *control) Rename() *TextEntry { return c.rename }

func (c *control) renderLabel(s *Surface, offset int) {
	r := Rect{X: LabelX, Y: c.y + offset, W: ControlX - LabelX - 10, H: 20}
	s.Text(r, c.Label(), Theme.Base())
	c.rename.Render(s, offset)
}

// Slider publishes an integer in [0, SliderMax] encoded by the horizontal
// position of a handle inside a track.
type Slider struct {
	control
	Track    Rect
	Handle   Rect
	value    int
	dragging bool
}

const (
	SliderMax    = 1000
	TrackWidth   = 200
	HandleWidth  = 10
	SliderHeight = 20
)

func NewSlider(name string, y int, env Env) *Slider {
	track := Rect{X: ControlX, Y: y, W: TrackWidth, H: SliderHeight}
	return &Slider{
		control: newControl(name, y, track.Right(), env),
		Track:   track,
		Handle:  Rect{X: track.X, Y: y, W: HandleWidth, H: SliderHeight},
	}
}

func (s *Slider) Bounds() Rect   { return s.Track }
func (s *Slider) Value() int     { return s.value }
func (s *Slider) Dragging() bool { return s.dragging }

func (s *Slider) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case PointerDown:
		if s.Handle.Contains(ev.X, ev.Y) {
			s.dragging = true
		}
	case PointerUp:
		s.dragging = false
	case PointerMove:
		if s.dragging {
			s.moveHandle(ev.X)
		}
	}
	s.rename.HandleEvent(ev)
}

// moveHandle clamps the handle to the track and publishes the new value.
func (s *Slider) moveHandle(x int) {
	lo := s.Track.X
	hi := s.Track.Right() - s.Handle.W
	s.Handle.X = max(lo, min(x, hi))
	s.value = s.valueAt(s.Handle.X)
	s.env.publish(s.name, store.Int(s.value))
}

func (s *Slider) valueAt(x int) int {
	travel := s.Track.W - s.Handle.W
	if travel <= 0 {
		return 0
	}
	return int(math.Round(float64(x-s.Track.X) / float64(travel) * SliderMax))
}

func (s *Slider) Render(sf *Surface, offset int) {
	s.renderLabel(sf, offset)
	sf.Fill(s.Track.Translate(0, offset), Style{BG: Theme.Track})
	handle := Style{BG: Theme.Handle}
	if s.dragging {
		handle = handle.Merge(Style{BG: Theme.Focus})
	}
	sf.Fill(s.Handle.Translate(0, offset), handle)
	val := Rect{X: s.Track.Right() + 10, Y: s.y + offset, W: RenameGap - 20, H: SliderHeight}
	sf.Text(val, strconv.Itoa(s.value), Theme.Base())
}

// Checkbox publishes a boolean flipped by each press inside its box.
type Checkbox struct {
	control
	Box     Rect
	checked bool
}

const CheckboxSize = 20

func NewCheckbox(name string, y int, env Env) *Checkbox {
	box := Rect{X: ControlX, Y: y, W: CheckboxSize, H: CheckboxSize}
	c := &Checkbox{
		control: newControl(name, y, box.Right(), env),
		Box:     box,
	}
	c.rename.Rect.Y -= 2
	return c
}

func (c *Checkbox) Bounds() Rect  { return c.Box }
func (c *Checkbox) Checked() bool { return c.checked }

func (c *Checkbox) HandleEvent(ev Event) {
	if ev, ok := ev.(PointerDown); ok && c.Box.Contains(ev.X, ev.Y) {
		c.checked = !c.checked
		c.env.publish(c.name, store.Bool(c.checked))
	}
	c.rename.HandleEvent(ev)
}

func (c *Checkbox) Render(s *Surface, offset int) {
	c.renderLabel(s, offset)
	box := c.Box.Translate(0, offset)
	st := Theme.Base().Merge(Style{FG: Theme.Checked, BG: Theme.Border, Bold: true})
	s.Fill(box, st)
	if c.checked {
		s.Text(box, " x", st)
	}
}

// TextField publishes the text of its entry after every key it handles.
type TextField struct {
	control
	Field *TextEntry
}

const FieldWidth = 200

func NewTextField(name string, y int, env Env) *TextField {
	field := NewTextEntry(Rect{X: ControlX, Y: y, W: FieldWidth, H: EntryHeight}, "", env.Focus)
	field.Clipboard = env.Clipboard
	f := &TextField{
		control: newControl(name, y, field.Rect.Right(), env),
		Field:   field,
	}
	field.OnKey = func(text string) {
		env.publish(name, store.String(text))
	}
	return f
}

func (f *TextField) Bounds() Rect { return f.Field.Rect }
func (f *TextField) Text() string { return f.Field.Text() }

func (f *TextField) HandleEvent(ev Event) {
	f.Field.HandleEvent(ev)
	f.rename.HandleEvent(ev)
}

func (f *TextField) Render(s *Surface, offset int) {
	f.renderLabel(s, offset)
	f.Field.Render(s, offset)
}
