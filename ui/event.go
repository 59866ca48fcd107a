package ui

import "github.com/gdamore/tcell/v2"

// Event is a pointer, key or wheel event in panel units.
type Event interface {
	isEvent()
}

type PointerDown struct{ X, Y int }
type PointerUp struct{ X, Y int }
type PointerMove struct{ X, Y int }

// Key is a key press. Rune is set when Key is tcell.KeyRune.
type Key struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Wheel is a scroll-wheel notch; DY > 0 scrolls up.
type Wheel struct{ DY int }

func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (PointerMove) isEvent() {}
func (Key) isEvent()         {}
func (Wheel) isEvent()       {}

// EventName is a short name for ev, used as a metrics label.
func EventName(ev Event) string {
	switch ev.(type) {
	case PointerDown:
		return "pointer_down"
	case PointerUp:
		return "pointer_up"
	case PointerMove:
		return "pointer_move"
	case Key:
		return "key"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Translator turns tcell events into panel events. tcell reports the
// current button mask on every mouse event, so the translator remembers
// whether the primary button was down to emit press and release edges.
type Translator struct {
	Scale Scale
	down  bool
}

// Translate returns the panel event for ev, or false when ev has no
// meaning for widgets.
func (t *Translator) Translate(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Key{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}, true
	case *tcell.EventMouse:
		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelUp != 0:
			return Wheel{DY: 1}, true
		case btn&tcell.WheelDown != 0:
			return Wheel{DY: -1}, true
		}
		x, y := t.Scale.Point(ev.Position())
		pressed := btn&tcell.ButtonPrimary != 0
		switch {
		case pressed && !t.down:
			t.down = true
			return PointerDown{X: x, Y: y}, true
		case !pressed && t.down:
			t.down = false
			return PointerUp{X: x, Y: y}, true
		default:
			return PointerMove{X: x, Y: y}, true
		}
	}
	return nil, false
}
