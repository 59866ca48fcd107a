package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/cansyan/ctrlpanel/store"
)

type published struct {
	name  string
	value store.Value
}

type recorder struct {
	got []published
}

func (r *recorder) publish(name string, v store.Value) {
	r.got = append(r.got, published{name, v})
}

func (r *recorder) last() (published, bool) {
	if len(r.got) == 0 {
		return published{}, false
	}
	return r.got[len(r.got)-1], true
}

func newEnv(rec *recorder) Env {
	return Env{Focus: &Focus{}, Publish: rec.publish}
}

func click(w interface{ HandleEvent(Event) }, x, y int) {
	w.HandleEvent(PointerDown{X: x, Y: y})
	w.HandleEvent(PointerUp{X: x, Y: y})
}

func typeText(w interface{ HandleEvent(Event) }, s string) {
	for _, r := range s {
		w.HandleEvent(Key{Key: tcell.KeyRune, Rune: r})
	}
}

func TestSlider_DragToEdges(t *testing.T) {
	rec := &recorder{}
	s := NewSlider("v", RowY(0), newEnv(rec))

	s.HandleEvent(PointerDown{X: s.Handle.X + 1, Y: s.Handle.Y + 1})
	if !s.Dragging() {
		t.Fatal("press on handle should start dragging")
	}

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"far left", -500, 0},
		{"track left", s.Track.X, 0},
		{"middle", s.Track.X + (TrackWidth-HandleWidth)/2, 500},
		{"track right", s.Track.Right() - HandleWidth, SliderMax},
		{"far right", 5000, SliderMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.HandleEvent(PointerMove{X: tt.x, Y: 0})
			if s.Value() != tt.want {
				t.Errorf("Value() = %d, want %d", s.Value(), tt.want)
			}
			p, ok := rec.last()
			if !ok || p.name != "v" || p.value != store.Int(tt.want) {
				t.Errorf("last publish = %+v, want v=%d", p, tt.want)
			}
			if s.Handle.X < s.Track.X || s.Handle.Right() > s.Track.Right() {
				t.Errorf("handle %+v escaped track %+v", s.Handle, s.Track)
			}
		})
	}
}

func TestSlider_Monotonic(t *testing.T) {
	s := NewSlider("v", RowY(0), newEnv(&recorder{}))
	s.HandleEvent(PointerDown{X: s.Handle.X, Y: s.Handle.Y})

	prev := -1
	for x := s.Track.X - 20; x <= s.Track.Right()+20; x++ {
		s.HandleEvent(PointerMove{X: x})
		if s.Value() < prev {
			t.Fatalf("value decreased at x=%d: %d < %d", x, s.Value(), prev)
		}
		prev = s.Value()
	}
	if prev != SliderMax {
		t.Errorf("final value = %d, want %d", prev, SliderMax)
	}
}

func TestSlider_ReleaseStopsDragging(t *testing.T) {
	rec := &recorder{}
	s := NewSlider("v", RowY(0), newEnv(rec))

	s.HandleEvent(PointerDown{X: s.Handle.X, Y: s.Handle.Y})
	s.HandleEvent(PointerMove{X: s.Track.X + 95})
	// release far from the handle must still end the drag
	s.HandleEvent(PointerUp{X: 0, Y: 0})
	if s.Dragging() {
		t.Fatal("PointerUp should stop dragging")
	}
	v := s.Value()
	s.HandleEvent(PointerMove{X: s.Track.X})
	if s.Value() != v {
		t.Errorf("moving after release changed value: %d -> %d", v, s.Value())
	}
	if s.Handle.X != s.Track.X+95 {
		t.Errorf("handle snapped back to %d", s.Handle.X)
	}
}

func TestSlider_PressOutsideHandle(t *testing.T) {
	rec := &recorder{}
	s := NewSlider("v", RowY(0), newEnv(rec))

	s.HandleEvent(PointerDown{X: s.Track.X + 100, Y: s.Track.Y})
	s.HandleEvent(PointerMove{X: s.Track.X + 150})
	if s.Dragging() || s.Value() != 0 || len(rec.got) != 0 {
		t.Errorf("press on the bare track should not drag: dragging=%v value=%d publishes=%d",
			s.Dragging(), s.Value(), len(rec.got))
	}
}

func TestSlider_DegenerateTrack(t *testing.T) {
	rec := &recorder{}
	s := NewSlider("v", RowY(0), newEnv(rec))
	s.Track.W = s.Handle.W

	s.HandleEvent(PointerDown{X: s.Handle.X, Y: s.Handle.Y})
	for _, x := range []int{-10, s.Track.X, s.Track.X + 100} {
		s.HandleEvent(PointerMove{X: x})
		if s.Value() != 0 {
			t.Errorf("value at x=%d = %d, want 0", x, s.Value())
		}
	}
}

func TestCheckbox_Toggle(t *testing.T) {
	rec := &recorder{}
	c := NewCheckbox("power", RowY(0), newEnv(rec))
	inX, inY := c.Box.X+5, c.Box.Y+5

	for i := 1; i <= 5; i++ {
		click(c, inX, inY)
		want := i%2 == 1
		if c.Checked() != want {
			t.Fatalf("after %d clicks Checked() = %v, want %v", i, c.Checked(), want)
		}
	}
	if len(rec.got) != 5 {
		t.Errorf("publishes = %d, want 5", len(rec.got))
	}

	before := c.Checked()
	outside := [][2]int{
		{c.Box.X - 1, inY},
		{c.Box.Right(), inY},
		{inX, c.Box.Y - 1},
		{inX, c.Box.Bottom()},
	}
	for _, p := range outside {
		click(c, p[0], p[1])
	}
	if c.Checked() != before || len(rec.got) != 5 {
		t.Errorf("clicks outside changed the box: checked=%v publishes=%d", c.Checked(), len(rec.got))
	}
}

func TestCheckbox_PowerScenario(t *testing.T) {
	rec := &recorder{}
	c := NewCheckbox("power", RowY(0), newEnv(rec))
	if c.Checked() {
		t.Fatal("checkbox should start unchecked")
	}
	click(c, c.Box.X, c.Box.Y)
	click(c, 590, 790)
	p, _ := rec.last()
	if !c.Checked() || p.value != store.Bool(true) {
		t.Errorf("checked=%v last publish=%+v, want true", c.Checked(), p)
	}
}

func TestTextEntry_Editing(t *testing.T) {
	f := &Focus{}
	e := NewTextEntry(Rect{X: 0, Y: 0, W: 100, H: 30}, "", f)

	typeText(e, "abc")
	if e.Text() != "" {
		t.Fatalf("inactive entry accepted keys: %q", e.Text())
	}

	click(e, 10, 10)
	if !e.Active() {
		t.Fatal("click inside should activate")
	}

	tests := []struct {
		name   string
		key    Key
		want   string
		active bool
	}{
		{"append h", Key{Key: tcell.KeyRune, Rune: 'h'}, "h", true},
		{"append i", Key{Key: tcell.KeyRune, Rune: 'i'}, "hi", true},
		{"append wide", Key{Key: tcell.KeyRune, Rune: '界'}, "hi界", true},
		{"backspace", Key{Key: tcell.KeyBackspace2}, "hi", true},
		{"ignored arrow", Key{Key: tcell.KeyLeft}, "hi", true},
		{"enter", Key{Key: tcell.KeyEnter}, "hi", false},
		{"after enter", Key{Key: tcell.KeyRune, Rune: 'x'}, "hi", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.HandleEvent(tt.key)
			if e.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", e.Text(), tt.want)
			}
			if e.Active() != tt.active {
				t.Errorf("Active() = %v, want %v", e.Active(), tt.active)
			}
		})
	}
}

func TestTextEntry_BackspaceOnEmpty(t *testing.T) {
	f := &Focus{}
	e := NewTextEntry(Rect{W: 100, H: 30}, "", f)
	f.Set(e)
	calls := 0
	e.OnKey = func(string) { calls++ }

	e.HandleEvent(Key{Key: tcell.KeyBackspace})
	if e.Text() != "" || calls != 1 {
		t.Errorf("Text() = %q calls = %d", e.Text(), calls)
	}
}

func TestTextEntry_ClearAndPaste(t *testing.T) {
	f := &Focus{}
	e := NewTextEntry(Rect{W: 100, H: 30}, "old", f)
	e.Clipboard = fakeClipboard("pasted\nsecond line")
	f.Set(e)

	e.HandleEvent(Key{Key: tcell.KeyCtrlU})
	if e.Text() != "" {
		t.Fatalf("Ctrl+U left %q", e.Text())
	}
	e.HandleEvent(Key{Key: tcell.KeyCtrlV})
	if e.Text() != "pasted" {
		t.Errorf("Ctrl+V gave %q, want %q", e.Text(), "pasted")
	}
}

type fakeClipboard string

func (c fakeClipboard) ReadText() string { return string(c) }

func TestTextField_PublishesEveryKeystroke(t *testing.T) {
	rec := &recorder{}
	tf := NewTextField("username", RowY(0), newEnv(rec))

	click(tf, tf.Field.Rect.X+1, tf.Field.Rect.Y+1)
	typeText(tf, "bob")
	tf.HandleEvent(Key{Key: tcell.KeyBackspace2})
	tf.HandleEvent(Key{Key: tcell.KeyEnter})

	want := []string{"b", "bo", "bob", "bo", "bo"}
	if len(rec.got) != len(want) {
		t.Fatalf("publishes = %+v, want %d", rec.got, len(want))
	}
	for i, w := range want {
		if rec.got[i].name != "username" || rec.got[i].value != store.String(w) {
			t.Errorf("publish[%d] = %+v, want username=%q", i, rec.got[i], w)
		}
	}
	if tf.Field.Active() {
		t.Error("Enter should deactivate the field")
	}
}

func TestFocus_SingleOwner(t *testing.T) {
	rec := &recorder{}
	env := newEnv(rec)
	widgets := []Widget{
		NewTextField("a", RowY(0), env),
		NewSlider("b", RowY(1), env),
		NewTextField("c", RowY(2), env),
	}
	a := widgets[0].(*TextField)
	b := widgets[1].(*Slider)
	c := widgets[2].(*TextField)

	broadcast := func(ev Event) {
		for _, w := range widgets {
			w.HandleEvent(ev)
		}
	}
	press := func(r Rect) {
		broadcast(PointerDown{X: r.X + 1, Y: r.Y + 1})
		broadcast(PointerUp{X: r.X + 1, Y: r.Y + 1})
	}

	entries := []*TextEntry{a.Field, a.Rename(), b.Rename(), c.Field, c.Rename()}
	activeCount := func() int {
		n := 0
		for _, e := range entries {
			if e.Active() {
				n++
			}
		}
		return n
	}

	for _, e := range entries {
		press(e.Rect)
		if !e.Active() || activeCount() != 1 {
			t.Fatalf("after pressing %+v: active=%v count=%d", e.Rect, e.Active(), activeCount())
		}
	}

	press(a.Field.Rect)
	broadcast(Key{Key: tcell.KeyRune, Rune: 'z'})
	if a.Text() != "z" || c.Text() != "" {
		t.Errorf("keys reached the wrong field: a=%q c=%q", a.Text(), c.Text())
	}

	press(Rect{X: 590, Y: 790})
	if activeCount() != 0 {
		t.Errorf("press on empty space left %d active entries", activeCount())
	}
}

func TestRename_NotPublished(t *testing.T) {
	rec := &recorder{}
	s := NewSlider("speed", RowY(0), newEnv(rec))
	r := s.Rename()
	if r.Text() != "speed" || s.Label() != "speed" {
		t.Fatalf("rename starts as %q, label %q", r.Text(), s.Label())
	}

	click(s, r.Rect.X+1, r.Rect.Y+1)
	s.HandleEvent(Key{Key: tcell.KeyCtrlU})
	if s.Label() != "speed" {
		t.Errorf("empty rename should fall back to name, got %q", s.Label())
	}
	typeText(s, "Velocity")
	if s.Label() != "Velocity" || s.Name() != "speed" {
		t.Errorf("Label() = %q Name() = %q", s.Label(), s.Name())
	}
	if len(rec.got) != 0 {
		t.Errorf("rename published %+v", rec.got)
	}
}

func TestWidgetBounds(t *testing.T) {
	env := Env{Focus: &Focus{}}
	y := RowY(2)
	tests := []struct {
		name string
		w    Widget
		want Rect
	}{
		{"slider", NewSlider("s", y, env), Rect{X: ControlX, Y: y, W: TrackWidth, H: SliderHeight}},
		{"checkbox", NewCheckbox("c", y, env), Rect{X: ControlX, Y: y, W: CheckboxSize, H: CheckboxSize}},
		{"field", NewTextField("f", y, env), Rect{X: ControlX, Y: y, W: FieldWidth, H: EntryHeight}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTextField_TabIsTyped(t *testing.T) {
	rec := &recorder{}
	tf := NewTextField("cmd", RowY(0), newEnv(rec))

	click(tf, tf.Field.Rect.X+1, tf.Field.Rect.Y+1)
	typeText(tf, "a")
	tf.HandleEvent(Key{Key: tcell.KeyTab})
	typeText(tf, "b")

	if got := tf.Text(); got != "a\tb" {
		t.Errorf("Text() = %q, want %q", got, "a\tb")
	}
	if p, _ := rec.last(); p.value != store.String("a\tb") {
		t.Errorf("last publish = %+v", p)
	}
	if len(rec.got) != 3 {
		t.Errorf("publishes = %d, want 3", len(rec.got))
	}
}
