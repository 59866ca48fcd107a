package ui

// ScrollStep is how far one wheel notch moves the content.
const ScrollStep = 30

// Canvas holds the vertical scroll offset applied to every widget.
type Canvas struct {
	Offset int
}

// Scroll moves the content by dy wheel notches.
func (c *Canvas) Scroll(dy int) {
	c.Offset += dy * ScrollStep
}

// ToContent converts a pointer event from screen to content coordinates by
// removing the scroll offset. Other events are returned unchanged.
func (c *Canvas) ToContent(ev Event) Event {
	switch e := ev.(type) {
	case PointerDown:
		e.Y -= c.Offset
		return e
	case PointerUp:
		e.Y -= c.Offset
		return e
	case PointerMove:
		e.Y -= c.Offset
		return e
	}
	return ev
}
