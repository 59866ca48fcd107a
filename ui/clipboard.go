package ui

import (
	"strings"

	"golang.design/x/clipboard"
)

// Clipboard supplies text for paste.
type Clipboard interface {
	ReadText() string
}

// SystemClipboard reads the OS clipboard. When the clipboard is unavailable
// (no display, no cgo) it behaves as an empty clipboard.
type SystemClipboard struct {
	ok bool
}

func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{ok: clipboard.Init() == nil}
}

func (c *SystemClipboard) Available() bool { return c != nil && c.ok }

func (c *SystemClipboard) ReadText() string {
	if !c.Available() {
		return ""
	}
	return string(clipboard.Read(clipboard.FmtText))
}

// firstLine returns s up to the first line break.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
