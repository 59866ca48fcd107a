package panel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cansyan/ctrlpanel/store"
)

var (
	ErrUnknownKind   = errors.New("panel: unknown widget kind")
	ErrInvalidConfig = errors.New("panel: invalid config")
)

// Widget kind tags accepted in configuration.
const (
	TagSlider = "slider"
	TagBool   = "bool"
	TagInput  = "input"
)

// ParseKind resolves a configuration tag to the kind of value the widget
// publishes.
func ParseKind(tag string) (store.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case TagSlider:
		return store.KindInt, nil
	case TagBool:
		return store.KindBool, nil
	case TagInput:
		return store.KindString, nil
	}
	return store.KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}

// Tag is the inverse of ParseKind.
func Tag(k store.Kind) string {
	switch k {
	case store.KindInt:
		return TagSlider
	case store.KindBool:
		return TagBool
	case store.KindString:
		return TagInput
	}
	return ""
}

// Entry declares one widget.
type Entry struct {
	Name string
	Kind store.Kind
}

func Slider(name string) Entry   { return Entry{Name: name, Kind: store.KindInt} }
func Checkbox(name string) Entry { return Entry{Name: name, Kind: store.KindBool} }
func Input(name string) Entry    { return Entry{Name: name, Kind: store.KindString} }

// ParseEntry builds an entry from a name and a configuration tag.
func ParseEntry(name, tag string) (Entry, error) {
	k, err := ParseKind(tag)
	if err != nil {
		return Entry{}, fmt.Errorf("widget %q: %w", name, err)
	}
	return Entry{Name: name, Kind: k}, nil
}

// Config lists the widgets of a panel in display order.
type Config []Entry

// NewConfig returns a config holding entries, in order.
func NewConfig(entries ...Entry) Config {
	return append(Config(nil), entries...)
}

// Add appends an entry declared by tag.
func (c Config) Add(name, tag string) (Config, error) {
	e, err := ParseEntry(name, tag)
	if err != nil {
		return c, err
	}
	return append(c, e), nil
}

// ConfigFromTags pairs names with tags positionally.
func ConfigFromTags(names, tags []string) (Config, error) {
	if len(names) != len(tags) {
		return nil, fmt.Errorf("%w: %d names but %d tags", ErrInvalidConfig, len(names), len(tags))
	}
	c := make(Config, 0, len(names))
	for i, name := range names {
		var err error
		if c, err = c.Add(name, tags[i]); err != nil {
			return nil, err
		}
	}
	return c, c.Validate()
}

// Validate checks that names are unique and non-empty and kinds are known.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c))
	for i, e := range c {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: entry %d has an empty name", ErrInvalidConfig, i)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate widget %q", ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = true
		if Tag(e.Kind) == "" {
			return fmt.Errorf("widget %q: %w: %v", e.Name, ErrUnknownKind, e.Kind)
		}
	}
	return nil
}

// Names returns widget names in order.
func (c Config) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.Name
	}
	return names
}

func (c Config) fields() []store.Field {
	fields := make([]store.Field, len(c))
	for i, e := range c {
		fields[i] = store.Field{Name: e.Name, Kind: e.Kind}
	}
	return fields
}
