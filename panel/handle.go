// Package panel runs a live control panel next to a host program.
//
// Create starts the panel on its own goroutine and returns a Handle the host
// polls for widget values. Lookups never block and never fail: when the
// handle is nil, the panel has exited or the name is unknown, the caller's
// default is returned.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cansyan/ctrlpanel/store"
	"github.com/cansyan/ctrlpanel/ui"
)

const DefaultTickRate = 60

var ErrClosed = errors.New("panel: closed")

type options struct {
	screen    tcell.Screen
	tickRate  int
	quitKey   tcell.Key
	logger    zerolog.Logger
	clipboard ui.Clipboard
	registry  *prometheus.Registry
	scale     ui.Scale
}

type Option func(*options)

// WithScreen draws on screen instead of a new terminal screen.
func WithScreen(s tcell.Screen) Option { return func(o *options) { o.screen = s } }

// WithTickRate sets how many times per second the panel handles input and redraws.
func WithTickRate(hz int) Option { return func(o *options) { o.tickRate = hz } }

// WithQuitKey sets the key that closes the panel. Ctrl+C always does.
func WithQuitKey(k tcell.Key) Option { return func(o *options) { o.quitKey = k } }

func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.logger = l } }

// WithClipboard sets where text fields paste from on Ctrl+V.
func WithClipboard(c ui.Clipboard) Option { return func(o *options) { o.clipboard = c } }

// WithRegistry registers panel metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option { return func(o *options) { o.registry = reg } }

// WithScale overrides how many panel units one terminal cell spans.
func WithScale(s ui.Scale) Option { return func(o *options) { o.scale = s } }

// Handle is the host's view of a running panel. A nil *Handle is valid and
// answers every lookup with the default.
type Handle struct {
	id       string
	store    atomic.Pointer[store.Store]
	runtime  *Runtime
	group    *errgroup.Group
	cancel   context.CancelFunc
	done     chan struct{}
	registry *prometheus.Registry
}

// Create validates cfg, seeds the store with zero values and starts the panel.
// The panel stops when ctx is cancelled, when Close is called or when the
// user presses the quit key.
func Create(ctx context.Context, cfg Config, opts ...Option) (*Handle, error) {
	o := &options{
		tickRate: DefaultTickRate,
		quitKey:  tcell.KeyEscape,
		logger:   zerolog.Nop(),
		scale:    ui.DefaultScale,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tickRate <= 0 {
		return nil, fmt.Errorf("%w: tick rate must be positive (got %d)", ErrInvalidConfig, o.tickRate)
	}
	if o.scale.X <= 0 || o.scale.Y <= 0 {
		return nil, fmt.Errorf("%w: scale must be positive (got %+v)", ErrInvalidConfig, o.scale)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = append(Config(nil), cfg...)

	st, err := store.New(cfg.fields())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}
	h := &Handle{
		id:       uuid.NewString(),
		done:     make(chan struct{}),
		registry: o.registry,
	}
	m, err := newMetrics(o.registry, h.id)
	if err != nil {
		return nil, err
	}

	screen := o.screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("panel: new screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("panel: init screen: %w", err)
	}
	screen.EnableMouse()
	screen.SetTitle(ui.CaptionTitle)

	o.logger = o.logger.With().Str("panel_id", h.id).Logger()
	h.store.Store(st)
	h.runtime = newRuntime(cfg, st, screen, o, m)

	ctx, h.cancel = context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer h.release()
		return h.runtime.Run(gctx)
	})
	h.group = g
	return h, nil
}

// release drops the store so later lookups fall back to defaults.
func (h *Handle) release() {
	h.store.Store(nil)
	close(h.done)
}

func (h *Handle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

func (h *Handle) current() *store.Store {
	if h == nil {
		return nil
	}
	return h.store.Load()
}

// Value returns the latest value published for name, or def.
func (h *Handle) Value(name string, def store.Value) store.Value {
	if v, ok := h.current().Read(name); ok {
		return v
	}
	return def
}

// Int returns the value of a slider, or def.
func (h *Handle) Int(name string, def int) int { return Get(h, name, def) }

// Bool returns the value of a checkbox, or def.
func (h *Handle) Bool(name string, def bool) bool { return Get(h, name, def) }

// String returns the value of a text field, or def.
func (h *Handle) String(name string, def string) string { return Get(h, name, def) }

// Get returns the value published for name when it has type T, or def.
func Get[T int | bool | string](h *Handle, name string, def T) T {
	v, ok := h.current().Read(name)
	if !ok {
		return def
	}
	var out any
	switch any(def).(type) {
	case int:
		if n, ok := v.AsInt(); ok {
			out = n
		}
	case bool:
		if b, ok := v.AsBool(); ok {
			out = b
		}
	case string:
		if s, ok := v.AsString(); ok {
			out = s
		}
	}
	if t, ok := out.(T); ok {
		return t
	}
	return def
}

// Snapshot returns every published value, or nil once the panel has exited.
func (h *Handle) Snapshot() map[string]store.Value {
	st := h.current()
	if st == nil {
		return nil
	}
	return st.Snapshot()
}

// Version counts publishes so far; it is 0 for a nil or exited handle.
func (h *Handle) Version() uint64 {
	st := h.current()
	if st == nil {
		return 0
	}
	return st.Version()
}

// Done is closed once the panel has exited.
func (h *Handle) Done() <-chan struct{} {
	if h == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return h.done
}

// Wait blocks until the panel exits.
func (h *Handle) Wait() error {
	if h == nil {
		return ErrClosed
	}
	return h.group.Wait()
}

// Close stops the panel and waits for it to exit.
func (h *Handle) Close() error {
	if h == nil {
		return ErrClosed
	}
	h.cancel()
	return h.Wait()
}

// Gatherer exposes the panel metrics.
func (h *Handle) Gatherer() prometheus.Gatherer {
	if h == nil {
		return prometheus.NewRegistry()
	}
	return h.registry
}
