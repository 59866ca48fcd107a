package panel

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/cansyan/ctrlpanel/store"
	"github.com/cansyan/ctrlpanel/ui"
)

// Runtime owns the widgets and runs the panel's event loop. It is the only
// writer of the store and never reads it back.
type Runtime struct {
	screen     tcell.Screen
	surface    *ui.Surface
	translator ui.Translator
	canvas     ui.Canvas
	focus      ui.Focus
	widgets    []ui.Widget
	store      *store.Store
	tick       time.Duration
	quitKey    tcell.Key
	log        zerolog.Logger
	metrics    *metrics
}

func newRuntime(cfg Config, st *store.Store, screen tcell.Screen, o *options, m *metrics) *Runtime {
	r := &Runtime{
		screen:     screen,
		surface:    ui.NewSurface(screen, o.scale),
		translator: ui.Translator{Scale: o.scale},
		store:      st,
		tick:       time.Second / time.Duration(o.tickRate),
		quitKey:    o.quitKey,
		log:        o.logger,
		metrics:    m,
	}
	env := ui.Env{Focus: &r.focus, Publish: r.publish, Clipboard: o.clipboard}
	r.widgets = buildWidgets(cfg, env)
	return r
}

// buildWidgets lays widgets out top to bottom in configuration order.
func buildWidgets(cfg Config, env ui.Env) []ui.Widget {
	widgets := make([]ui.Widget, 0, len(cfg))
	for i, e := range cfg {
		y := ui.RowY(i)
		switch e.Kind {
		case store.KindInt:
			widgets = append(widgets, ui.NewSlider(e.Name, y, env))
		case store.KindBool:
			widgets = append(widgets, ui.NewCheckbox(e.Name, y, env))
		case store.KindString:
			widgets = append(widgets, ui.NewTextField(e.Name, y, env))
		default:
			panic(fmt.Sprintf("panel: widget %q has unvalidated kind %v", e.Name, e.Kind))
		}
	}
	return widgets
}

func (r *Runtime) Widgets() []ui.Widget { return r.widgets }
func (r *Runtime) Offset() int          { return r.canvas.Offset }

func (r *Runtime) publish(name string, v store.Value) {
	if err := r.store.Write(name, v); err != nil {
		r.metrics.dropped.Inc()
		r.log.Error().Err(err).Str("widget", name).Msg("publish rejected")
		return
	}
	r.metrics.publishes.Inc()
	r.log.Trace().Str("widget", name).Stringer("value", v).Msg("publish")
}

// Run processes input and redraws once per tick until ctx is done or the
// quit key is pressed. The screen is finalized before Run returns.
func (r *Runtime) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	go r.screen.ChannelEvents(events, quit)
	defer func() {
		close(quit)
		r.screen.Fini()
	}()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.log.Info().Int("widgets", len(r.widgets)).Dur("tick", r.tick).Msg("panel started")
	r.Draw()
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("panel stopped by host")
			return nil
		case <-ticker.C:
			if r.drain(events) {
				r.log.Info().Msg("panel closed")
				return nil
			}
			r.Draw()
		}
	}
}

// drain handles every pending event. It reports whether the loop should stop.
func (r *Runtime) drain(events <-chan tcell.Event) bool {
	r.metrics.ticks.Inc()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return true
			}
			if r.HandleEvent(ev) {
				return true
			}
		default:
			return false
		}
	}
}

// HandleEvent applies one screen event. It reports whether ev asks the panel
// to close.
func (r *Runtime) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
		return false
	case *tcell.EventKey:
		if ev.Key() == r.quitKey || ev.Key() == tcell.KeyCtrlC {
			return true
		}
	}

	pev, ok := r.translator.Translate(ev)
	if !ok {
		return false
	}
	r.metrics.events.WithLabelValues(ui.EventName(pev)).Inc()
	if w, ok := pev.(ui.Wheel); ok {
		r.canvas.Scroll(w.DY)
		r.metrics.offset.Set(float64(r.canvas.Offset))
		r.log.Debug().Int("offset", r.canvas.Offset).Msg("scroll")
		return false
	}
	if p, ok := pev.(ui.PointerDown); ok && p.Y < ui.CaptionHeight {
		return false
	}
	pev = r.canvas.ToContent(pev)
	for _, w := range r.widgets {
		w.HandleEvent(pev)
	}
	return false
}

// Draw renders one frame.
func (r *Runtime) Draw() {
	r.surface.Clear(ui.Theme.Base())
	for _, w := range r.widgets {
		w.Render(r.surface, r.canvas.Offset)
	}
	caption := ui.Rect{X: 0, Y: 0, W: ui.PanelWidth, H: ui.CaptionHeight}
	st := ui.Theme.Base().Merge(ui.Style{BG: ui.Theme.Caption, Bold: true})
	r.surface.Fill(caption, st)
	r.surface.Text(caption.Translate(ui.LabelX, 0), ui.CaptionTitle, st)
	r.screen.Show()
}
