// Command ctrlpanel opens a debug control panel in the terminal and logs the
// values it publishes, showing how a host program polls a panel.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/cansyan/ctrlpanel/internal/config"
	"github.com/cansyan/ctrlpanel/internal/logging"
	"github.com/cansyan/ctrlpanel/panel"
	"github.com/cansyan/ctrlpanel/store"
	"github.com/cansyan/ctrlpanel/ui"
)

func main() {
	cfg := config.MustLoad()
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("ctrlpanel needs an interactive terminal")
	}
	widgets, err := config.LoadWidgets(cfg.Panel.WidgetsFile)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(cfg.Logging.File, cfg.Logging.Trace)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clip := ui.NewSystemClipboard()
	if !clip.Available() {
		log.Warn().Msg("system clipboard unavailable, paste disabled")
	}

	h, err := panel.Create(ctx, widgets,
		panel.WithLogger(log),
		panel.WithTickRate(cfg.Panel.TickRate),
		panel.WithClipboard(clip),
	)
	if err != nil {
		return err
	}
	log.Info().Str("panel_id", h.ID()).Strs("widgets", widgets.Names()).Msg("polling panel")

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, h, log)
		defer srv.Close()
	}

	poll(h, widgets.Names(), time.Duration(cfg.Panel.PollInterval)*time.Millisecond, log)
	if err := h.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("panel closed")
	return nil
}

func serveMetrics(addr string, h *panel.Handle, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(h.Gatherer(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server")
		}
	}()
	return srv
}

// poll logs the panel values whenever they change, until the panel exits.
func poll(h *panel.Handle, names []string, every time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var seen uint64
	for {
		select {
		case <-h.Done():
			return
		case <-ticker.C:
		}
		if v := h.Version(); v != seen {
			seen = v
			log.Info().Uint64("version", v).Msg(describe(h, names))
		}
	}
}

// describe renders the current values as name=value pairs.
func describe(h *panel.Handle, names []string) string {
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := h.Value(name, store.Value{})
		if s, ok := v.AsString(); ok {
			fmt.Fprintf(&b, "%s=%q", name, s)
		} else {
			fmt.Fprintf(&b, "%s=%s", name, v)
		}
	}
	return b.String()
}
