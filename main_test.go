package main

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/cansyan/ctrlpanel/panel"
)

func TestDescribeNilHandle(t *testing.T) {
	var h *panel.Handle
	got := describe(h, []string{"E", "username"})
	want := "E=<invalid> username=<invalid>"
	if got != want {
		t.Errorf("describe() = %q, want %q", got, want)
	}
}

func TestDescribeRunningPanel(t *testing.T) {
	cfg := panel.NewConfig(panel.Slider("E"), panel.Checkbox("fullscreen"), panel.Input("username"))
	h, err := panel.Create(context.Background(), cfg, panel.WithScreen(tcell.NewSimulationScreen("UTF-8")))
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	got := describe(h, cfg.Names())
	want := `E=0 fullscreen=false username=""`
	if got != want {
		t.Errorf("describe() = %q, want %q", got, want)
	}
}
