package panel

import (
	"errors"
	"testing"

	"github.com/cansyan/ctrlpanel/store"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag     string
		want    store.Kind
		wantErr bool
	}{
		{"slider", store.KindInt, false},
		{"bool", store.KindBool, false},
		{"input", store.KindString, false},
		{" Slider ", store.KindInt, false},
		{"dropdown", store.KindInvalid, true},
		{"", store.KindInvalid, true},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseKind(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownKind) {
				t.Errorf("error %v is not ErrUnknownKind", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.tag, got, tt.want)
			}
			if err == nil && Tag(got) != TagSlider && Tag(got) != TagBool && Tag(got) != TagInput {
				t.Errorf("Tag(%v) = %q", got, Tag(got))
			}
		})
	}
}

func TestParseEntry(t *testing.T) {
	e, err := ParseEntry("fullscreen", "bool")
	if err != nil || e != Checkbox("fullscreen") {
		t.Errorf("ParseEntry() = %+v, %v", e, err)
	}
	if _, err := ParseEntry("x", "knob"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseEntry(knob) error = %v, want ErrUnknownKind", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"ok", Config{Slider("E"), Checkbox("fullscreen"), Input("username")}, nil},
		{"empty", Config{}, nil},
		{"blank name", Config{Slider(" ")}, ErrInvalidConfig},
		{"duplicate", Config{Slider("a"), Input("a")}, ErrInvalidConfig},
		{"bad kind", Config{{Name: "a", Kind: store.KindInvalid}}, ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigNames(t *testing.T) {
	cfg := Config{Slider("E"), Slider("y"), Checkbox("fullscreen")}
	got := cfg.Names()
	want := []string{"E", "y", "fullscreen"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConfigFromTags(t *testing.T) {
	cfg, err := ConfigFromTags([]string{"E", "fullscreen", "username"}, []string{"slider", "bool", "input"})
	if err != nil {
		t.Fatalf("ConfigFromTags() error = %v", err)
	}
	want := NewConfig(Slider("E"), Checkbox("fullscreen"), Input("username"))
	for i := range want {
		if cfg[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, cfg[i], want[i])
		}
	}

	if _, err := ConfigFromTags([]string{"a"}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("length mismatch error = %v", err)
	}
	if _, err := ConfigFromTags([]string{"a"}, []string{"dial"}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown tag error = %v", err)
	}
	if _, err := ConfigFromTags([]string{"a", "a"}, []string{"bool", "bool"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("duplicate error = %v", err)
	}
}
