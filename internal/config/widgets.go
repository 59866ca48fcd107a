package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cansyan/ctrlpanel/panel"
)

// DefaultWidgets is used when no widgets file is configured.
var DefaultWidgets = panel.Config{
	panel.Slider("E"),
	panel.Slider("y"),
	panel.Checkbox("fullscreen"),
	panel.Input("username"),
}

// LoadWidgets reads a widgets file. An empty path yields DefaultWidgets.
func LoadWidgets(path string) (panel.Config, error) {
	if path == "" {
		return append(panel.Config(nil), DefaultWidgets...), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read widgets: %w", err)
	}
	cfg, err := ParseWidgets(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseWidgets decodes a document of the form
//
//	widgets:
//	  speed: slider
//	  debug: bool
//	  name: input
//
// keeping the order of the mapping, which is the order widgets are shown in.
func ParseWidgets(data []byte) (panel.Config, error) {
	var doc struct {
		Widgets yaml.Node `yaml:"widgets"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse widgets: %w", err)
	}
	n := &doc.Widgets
	if n.Kind == 0 {
		return nil, fmt.Errorf("parse widgets: missing widgets mapping")
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse widgets: line %d: widgets must be a mapping", n.Line)
	}

	cfg := make(panel.Config, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parse widgets: line %d: %q must map to a tag", val.Line, key.Value)
		}
		e, err := panel.ParseEntry(key.Value, val.Value)
		if err != nil {
			return nil, fmt.Errorf("parse widgets: line %d: %w", key.Line, err)
		}
		cfg = append(cfg, e)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
