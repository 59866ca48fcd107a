// Package config loads runtime settings for the ctrlpanel binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the demo host.
type Config struct {
	Logging Logging
	Panel   Panel
	Metrics Metrics
}

type Logging struct {
	File  string
	Trace bool
}

type Panel struct {
	TickRate    int    `mapstructure:"tick_rate"`
	WidgetsFile string `mapstructure:"widgets_file"`
	// PollInterval is how often, in milliseconds, the host reads values.
	PollInterval int `mapstructure:"poll_interval"`
}

type Metrics struct {
	Addr string
}

const envConfig = "CTRLPANEL_CONFIG"

// Load reads configuration from defaults, an optional config file, the
// environment (prefix CTRLPANEL_) and args, later sources winning.
func Load(args []string) (Config, error) {
	v := viper.New()

	v.SetDefault("logging.file", "ctrlpanel.log")
	v.SetDefault("logging.trace", false)
	v.SetDefault("panel.tick_rate", 60)
	v.SetDefault("panel.widgets_file", "")
	v.SetDefault("panel.poll_interval", 500)
	v.SetDefault("metrics.addr", "")

	fs := pflag.NewFlagSet("ctrlpanel", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	cfgFile := fs.String("config", os.Getenv(envConfig), "path to a config file")
	fs.String("log-file", "", "path to the log file")
	fs.Bool("trace", false, "log every published value")
	fs.Int("tick-rate", 0, "panel redraws per second")
	fs.String("widgets", "", "YAML file declaring the widgets")
	fs.Int("poll-interval", 0, "host poll interval in milliseconds")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	bindings := map[string]string{
		"logging.file":        "log-file",
		"logging.trace":       "trace",
		"panel.tick_rate":     "tick-rate",
		"panel.widgets_file":  "widgets",
		"panel.poll_interval": "poll-interval",
		"metrics.addr":        "metrics-addr",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	v.SetConfigType("yaml")
	if *cfgFile != "" {
		v.SetConfigFile(*cfgFile)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ctrlpanel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CTRLPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate ensures settings are in range.
func Validate(cfg Config) error {
	if cfg.Panel.TickRate < 1 || cfg.Panel.TickRate > 240 {
		return fmt.Errorf("tick rate must be in [1, 240] (got %d)", cfg.Panel.TickRate)
	}
	if cfg.Panel.PollInterval < 1 {
		return fmt.Errorf("poll interval must be positive (got %d)", cfg.Panel.PollInterval)
	}
	return nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
