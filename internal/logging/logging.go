// Package logging opens the file logger used by the ctrlpanel binary.
//
// The panel owns the terminal, so nothing may be written to stdout or
// stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a logger appending to path. With trace set every published
// value is logged as well.
func Open(path string, trace bool) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, trace), f.Close, nil
}

// New returns a timestamped logger writing to w.
func New(w io.Writer, trace bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if trace {
		level = zerolog.TraceLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
