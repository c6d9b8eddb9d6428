package utils

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// NewLogger builds the root logger. format "json" switches to JSON lines.
func NewLogger(name, level, format string) hclog.Logger {
	return NewLoggerTo(os.Stderr, name, level, format)
}

func NewLoggerTo(w io.Writer, name, level, format string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      lvl,
		Output:     w,
		JSONFormat: format == "json",
	})
}
