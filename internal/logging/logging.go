// Package logging configures the global zerolog logger. The terminal belongs
// to the TUI, so records go to a file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init points the global logger at path (append mode) and returns a closer.
// An empty path discards everything. debug lowers the level to Debug.
func Init(path string, debug bool) (func() error, error) {
    zerolog.TimestampFieldName = "timestamp"
    zerolog.SetGlobalLevel(zerolog.InfoLevel)
    if debug {
        zerolog.SetGlobalLevel(zerolog.DebugLevel)
    }
    if path == "" {
        log.Logger = zerolog.Nop()
        return func() error { return nil }, nil
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return nil, err
    }
    f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
    if err != nil {
        return nil, err
    }
    log.Logger = New(f)
    log.Info().Bool("debug", debug).Msg("initialized logger")
    return f.Close, nil
}

// New builds the logger used by the program on top of w.
func New(w io.Writer) zerolog.Logger {
    return zerolog.New(w).
        With().
        Timestamp().
        Int("pid", os.Getpid()).
        Logger()
}

// Console is used by batch (non-TUI) commands: human-readable lines on stderr.
func Console(debug bool) {
    zerolog.SetGlobalLevel(zerolog.InfoLevel)
    if debug {
        zerolog.SetGlobalLevel(zerolog.DebugLevel)
    }
    cw := zerolog.NewConsoleWriter()
    cw.Out = os.Stderr
    cw.TimeFormat = time.DateTime
    log.Logger = zerolog.New(cw).With().Timestamp().Logger()
}
