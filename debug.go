package artistloader

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var (
	pkgLogger atomic.Pointer[slog.Logger]
	logLevel  = new(slog.LevelVar)
)

func init() {
	pkgLogger.Store(NewLogger(os.Stderr, slog.LevelInfo))
}

// NewLogger builds the text logger the package uses by default. Its level
// follows SetLogLevel.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logLevel.Set(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})).
		With(slog.String("component", "artistloader"))
}

// SetLogger replaces the package logger. A nil logger discards everything.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pkgLogger.Store(l)
}

// SetLogLevel adjusts the level of loggers built by NewLogger.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// ParseLogLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown names are Info.
func ParseLogLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}

// frameStats holds per-frame timing and counts. Only gathered when the
// scene is in debug mode.
type frameStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	nodes      int
	widgets    int
	overlays   int
}

// debugLog reports the last frame's stats at Debug level.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	logger().Debug("frame",
		slog.Duration("update", stats.updateTime),
		slog.Duration("draw", stats.drawTime),
		slog.Int("nodes", stats.nodes),
		slog.Int("widgets", stats.widgets),
		slog.Int("overlays", stats.overlays),
	)
}
