package moviemaker

import (
	"log/slog"

	"github.com/duskwillow/moviemaker/internal/mmlog"
)

// SetLogger configures the *slog.Logger used by every moviemaker package
// (texture, stage, compositor, encoder, and this root package). Pass nil to
// silence logging again.
func SetLogger(l *slog.Logger) {
	mmlog.Set(l)
}

// Logger returns the logger currently in effect.
func Logger() *slog.Logger {
	return mmlog.Get()
}
