package logging

import (
	"io"
	"log/slog"
)

// NewStructuredLogger creates a slog.Logger writing key=value text lines to w
// at the given minimum level.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// SafeCloseWithLogging closes c and logs the error, if any, instead of
// returning it. Intended for defer sites where the close error is
// non-actionable.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, name string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "resource", name, "error", err)
	}
}
