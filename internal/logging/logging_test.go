package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("close failed") }

type okCloser struct{ closed bool }

func (c *okCloser) Close() error {
	c.closed = true
	return nil
}

func TestNewStructuredLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	logger.Debug("should be filtered")
	logger.Info("should appear", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "should be filtered")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, "key=value")
}

func TestSafeCloseWithLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	c := &okCloser{}
	SafeCloseWithLogging(c, logger, "ok_resource")
	assert.True(t, c.closed)
	assert.Empty(t, buf.String())

	SafeCloseWithLogging(failingCloser{}, logger, "bad_resource")
	assert.Contains(t, buf.String(), "failed to close resource")
	assert.Contains(t, buf.String(), "bad_resource")

	// Nil closer is a no-op
	SafeCloseWithLogging(nil, logger, "nil_resource")
}
