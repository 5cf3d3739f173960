package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zbh255/bilog"
)

// TestNewBilogNil verifies a missing logger degrades to the no-op
// implementation instead of a nil dereference in the worker loop.
func TestNewBilogNil(t *testing.T) {
	l := NewBilog(nil)
	assert.IsType(t, Nop{}, l)

	// Must not panic.
	l.Debug("d %d", 1)
	l.Info("i")
	l.Warn("w")
	l.Error("e")
}

// TestBilogAdapter smoke-tests the level mapping against a real bilog
// instance.
func TestBilogAdapter(t *testing.T) {
	var buf bytes.Buffer
	l := NewBilog(bilog.NewLogger(&buf, bilog.PANIC,
		bilog.WithLowBuffer(0), bilog.WithTopBuffer(0)))

	l.Debug("debug %s", "x")
	l.Info("info %s", "y")
	l.Warn("warn %s", "z")
	l.Error("error %s", "w")
}
