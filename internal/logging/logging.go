// Package logging is the pool's logging seam. The library stays silent by
// default; callers that want visibility inject a bilog.Logger through the
// public options and every lifecycle event flows through the Logger
// interface below.
package logging

import (
	"fmt"

	"github.com/zbh255/bilog"
)

// Logger is the printf-style leveled interface the pool logs against.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Bilog adapts a bilog.Logger to the Logger interface. bilog has no Warn
// level, so Warn maps onto Trace.
type Bilog struct {
	logging bilog.Logger
}

// NewBilog wraps a bilog.Logger. A nil argument yields a no-op Logger.
func NewBilog(l bilog.Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return &Bilog{logging: l}
}

func (b *Bilog) Debug(format string, v ...interface{}) {
	b.logging.Debug(fmt.Sprintf(format, v...))
}

func (b *Bilog) Info(format string, v ...interface{}) {
	b.logging.Info(fmt.Sprintf(format, v...))
}

func (b *Bilog) Warn(format string, v ...interface{}) {
	b.logging.Trace(fmt.Sprintf(format, v...))
}

func (b *Bilog) Error(format string, v ...interface{}) {
	b.logging.ErrorFromString(fmt.Sprintf(format, v...))
}

// Nop discards everything. It is the default for pools constructed without
// a logger.
type Nop struct{}

func (Nop) Debug(format string, v ...interface{}) {}
func (Nop) Info(format string, v ...interface{})  {}
func (Nop) Warn(format string, v ...interface{})  {}
func (Nop) Error(format string, v ...interface{}) {}
