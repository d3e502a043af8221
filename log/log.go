// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the logging facade of the module, backed by the slog based
// go-ethereum logger.
//
// Loggers returned by WithContext resolve the root logger on every call, so
// package level loggers pick up the handler the binary installs at startup.
package log

import (
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// Logger writes leveled, structured records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) root() ethlog.Logger {
	if len(l.ctx) == 0 {
		return ethlog.Root()
	}
	return ethlog.Root().With(l.ctx...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.root().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.root().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.root().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.root().Error(msg, ctx...) }

func (l *lazyLogger) With(ctx ...any) Logger {
	return &lazyLogger{ctx: append(append([]any(nil), l.ctx...), ctx...)}
}

// WithContext returns a logger tagging every record with ctx.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// Root returns the untagged logger.
func Root() Logger {
	return &lazyLogger{}
}

// Format names a record encoding.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
)

// NewHandler builds a handler writing records in format to w and dropping
// records above verbosity (0 silent .. 5 trace).
func NewHandler(w io.Writer, format Format, useColor bool, verbosity int) (slog.Handler, error) {
	var inner slog.Handler
	switch format {
	case FormatTerminal, "":
		inner = ethlog.NewTerminalHandler(w, useColor)
	case FormatJSON:
		inner = ethlog.JSONHandler(w)
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
	glog := ethlog.NewGlogHandler(inner)
	glog.Verbosity(ethlog.FromLegacyLevel(verbosity))
	return glog, nil
}

// SetDefault installs h as the root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Discard silences the root logger.
func Discard() {
	SetDefault(ethlog.DiscardHandler())
}
