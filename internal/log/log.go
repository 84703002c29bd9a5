// Package log provides context-aware logging for imsctx.
package log

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Logger provides user-facing diagnostics and verbose debug logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	debug   *zap.SugaredLogger
}

// New creates a new logger. Quiet suppresses all output, including
// verbose debug lines.
func New(out io.Writer, verbose, quiet bool) *Logger {
	l := &Logger{out: out, verbose: verbose, quiet: quiet}
	if l.IsVerbose() {
		l.debug = newDebugLogger(out)
	} else {
		l.debug = zap.NewNop().Sugar()
	}
	return l
}

// newDebugLogger builds a console logger without timestamps or levels,
// so debug lines read like the rest of the CLI output.
func newDebugLogger(out io.Writer) *zap.SugaredLogger {
	encCfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(out),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, false)
}

// Printf writes formatted output unless quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output unless quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Debug logs msg with alternating key/value pairs. Only prints when verbose.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.debug.Debugw(msg, keyvals...)
}

// IsVerbose returns true if debug output is enabled.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
