// Package logger provides structured logging for shelterstats using zap.
//
// Log lines go to stderr by default so that command output on stdout stays
// clean. Report runs tag every line with the report name and a run id.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/shelterstats/internal/config"
)

// Logger wraps zap.SugaredLogger with the context fields the reports use.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

// New creates a Logger from configuration. A file output that cannot be
// opened is an error.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	ws, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	return build(cfg, ws), nil
}

// NewWithWriter creates a Logger writing to w regardless of cfg.Output.
func NewWithWriter(cfg *config.LoggingConfig, w io.Writer) *Logger {
	return build(cfg, zapcore.AddSync(w))
}

// NewDefault creates a Logger at info level, text format, on stderr.
func NewDefault() *Logger {
	return build(&config.LoggingConfig{Level: "info", Format: "text"}, zapcore.Lock(os.Stderr))
}

// NewNop creates a Logger that discards everything.
func NewNop() *Logger {
	return wrap(zap.NewNop())
}

func build(cfg *config.LoggingConfig, ws zapcore.WriteSyncer) *Logger {
	core := zapcore.NewCore(buildEncoder(cfg.Format), ws, parseLevel(cfg.Level))
	return wrap(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func wrap(base *zap.Logger) *Logger {
	return &Logger{SugaredLogger: base.Sugar(), base: base}
}

// parseLevel maps a config level to zap. Unknown levels log at info.
func parseLevel(level string) zapcore.Level {
	if level == "" {
		return zapcore.InfoLevel
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func buildEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder
	ec.FunctionKey = zapcore.OmitKey

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// openOutput resolves "stderr", "stdout" or a file path. Files are appended
// to and mirrored on stderr.
func openOutput(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "stderr", "":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}
	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.NewMultiWriteSyncer(zapcore.AddSync(file), zapcore.Lock(os.Stderr)), nil
}

func (l *Logger) with(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), base: l.base}
}

// WithReport tags log lines with the report being produced.
func (l *Logger) WithReport(report string) *Logger {
	return l.with("report", report)
}

// WithRun tags log lines with a run identifier.
func (l *Logger) WithRun(runID string) *Logger {
	return l.with("run", runID)
}

// WithSource tags log lines with the dataset source kind.
func (l *Logger) WithSource(kind string) *Logger {
	return l.with("source", kind)
}

// WithFields returns a Logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return l.with(args...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
