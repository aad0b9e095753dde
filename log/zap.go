// MIT License
//
// Copyright (c) 2023-2026 Spoolworks
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DebugLogger is a global logger that outputs messages at DebugLevel and
	// above to os.Stdout.
	DebugLogger = NewZap(DebugLevel, os.Stdout)

	// DiscardLogger is a no-op logger that discards all log messages.
	DiscardLogger Logger = discardLogger{}

	// DefaultLogger is a global logger that outputs messages at InfoLevel and
	// above to os.Stdout.
	DefaultLogger = NewZap(InfoLevel, os.Stdout)
)

// Zap implements the Logger interface with zap as the underlying logging
// library.
type Zap struct {
	logger  *zap.SugaredLogger
	level   Level
	outputs []io.Writer
	syncers []zapcore.WriteSyncer
}

// enforce compilation error when the interface contract changes
var _ Logger = (*Zap)(nil)

// NewZap creates a zap-backed Logger writing to the given writers at the
// given level.
func NewZap(level Level, writers ...io.Writer) *Zap {
	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, writer := range writers {
		syncers = append(syncers, zapcore.AddSync(writer))
	}

	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(config),
		zap.CombineWriteSyncers(syncers...),
		toZapLevel(level),
	)

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		logger:  zapLogger.Sugar(),
		level:   level,
		outputs: writers,
		syncers: syncers,
	}
}

// Debug starts a message with debug level.
func (z *Zap) Debug(v ...any) {
	z.logger.Debug(v...)
}

// Debugf starts a formatted message with debug level.
func (z *Zap) Debugf(format string, v ...any) {
	z.logger.Debugf(format, v...)
}

// Info starts a message with info level.
func (z *Zap) Info(v ...any) {
	z.logger.Info(v...)
}

// Infof starts a formatted message with info level.
func (z *Zap) Infof(format string, v ...any) {
	z.logger.Infof(format, v...)
}

// Warn starts a message with warn level.
func (z *Zap) Warn(v ...any) {
	z.logger.Warn(v...)
}

// Warnf starts a formatted message with warn level.
func (z *Zap) Warnf(format string, v ...any) {
	z.logger.Warnf(format, v...)
}

// Error starts a message with error level.
func (z *Zap) Error(v ...any) {
	z.logger.Error(v...)
}

// Errorf starts a formatted message with error level.
func (z *Zap) Errorf(format string, v ...any) {
	z.logger.Errorf(format, v...)
}

// Fatal starts a message with fatal level then calls os.Exit(1).
func (z *Zap) Fatal(v ...any) {
	z.logger.Fatal(v...)
}

// Fatalf starts a formatted message with fatal level then calls os.Exit(1).
func (z *Zap) Fatalf(format string, v ...any) {
	z.logger.Fatalf(format, v...)
}

// LogLevel returns the log level being used.
func (z *Zap) LogLevel() Level {
	return z.level
}

// LogOutput returns the log output writers that are set.
func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

// Sync flushes any buffered log entries, combining the flush errors of the
// logger core and of every configured writer. Applications should take care
// to call Sync before exiting.
func (z *Zap) Sync() error {
	errs := []error{z.logger.Sync()}
	for _, syncer := range z.syncers {
		errs = append(errs, syncer.Sync())
	}
	return multierr.Combine(errs...)
}

// toZapLevel maps a Level to the corresponding zapcore level. Unknown levels
// map to warn so that misconfiguration stays visible.
func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.WarnLevel
	}
}
