package logger

import (
	"fmt"
	"io"

	"github.com/user/bannerkit/pkg/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger writes one JSON object per message through zap.
// Messages are formatted but not translated, so log pipelines see stable keys.
type StructuredLogger struct {
	z *zap.Logger
}

// NewStructured creates a JSON logger writing to w at the given level.
// LevelQuiet yields a logger that drops everything.
func NewStructured(level ports.LogLevel, w io.Writer) *StructuredLogger {
	if level == ports.LevelQuiet {
		return &StructuredLogger{z: zap.NewNop()}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(w),
		zapLevel(level),
	)
	return &StructuredLogger{z: zap.New(core)}
}

func zapLevel(level ports.LogLevel) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *StructuredLogger) Debug(msg string, args ...interface{}) {
	l.z.Debug(fmt.Sprintf(msg, args...))
}

func (l *StructuredLogger) Info(msg string, args ...interface{}) {
	l.z.Info(fmt.Sprintf(msg, args...))
}

func (l *StructuredLogger) Warn(msg string, args ...interface{}) {
	l.z.Warn(fmt.Sprintf(msg, args...))
}

func (l *StructuredLogger) Error(msg string, args ...interface{}) {
	l.z.Error(fmt.Sprintf(msg, args...))
}

// WithComponent attaches a "component" field to every later entry.
func (l *StructuredLogger) WithComponent(component string) ports.Logger {
	return &StructuredLogger{z: l.z.With(zap.String("component", component))}
}

// Sync flushes buffered entries.
func (l *StructuredLogger) Sync() error {
	return l.z.Sync()
}

var _ ports.Logger = (*StructuredLogger)(nil)
