package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/codelens/pkg/settings"
)

// LoggerZap is the application logger. It embeds *zap.Logger so callers use
// zap's typed fields directly.
type LoggerZap struct {
	*zap.Logger
}

// New builds a logger that writes console output to stdout and, when a file
// name is configured, JSON lines to a rotating file.
func New(cfg settings.Logger) *LoggerZap {
	level := parseLevel(cfg.LogLevel)

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig()),
			zapcore.AddSync(os.Stdout),
			level,
		),
	}

	if cfg.FileLogName != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.FileLogName,
			MaxSize:    cfg.MaxSize, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	return &LoggerZap{
		Logger: zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
	}
}

// NewNop returns a logger that discards everything.
func NewNop() *LoggerZap {
	return &LoggerZap{Logger: zap.NewNop()}
}

// Named returns a child logger scoped to a component.
func (l *LoggerZap) Named(name string) *LoggerZap {
	return &LoggerZap{Logger: l.Logger.Named(name)}
}

func parseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}
