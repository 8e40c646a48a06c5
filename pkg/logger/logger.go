package logger

import (
	"eduverse_backend/internal/config"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is a no-op logger until InitLogger runs, so packages stay usable in tests.
var Log = zap.NewNop()

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// Level resolves the configured level. Debug mode logs at debug unless a level
// is set explicitly.
func Level(cfg config.LoggingConfig, mode string) (zapcore.Level, error) {
	if cfg.Level == "" {
		if mode == "debug" {
			return zap.DebugLevel, nil
		}
		return zap.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.InfoLevel, fmt.Errorf("logging level %q: %w", cfg.Level, err)
	}
	return level, nil
}

// New builds a logger writing JSON lines to the rotated file (when one is
// configured) and human-readable lines to console.
func New(cfg config.LoggingConfig, level zapcore.Level, console zapcore.WriteSyncer) *zap.Logger {
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), console, level),
	}
	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

func InitLogger(cfg *config.Config) {
	level, err := Level(cfg.Logging, cfg.Server.Mode)
	if err != nil {
		log.Printf("%v, falling back to %s", err, level)
	}
	Log = New(cfg.Logging, level, zapcore.AddSync(os.Stdout))
}
