// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level maps a level name to a zap level. Unknown names fall back to info.
func Level(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a logger writing to w. encoding is "json" or "console". The
// LOG_LEVEL environment variable overrides level when set.
func New(level, encoding string, w zapcore.WriteSyncer) *zap.Logger {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	cfg := zap.NewProductionConfig()
	var encoder zapcore.Encoder
	if strings.EqualFold(encoding, "json") {
		encoder = zapcore.NewJSONEncoder(cfg.EncoderConfig)
	} else {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(consoleCfg)
	}
	core := zapcore.NewCore(encoder, w, Level(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// Open returns a logger writing to path, or to stderr when path is empty.
// The returned func closes the file.
func Open(path, level, encoding string) (*zap.Logger, func(), error) {
	if path == "" {
		return New(level, encoding, zapcore.Lock(os.Stderr)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	logger := New(level, encoding, zapcore.AddSync(f))
	return logger, func() {
		_ = logger.Sync()
		_ = f.Close()
	}, nil
}
