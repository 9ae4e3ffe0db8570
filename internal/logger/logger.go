package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/sitesearch/internal/version"
)

// ServiceName is attached to every log entry.
const ServiceName = "sitesearch"

// NewLogger builds the process logger for env.
//
//	prod         JSON, info, sampled (100 per second per message, then 1 in 100)
//	local, dev   console with colored levels, debug
//	docker       as dev, without colors
//
// A non-empty levelOverride replaces the env default; see ParseLevel.
func NewLogger(env string, levelOverride ...string) (*zap.Logger, error) {
	cfg, err := preset(env)
	if err != nil {
		return nil, err
	}

	if len(levelOverride) > 0 && levelOverride[0] != "" {
		level, err := ParseLevel(levelOverride[0])
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := cfg.Build(
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.String("service", ServiceName),
			zap.String("env", env),
			zap.String("version", version.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

// ParseLevel accepts debug, info, warn, error (any case).
func ParseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	switch level {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel:
		return level, nil
	default:
		return level, fmt.Errorf("invalid log level %q: want debug, info, warn or error", s)
	}
}

func preset(env string) (zap.Config, error) {
	switch env {
	case "prod":
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
		return cfg, nil
	case "local", "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg, nil
	case "docker":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return cfg, nil
	default:
		return zap.Config{}, fmt.Errorf("unknown environment %q for logger", env)
	}
}
