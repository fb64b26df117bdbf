package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapConfig defines the Zap-backed logger configuration
type ZapConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "console"
	Output string `yaml:"output"` // "stdout", "stderr"
}

// DefaultZapConfig returns a sensible default configuration for a CLI tool:
// human-readable console output on stderr so request output stays clean.
func DefaultZapConfig() ZapConfig {
	return ZapConfig{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// NewZapLogger creates a Logger backed by a zap sugared logger.
func NewZapLogger(config ZapConfig) (Logger, error) {
	zapLogger, err := createZapLogger(config)
	if err != nil {
		return nil, err
	}
	sugar := zapLogger.Sugar()
	return NewLogger("", LogFuncs{
		Debugf: sugar.Debugf,
		Infof:  sugar.Infof,
		Warnf:  sugar.Warnf,
		Errorf: sugar.Errorf,
	}), nil
}

// createZapLogger creates a zap logger from configuration
func createZapLogger(config ZapConfig) (*zap.Logger, error) {
	level, err := getLevelFromString(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	var encoder zapcore.Encoder
	switch config.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default: // "console" or anything else
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writeSyncer zapcore.WriteSyncer
	switch config.Output {
	case "stdout":
		writeSyncer = zapcore.Lock(zapcore.AddSync(os.Stdout))
	default: // "stderr" or anything else
		writeSyncer = zapcore.Lock(zapcore.AddSync(os.Stderr))
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)

	return zap.New(core), nil
}

// In zap v1.27.0 this is zapcore.ParseLevel; v1.20.0 needs the switch.
func getLevelFromString(levelStr string) (zapcore.Level, error) {
	switch levelStr {
	case "debug":
		return zap.DebugLevel, nil
	case "info", "":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return -1, fmt.Errorf("invalid log level: %s", levelStr)
	}
}

// ValidLogLevel reports whether level is accepted by NewZapLogger.
func ValidLogLevel(level string) bool {
	_, err := getLevelFromString(level)
	return err == nil
}
