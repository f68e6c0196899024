package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

func init() {
	Init()
}

// Init builds the global logger. Safe to call again (e.g. after config load
// switches the environment).
func Init() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	sugar = l.Sugar()
}

func Info(msg string, args ...any) {
	sugar.Infow(msg, args...)
}

func Warn(msg string, args ...any) {
	sugar.Warnw(msg, args...)
}

func Error(msg string, args ...any) {
	// Callers often pass a bare error as the only argument
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			sugar.Errorw(msg, "error", err)
			return
		}
	}
	sugar.Errorw(msg, args...)
}

func Debug(msg string, args ...any) {
	sugar.Debugw(msg, args...)
}

// Sync flushes buffered log entries; called on shutdown.
func Sync() {
	_ = sugar.Sync()
}
