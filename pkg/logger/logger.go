package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger shared by the API service and the admin CLI.
// - zap-backed, JSON in production and console output otherwise
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = newLogger(false)
	sugar = base.Sugar()
)

func newLogger(production bool) *zap.Logger {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
	}
	cfg.Level = level
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	level.SetLevel(parseLevel(l))
}

// Configure switches the output encoding. production=true emits JSON lines.
func Configure(production bool) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(production)
	sugar = base.Sugar()
}

// Use replaces the underlying logger, mostly for tests.
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l.WithOptions(zap.AddCallerSkip(1))
	sugar = base.Sugar()
}

func parseLevel(l string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Enabled reports whether messages at lvl are emitted.
func Enabled(lvl zapcore.Level) bool {
	return level.Enabled(lvl)
}

// With returns a structured logger carrying the given key/value pairs.
// Its entries report the line that calls it, not a frame above.
func With(kv ...interface{}) *zap.SugaredLogger {
	return current().WithOptions(zap.AddCallerSkip(-1)).With(kv...)
}

func Debugf(format string, v ...interface{}) {
	if !Enabled(zapcore.DebugLevel) {
		return
	}
	current().Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	if !Enabled(zapcore.InfoLevel) {
		return
	}
	current().Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	if !Enabled(zapcore.WarnLevel) {
		return
	}
	current().Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	if !Enabled(zapcore.ErrorLevel) {
		return
	}
	current().Errorf(format, v...)
}

// Fatalf logs and exits the process with status 1.
func Fatalf(format string, v ...interface{}) {
	current().Fatalf(format, v...)
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = current().Sync()
}

// LevelString returns the current level as text.
func LevelString() string {
	return level.Level().String()
}
