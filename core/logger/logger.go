package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "06-01-02 15:04:05"

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

type Options struct {
	Writer  io.Writer
	Verbose bool
	Color   bool
	// LogFile receives an uncolored copy of every entry when set.
	LogFile string
}

// Logger is a leveled printf-style logger. The zero value is not usable; use
// New or Nop.
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
	file  *os.File
}

func New(opts Options) (*Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(opts.Color), zapcore.AddSync(w), level),
	}

	var file *os.File
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", opts.LogFile, err)
		}
		file = f
		cores = append(cores, zapcore.NewCore(newEncoder(false), zapcore.AddSync(f), level))
	}

	return &Logger{
		sugar: zap.New(zapcore.NewTee(cores...)).Sugar(),
		level: level,
		file:  file,
	}, nil
}

// FromCore wraps an existing zap core, mostly for tests using zaptest/observer.
func FromCore(core zapcore.Core) *Logger {
	return &Logger{
		sugar: zap.New(core).Sugar(),
		level: zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

func Nop() *Logger {
	return &Logger{
		sugar: zap.NewNop().Sugar(),
		level: zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
}

func newEncoder(color bool) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeLevel:      levelEncoder(color),
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format(timeLayout) + "]")
		},
		EncodeDuration: zapcore.StringDurationEncoder,
	})
}

func levelEncoder(color bool) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		name := fmt.Sprintf("%-5s", l.CapitalString())
		if color {
			name = levelColor(l) + name + ColorReset
		}
		enc.AppendString(name)
	}
}

func levelColor(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return ColorGray
	case zapcore.InfoLevel:
		return ColorBlue
	case zapcore.WarnLevel:
		return ColorYellow
	case zapcore.ErrorLevel:
		return ColorRed
	default:
		return ColorPurple
	}
}

func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	l.level.SetLevel(zapcore.InfoLevel)
}

func (l *Logger) IsVerbose() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	switch level {
	case DEBUG:
		l.Debug(format, args...)
	case WARN:
		l.Warn(format, args...)
	case ERROR:
		l.Error(format, args...)
	default:
		l.Info(format, args...)
	}
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.sugar.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
