package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/dzonerzy/go-easyparse/easyparse"
)

// Level represents the severity level of a status line
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// PrefixStyle selects the marker printed before each line
type PrefixStyle int

const (
	PrefixSymbols PrefixStyle = iota // ● ◆ ✓ ▲ ✗
	PrefixTagged                     // [DEBUG] [INFO] [SUCCESS] [WARN] [ERROR]
	PrefixPlain                      // no prefix
)

// Logger prints user-facing status lines for the easyparse command.
// Debug tracing of the scanner goes through zap instead.
type Logger struct {
	out          io.Writer
	err          io.Writer
	prefixes     map[Level]string
	colors       map[Level]*color.Color
	colored      bool
	minLevel     Level
	withTime     bool
	timeFormat   string
	errorsStderr bool
}

// NewLogger creates a logger writing to out, with warnings and errors on errOut.
// Color follows fatih/color's terminal detection until WithColor is called.
func NewLogger(out, errOut io.Writer) *Logger {
	return &Logger{
		out:          out,
		err:          errOut,
		prefixes:     symbolPrefixes(),
		colors:       levelColors(),
		colored:      !color.NoColor,
		minLevel:     LevelInfo,
		timeFormat:   "15:04:05",
		errorsStderr: true,
	}
}

func symbolPrefixes() map[Level]string {
	return map[Level]string{
		LevelDebug:   "●",
		LevelInfo:    "◆",
		LevelSuccess: "✓",
		LevelWarning: "▲",
		LevelError:   "✗",
	}
}

func taggedPrefixes() map[Level]string {
	return map[Level]string{
		LevelDebug:   "[DEBUG]",
		LevelInfo:    "[INFO]",
		LevelSuccess: "[SUCCESS]",
		LevelWarning: "[WARN]",
		LevelError:   "[ERROR]",
	}
}

func levelColors() map[Level]*color.Color {
	return map[Level]*color.Color{
		LevelDebug:   color.New(color.FgMagenta),
		LevelInfo:    color.New(color.FgBlue),
		LevelSuccess: color.New(color.FgGreen),
		LevelWarning: color.New(color.FgYellow),
		LevelError:   color.New(color.FgRed, color.Bold),
	}
}

// WithPrefix sets the prefix style and returns the logger for chaining
func (l *Logger) WithPrefix(style PrefixStyle) *Logger {
	switch style {
	case PrefixSymbols:
		l.prefixes = symbolPrefixes()
	case PrefixTagged:
		l.prefixes = taggedPrefixes()
	case PrefixPlain:
		l.prefixes = make(map[Level]string)
	}
	return l
}

// SetPrefix overrides the prefix of a single level
func (l *Logger) SetPrefix(level Level, prefix string) *Logger {
	l.prefixes[level] = prefix
	return l
}

// WithColor forces color on or off regardless of terminal detection
func (l *Logger) WithColor(enabled bool) *Logger {
	l.colored = enabled
	if enabled {
		for _, c := range l.colors {
			c.EnableColor()
		}
	}
	return l
}

// WithLevel drops lines below level
func (l *Logger) WithLevel(level Level) *Logger {
	l.minLevel = level
	return l
}

// WithTimestamp enables or disables a timestamp after the prefix
func (l *Logger) WithTimestamp(enabled bool) *Logger {
	l.withTime = enabled
	return l
}

// WithTimeFormat sets the time format (Go time format string)
func (l *Logger) WithTimeFormat(format string) *Logger {
	l.timeFormat = format
	return l
}

// ErrorsToStderr controls whether errors and warnings go to the error writer
func (l *Logger) ErrorsToStderr(enabled bool) *Logger {
	l.errorsStderr = enabled
	return l
}

// Log outputs a message at the specified level
func (l *Logger) Log(level Level, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(l.writer(level), l.format(level, msg))
}

func (l *Logger) format(level Level, msg string) string {
	// blank lines pass through untouched
	if strings.TrimSpace(msg) == "" {
		return msg
	}

	var parts []string
	if prefix := l.prefixes[level]; prefix != "" {
		parts = append(parts, prefix)
	}
	if l.withTime {
		parts = append(parts, "["+time.Now().Format(l.timeFormat)+"]")
	}
	parts = append(parts, msg)

	line := strings.Join(parts, " ")
	if !l.colored {
		return line
	}
	if c, ok := l.colors[level]; ok {
		return c.Sprint(line)
	}
	return line
}

func (l *Logger) writer(level Level) io.Writer {
	if l.errorsStderr && (level == LevelError || level == LevelWarning) {
		return l.err
	}
	return l.out
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...any) {
	l.Log(LevelDebug, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...any) {
	l.Log(LevelInfo, format, args...)
}

// Success logs a success message
func (l *Logger) Success(format string, args ...any) {
	l.Log(LevelSuccess, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...any) {
	l.Log(LevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.Log(LevelError, format, args...)
}

// Failure logs err at error level. Parse errors print their suggestion too,
// and each of several joined errors gets its own line.
func (l *Logger) Failure(err error) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			l.Failure(e)
		}
		return
	}

	var parseErr *easyparse.ParseError
	if errors.As(err, &parseErr) {
		l.Error("%s", parseErr.Detail())
		return
	}
	l.Error("%s", err.Error())
}
