package logging

import (
	"fmt"
	"log"

	"github.com/fatih/color"
)

// Logger is a small level-filtered logger. It has the property that it still
// functions if nil, but doesn't log anything in that case, so callers never
// need to check for a nil logger before using it. It wraps the standard
// library's log package, so it respects any output/flag configuration set
// there. It is safe for concurrent usage.
type Logger struct {
	// level is the maximum level that will be logged by this logger.
	level Level
	// prefix is any prefix specified for the logger.
	prefix string
}

// NewLogger creates a new root logger with the specified level.
func NewLogger(level Level) *Logger {
	return &Logger{level: level}
}

// Sublogger creates a new sublogger with the specified name, inheriting the
// parent logger's level.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{level: l.level, prefix: prefix}
}

// output is the internal logging method.
func (l *Logger) output(calldepth int, line string) {
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}
	log.Output(calldepth, line)
}

// enabled returns whether messages at the given level should be logged.
func (l *Logger) enabled(level Level) bool {
	return l != nil && l.level >= level
}

// Errorf logs error information with an error prefix and red color.
func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.output(3, color.RedString("error: "+format, v...))
	}
}

// Warnf logs error information with a warning prefix and yellow color.
func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.output(3, color.YellowString("warning: "+format, v...))
	}
}

// Infof logs basic execution information.
func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.output(3, fmt.Sprintf(format, v...))
	}
}

// Debugf logs advanced execution information, only if debugging is enabled.
func (l *Logger) Debugf(format string, v ...any) {
	if l.enabled(LevelDebug) {
		l.output(3, color.CyanString("debug: "+format, v...))
	}
}
