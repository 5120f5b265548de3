package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const timeLayout = "2006-01-02 15:04:05"

// Rotation settings for file sinks.
const (
	fileMaxSizeMB  = 64
	fileMaxBackups = 4
	fileMaxAgeDays = 14
)

// Logger writes leveled, timestamped lines to one or more sinks. A
// Logger is immutable; Named and JSON derive new loggers that share
// the underlying sinks.
type Logger struct {
	name  string
	level LogLevel
	sinks []sink
}

// sink is a single output target with its own text or JSON formatting.
type sink struct {
	w     io.Writer
	color bool
	json  bool
}

type record struct {
	Time      string `json:"time"`
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

// NewLogger builds the root logger for a component. Lines go to stdout
// unless noTerminal is set, and additionally to file with rotation when
// a path is given.
func NewLogger(name string, level LogLevel, file string, noTerminal bool) *Logger {
	var sinks []sink

	if !noTerminal {
		sinks = append(sinks, sink{w: os.Stdout, color: true})
	}
	if file != "" {
		sinks = append(sinks, sink{w: &lumberjack.Logger{
			Filename:   file,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
		}})
	}

	return &Logger{name: name, level: level, sinks: sinks}
}

// Discard returns a logger with no sinks. Fatal still exits.
func Discard() *Logger {
	return &Logger{level: Fatal}
}

// Named derives a child logger whose component name is chained onto the
// parent's with a slash.
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "/" + name
	}

	return &Logger{name: name, level: l.level, sinks: l.sinks}
}

// JSON derives a logger that writes one JSON object per line to every
// sink in place of formatted text.
func (l *Logger) JSON() *Logger {
	sinks := make([]sink, len(l.sinks))
	for i, s := range l.sinks {
		sinks[i] = sink{w: s.w, json: true}
	}

	return &Logger{name: l.name, level: l.level, sinks: sinks}
}

func (l *Logger) Debug(format string, args ...any) { l.emit(Debug, format, args...) }

func (l *Logger) Info(format string, args ...any) { l.emit(Info, format, args...) }

func (l *Logger) Warn(format string, args ...any) { l.emit(Warn, format, args...) }

func (l *Logger) Error(format string, args ...any) { l.emit(Error, format, args...) }

func (l *Logger) Fatal(format string, args ...any) { l.emit(Fatal, format, args...) }

func (l *Logger) emit(level LogLevel, format string, args ...any) {
	if level >= l.level && len(l.sinks) > 0 {
		l.write(level, fmt.Sprintf(format, args...))
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) write(level LogLevel, msg string) {
	now := time.Now().Format(timeLayout)

	line := fmt.Sprintf("[%s] %-5s %s", now, level, msg)
	if l.name != "" {
		line = fmt.Sprintf("[%s] %-5s [%s] %s", now, level, l.name, msg)
	}

	var encoded []byte
	for _, s := range l.sinks {
		switch {
		case s.json:
			if encoded == nil {
				encoded, _ = json.Marshal(record{
					Time:      now,
					Level:     level.String(),
					Component: l.name,
					Message:   msg,
				})
			}
			fmt.Fprintf(s.w, "%s\n", encoded)
		case s.color:
			fmt.Fprintln(s.w, colorize(level, line))
		default:
			fmt.Fprintln(s.w, line)
		}
	}
}
