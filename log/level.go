package log

import "strings"

// LogLevel orders records by severity. Records below a logger's configured
// level are dropped.
type LogLevel int

const (
	Debug LogLevel = iota
	Info
	Warn
	Error
	Fatal
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if l < Debug || l > Fatal {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Parse maps a level name to its LogLevel, ignoring case. Unknown names
// fall back to Info.
func Parse(name string) LogLevel {
	for level, known := range levelNames {
		if strings.EqualFold(name, known) {
			return LogLevel(level)
		}
	}
	return Info
}
