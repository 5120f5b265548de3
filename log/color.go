package log

const (
	ansiReset  = "\033[0m"
	ansiCyan   = "\033[36m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiPurple = "\033[35m"
)

var levelColors = [...]string{ansiCyan, ansiGreen, ansiYellow, ansiRed, ansiPurple}

// colorize wraps a line in the ANSI color of its level. Out-of-range
// levels stay uncolored.
func colorize(level LogLevel, line string) string {
	if level < Debug || level > Fatal {
		return line
	}
	return levelColors[level] + line + ansiReset
}
