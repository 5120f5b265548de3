package command

import "time"

// HistoryEntry is one executed command in the terminal transcript.
type HistoryEntry struct {
	// Input is the submitted line, trimmed of surrounding whitespace.
	Input string `json:"input"`

	// Output lines shown underneath the prompt echo.
	Output []string `json:"output"`

	// Err marks the entry as failed for rendering.
	Err bool `json:"err"`

	// Clear marks a transcript reset request.
	Clear bool `json:"clear"`

	// Dir is the working directory the command ran in.
	Dir string `json:"dir"`

	// User is the effective username at execution time.
	User string `json:"user"`

	// Accent is the prompt accent color active at execution time.
	Accent string `json:"accent"`

	// Time is when the command finished.
	Time time.Time `json:"time"`
}

// History returns a copy of the transcript.
func (e *Engine) History() []HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := make([]HistoryEntry, len(e.entries))
	copy(entries, e.entries)
	return entries
}

// HistoryPrev steps backwards through submitted input lines, clamping at
// the oldest. Returns the line to place into the input field.
func (e *Engine) HistoryPrev() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.inputs) == 0 {
		return "", false
	}
	if e.inputPos > 0 {
		e.inputPos--
	}
	return e.inputs[e.inputPos], true
}

// HistoryNext steps forwards through submitted input lines. Stepping past
// the newest clears the selection and returns an empty line.
func (e *Engine) HistoryNext() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.inputs) == 0 || e.inputPos >= len(e.inputs) {
		return "", false
	}

	e.inputPos++
	if e.inputPos == len(e.inputs) {
		return "", true
	}
	return e.inputs[e.inputPos], true
}
