// Package window tracks the application windows of a logged-in user:
// stacking order, geometry, minimize and maximize state. The live set is
// persisted per user so a desktop reload restores every window.
package window

import (
	"encoding/json"
)

// Position is the top-left corner of a window in viewport pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window's outer dimensions in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Frame bundles position and size, used to stash the pre-maximize geometry.
type Frame struct {
	Position Position `json:"position"`
	Size     Size     `json:"size"`
}

// Session is one open window. Everything except the content survives a
// desktop reload; the content is rebuilt by the manager's content factory.
type Session struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Position  Position `json:"position"`
	Size      Size     `json:"size"`
	Minimized bool     `json:"minimized"`
	Maximized bool     `json:"maximized"`
	ZIndex    int      `json:"zIndex"`

	// Data is the application state blob handed back to the content
	// factory on restore, e.g. the open document path of an editor.
	Data json.RawMessage `json:"data,omitempty"`

	// Restore keeps the pre-maximize frame while Maximized is set.
	Restore *Frame `json:"restore,omitempty"`

	content any
}

// Content returns the transient application state attached to the window,
// such as a running terminal engine. It is never persisted.
func (s *Session) Content() any {
	return s.content
}

// Visible reports whether the window takes part in stacking, i.e. is not
// minimized.
func (s *Session) Visible() bool {
	return !s.Minimized
}
