package data_test

import (
	"testing"

	"github.com/mwantia/webtop/data"
)

// TestResolvePath verifies home, relative and dot-segment resolution.
func TestResolvePath(t *testing.T) {
	cases := []struct {
		expr     string
		cwd      string
		home     string
		expected string
	}{
		{"/", "/home/user", "/home/user", "/"},
		{"~", "/", "/home/user", "/home/user"},
		{"~/docs", "/", "/home/user", "/home/user/docs"},
		{".", "/home/user", "/home/user", "/home/user"},
		{"..", "/home/user", "/home/user", "/home"},
		{"../..", "/home/user", "/home/user", "/"},
		{"../../..", "/home/user", "/home/user", "/"},
		{"docs/notes.txt", "/home/user", "/home/user", "/home/user/docs/notes.txt"},
		{"./docs/../downloads", "/home/user", "/home/user", "/home/user/downloads"},
		{"/etc//passwd", "/home/user", "/home/user", "/etc/passwd"},
		{"/bin/", "/", "/root", "/bin"},
	}

	for _, c := range cases {
		got, err := data.ResolvePath(c.expr, c.cwd, c.home)
		if err != nil {
			t.Errorf("ResolvePath(%q) failed: %v", c.expr, err)
			continue
		}

		if got != c.expected {
			t.Errorf("ResolvePath(%q, %q): expected %q, got %q", c.expr, c.cwd, c.expected, got)
		}
	}

	if _, err := data.ResolvePath("", "/", "/root"); err == nil {
		t.Error("Expected error for empty path expression")
	}
}

// TestPathHelpers verifies split, base, parent and join behavior.
func TestPathHelpers(t *testing.T) {
	if parts := data.SplitPath("/"); len(parts) != 0 {
		t.Errorf("SplitPath(\"/\"): expected no segments, got %v", parts)
	}

	parts := data.SplitPath("/home/user/docs")
	if len(parts) != 3 || parts[2] != "docs" {
		t.Errorf("Unexpected segments: %v", parts)
	}

	if got := data.BaseName("/home/user"); got != "user" {
		t.Errorf("BaseName: expected \"user\", got %q", got)
	}
	if got := data.BaseName("/"); got != "/" {
		t.Errorf("BaseName root: expected \"/\", got %q", got)
	}

	if got := data.ParentPath("/home/user"); got != "/home" {
		t.Errorf("ParentPath: expected \"/home\", got %q", got)
	}
	if got := data.ParentPath("/home"); got != "/" {
		t.Errorf("ParentPath top level: expected \"/\", got %q", got)
	}

	if got := data.JoinPath("/", "bin"); got != "/bin" {
		t.Errorf("JoinPath root: expected \"/bin\", got %q", got)
	}
	if got := data.JoinPath("/home/user", "docs"); got != "/home/user/docs" {
		t.Errorf("JoinPath: expected \"/home/user/docs\", got %q", got)
	}
}

// TestValidateName verifies node name validation.
func TestValidateName(t *testing.T) {
	for _, name := range []string{"notes.txt", ".trash", "New Folder", "a"} {
		if err := data.ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) should succeed, got %v", name, err)
		}
	}

	for _, name := range []string{"", ".", "..", "a/b"} {
		if err := data.ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) should fail", name)
		}
	}
}
