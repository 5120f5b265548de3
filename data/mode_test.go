package data_test

import (
	"errors"
	"testing"

	"github.com/mwantia/webtop/data"
)

// TestParseMode verifies octal and textual mode parsing.
func TestParseMode(t *testing.T) {
	cases := []struct {
		input    string
		expected data.Mode
		fail     bool
	}{
		{"755", "rwxr-xr-x", false},
		{"644", "rw-r--r--", false},
		{"700", "rwx------", false},
		{"777", "rwxrwxrwx", false},
		{"000", "---------", false},
		{"rwxr-xr-x", "rwxr-xr-x", false},
		{"rw-rw-r--", "rw-rw-r--", false},
		{"789", "", true},
		{"rwxrwxrw", "", true},
		{"rwxrwxrwxx", "", true},
		{"rwxrwxrwz", "", true},
		{"", "", true},
	}

	for _, c := range cases {
		mode, err := data.ParseMode(c.input)
		if c.fail {
			if !errors.Is(err, data.ErrInvalidMode) {
				t.Errorf("ParseMode(%q): expected ErrInvalidMode, got %v", c.input, err)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", c.input, err)
			continue
		}

		if mode != c.expected {
			t.Errorf("ParseMode(%q): expected %q, got %q", c.input, c.expected, mode)
		}
	}
}

// TestModeAllows verifies per-class permission bits.
func TestModeAllows(t *testing.T) {
	mode := data.Mode("rwxr-x-w-")

	cases := []struct {
		class    data.PermClass
		op       data.PermOp
		expected bool
	}{
		{data.ClassOwner, data.OpRead, true},
		{data.ClassOwner, data.OpWrite, true},
		{data.ClassOwner, data.OpExecute, true},
		{data.ClassGroup, data.OpRead, true},
		{data.ClassGroup, data.OpWrite, false},
		{data.ClassGroup, data.OpExecute, true},
		{data.ClassOther, data.OpRead, false},
		{data.ClassOther, data.OpWrite, true},
		{data.ClassOther, data.OpExecute, false},
	}

	for _, c := range cases {
		if got := mode.Allows(c.class, c.op); got != c.expected {
			t.Errorf("Allows(%v, %v): expected %v, got %v", c.class, c.op, c.expected, got)
		}
	}
}

// TestModeMalformedDenies verifies that malformed modes never grant access.
func TestModeMalformedDenies(t *testing.T) {
	for _, mode := range []data.Mode{"", "rwx", "rwxrwxrwxrwx"} {
		for class := data.ClassOwner; class <= data.ClassOther; class++ {
			for op := data.OpRead; op <= data.OpExecute; op++ {
				if mode.Allows(class, op) {
					t.Errorf("malformed mode %q granted %v to class %v", mode, op, class)
				}
			}
		}
	}
}

// TestAllowed verifies class resolution and the root bypass.
func TestAllowed(t *testing.T) {
	groups := []data.Group{
		{Name: "staff", GID: 1000, Members: []string{"alice", "carol"}},
		{Name: "wheel", GID: 10, Members: nil},
	}

	node := &data.Node{
		Name:        "report.txt",
		Type:        data.TypeFile,
		Permissions: "rw-r-----",
		Owner:       "alice",
		Group:       "staff",
	}

	owner := data.User{Username: "alice", UID: 1000, GID: 1000}
	member := data.User{Username: "bob", UID: 1001, GID: 1000}
	listed := data.User{Username: "carol", UID: 1003, GID: 1003}
	other := data.User{Username: "mallory", UID: 1002, GID: 1002}
	root := data.User{Username: "root", UID: 0, GID: 0}

	if !data.Allowed(node, owner, data.OpWrite, groups) {
		t.Error("owner should be able to write")
	}
	if !data.Allowed(node, member, data.OpRead, groups) {
		t.Error("group member should be able to read")
	}
	if !data.Allowed(node, listed, data.OpRead, groups) {
		t.Error("listed group member should be able to read")
	}
	if data.Allowed(node, member, data.OpWrite, groups) {
		t.Error("group member should not be able to write")
	}
	if data.Allowed(node, other, data.OpRead, groups) {
		t.Error("other users should not be able to read")
	}
	if !data.Allowed(node, root, data.OpWrite, groups) {
		t.Error("root should bypass permission checks")
	}

	// The owner class applies even when it grants less than group or other.
	restricted := &data.Node{
		Name:        "locked.txt",
		Type:        data.TypeFile,
		Permissions: "---rwxrwx",
		Owner:       "alice",
		Group:       "staff",
	}
	if data.Allowed(restricted, owner, data.OpRead, groups) {
		t.Error("owner class should apply even when more restrictive")
	}
	if !data.Allowed(restricted, other, data.OpRead, groups) {
		t.Error("other class should apply its own bits")
	}
}
