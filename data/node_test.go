package data_test

import (
	"testing"

	"github.com/mwantia/webtop/data"
)

func buildTestTree() *data.Node {
	root := data.NewDirectory("/", "root", "root", data.DefaultDirMode)
	docs := data.NewDirectory("docs", "user", "user", data.DefaultDirMode)
	notes := data.NewFile("notes.txt", "hello", "user", "user", data.DefaultFileMode)

	docs.Children = append(docs.Children, notes)
	root.Children = append(root.Children, docs)

	return root
}

// TestNodeConstructors verifies defaults set by NewFile and NewDirectory.
func TestNodeConstructors(t *testing.T) {
	file := data.NewFile("a.txt", "content", "user", "user", data.DefaultFileMode)

	if file.ID == "" {
		t.Error("Expected generated node id")
	}
	if file.Type != data.TypeFile || file.IsDir() {
		t.Error("Expected file type")
	}
	if file.Size != int64(len("content")) {
		t.Errorf("Expected size %d, got %d", len("content"), file.Size)
	}
	if file.ModifyTime.IsZero() {
		t.Error("Expected modify time to be set")
	}

	dir := data.NewDirectory("docs", "user", "user", data.DefaultDirMode)
	if !dir.IsDir() {
		t.Error("Expected directory type")
	}
	if dir.Children == nil {
		t.Error("Expected initialized children slice")
	}

	if file.ID == dir.ID {
		t.Error("Expected unique node ids")
	}
}

// TestNodeLookups verifies child and subtree lookups.
func TestNodeLookups(t *testing.T) {
	root := buildTestTree()

	docs := root.FindChild("docs")
	if docs == nil {
		t.Fatal("FindChild failed to locate docs")
	}

	if root.FindChild("missing") != nil {
		t.Error("FindChild should return nil for unknown names")
	}

	if idx := root.IndexOf("docs"); idx != 0 {
		t.Errorf("IndexOf: expected 0, got %d", idx)
	}
	if idx := root.IndexOf("missing"); idx != -1 {
		t.Errorf("IndexOf missing: expected -1, got %d", idx)
	}

	notes := docs.FindChild("notes.txt")
	if found := root.FindByID(notes.ID); found != notes {
		t.Error("FindByID failed to locate nested node")
	}
}

// TestNodeClone verifies deep copies are fully independent.
func TestNodeClone(t *testing.T) {
	root := buildTestTree()
	clone := root.Clone(false)

	notes := clone.FindChild("docs").FindChild("notes.txt")
	notes.Content = "changed"
	notes.Size = int64(len("changed"))

	original := root.FindChild("docs").FindChild("notes.txt")
	if original.Content != "hello" {
		t.Error("Mutating a clone changed the original tree")
	}

	if clone.ID != root.ID {
		t.Error("Clone without fresh identities should keep ids")
	}

	fresh := root.Clone(true)
	if fresh.ID == root.ID {
		t.Error("Clone with fresh identities should replace ids")
	}
	if fresh.FindByID(original.ID) != nil {
		t.Error("Fresh clone should not contain original ids")
	}
}

// TestNodeShallowClone verifies children slices are detached while
// subtrees stay shared.
func TestNodeShallowClone(t *testing.T) {
	root := buildTestTree()
	clone := root.ShallowClone()

	if clone.Children[0] != root.Children[0] {
		t.Error("ShallowClone should share child pointers")
	}

	clone.Children = append(clone.Children, data.NewDirectory("extra", "root", "root", data.DefaultDirMode))
	if len(root.Children) != 1 {
		t.Error("Appending to a shallow clone changed the original")
	}
}

// TestNodeWalk verifies traversal order and early termination.
func TestNodeWalk(t *testing.T) {
	root := buildTestTree()

	var visited []string
	root.Walk(func(n *data.Node) bool {
		visited = append(visited, n.Name)
		return true
	})

	if len(visited) != 3 || visited[0] != "/" || visited[2] != "notes.txt" {
		t.Errorf("Unexpected walk order: %v", visited)
	}

	count := 0
	root.Walk(func(n *data.Node) bool {
		count++
		return false
	})

	if count != 1 {
		t.Errorf("Expected early termination after 1 visit, got %d", count)
	}
}
