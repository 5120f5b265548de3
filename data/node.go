package data

import "time"

// NodeType distinguishes files from directories.
type NodeType string

const (
	TypeFile      NodeType = "file"
	TypeDirectory NodeType = "directory"
)

// Node is a single entry in the virtual filesystem tree.
// Directories carry their children in insertion order, files carry content.
// Published nodes are treated as immutable; mutations go through clones.
type Node struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        NodeType  `json:"type"`
	Content     string    `json:"content,omitempty"`
	Children    []*Node   `json:"children,omitempty"`
	Permissions Mode      `json:"permissions"`
	Owner       string    `json:"owner"`
	Group       string    `json:"group"`
	Size        int64     `json:"size"`
	ModifyTime  time.Time `json:"modifyTime"`
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Type == TypeDirectory
}

// FindChild returns the direct child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// IndexOf returns the position of the direct child with the given name, or -1.
func (n *Node) IndexOf(name string) int {
	for i, child := range n.Children {
		if child.Name == name {
			return i
		}
	}
	return -1
}

// FindByID searches the subtree for a node with the given identity.
func (n *Node) FindByID(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// ShallowClone copies the node itself while sharing child subtrees.
// The children slice header is duplicated so appends never touch the original.
func (n *Node) ShallowClone() *Node {
	clone := *n
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		copy(clone.Children, n.Children)
	}
	return &clone
}

// Clone returns a full structural copy of the subtree.
// When fresh is true every copied node receives a new identity.
func (n *Node) Clone(fresh bool) *Node {
	clone := *n
	if fresh {
		clone.ID = genNodeID()
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone(fresh)
		}
	}
	return &clone
}

// Walk visits the node and every descendant depth-first, stopping early
// when the callback returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
