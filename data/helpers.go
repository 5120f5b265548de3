package data

import (
	"time"

	"github.com/google/uuid"
)

// NewFile creates a file node owned by the given user and group.
func NewFile(name, content, owner, group string, mode Mode) *Node {
	now := time.Now()

	return &Node{
		ID:          genNodeID(),
		Name:        name,
		Type:        TypeFile,
		Content:     content,
		Permissions: mode,
		Owner:       owner,
		Group:       group,
		Size:        int64(len(content)),
		ModifyTime:  now,
	}
}

// NewDirectory creates an empty directory node owned by the given user and group.
func NewDirectory(name, owner, group string, mode Mode) *Node {
	now := time.Now()

	return &Node{
		ID:          genNodeID(),
		Name:        name,
		Type:        TypeDirectory,
		Children:    make([]*Node, 0),
		Permissions: mode,
		Owner:       owner,
		Group:       group,
		ModifyTime:  now,
	}
}

func genNodeID() string {
	return uuid.Must(uuid.NewV7()).String()
}
