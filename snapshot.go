package webtop

import (
	"fmt"

	"github.com/mwantia/webtop/data"
)

// The tree uses copy on write. Readers take the current root pointer and
// traverse freely; writers clone the spine from root to the mutated node,
// apply their change to the clones and swap the root. A reader holding an
// old root keeps seeing a consistent tree since published nodes are never
// modified in place.

// resolveChain walks an absolute path and returns every node from the root
// to the target, inclusive. Requires st.mu held (read or write).
func (st *state) resolveChain(path string) ([]*data.Node, error) {
	segments := data.SplitPath(path)

	chain := make([]*data.Node, 0, len(segments)+1)
	chain = append(chain, st.root)

	current := st.root
	for _, segment := range segments {
		if !current.IsDir() {
			return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, path)
		}
		child := current.FindChild(segment)
		if child == nil {
			return nil, fmt.Errorf("%w: %s", data.ErrNotExist, path)
		}
		chain = append(chain, child)
		current = child
	}

	return chain, nil
}

// cloneChain rebuilds the spine of a resolved chain with shallow clones and
// swaps the tree root. It returns the cloned chain; the final element is the
// writable stand-in for the resolved target. Requires st.mu held for write.
func (st *state) cloneChain(chain []*data.Node) []*data.Node {
	clones := make([]*data.Node, len(chain))
	for i, node := range chain {
		clones[i] = node.ShallowClone()
	}

	for i := 0; i < len(clones)-1; i++ {
		parent, child := clones[i], clones[i+1]
		idx := parent.IndexOf(chain[i+1].Name)
		if idx >= 0 {
			parent.Children[idx] = child
		}
	}

	st.root = clones[0]
	return clones
}

// checkTraverse verifies the user may descend through every directory
// leading to the target, i.e. holds execute on each ancestor. The target
// itself is not checked; operations apply their own rule there.
func checkTraverse(chain []*data.Node, user data.User, groups []data.Group) error {
	for _, node := range chain[:len(chain)-1] {
		if !data.Allowed(node, user, data.OpExecute, groups) {
			return fmt.Errorf("%w: %s", data.ErrPermission, node.Name)
		}
	}
	return nil
}

// Snapshot returns a deep copy of the entire tree, detached from future
// mutations. Node IDs are preserved.
func (fs *FileSystem) Snapshot() *data.Node {
	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	return fs.st.root.Clone(false)
}
