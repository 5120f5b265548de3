package webtop

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mwantia/webtop/data"
)

// abs resolves a path expression relative to the given working directory
// and the bound user's home.
func (fs *FileSystem) abs(path, cwd string) (string, error) {
	return data.ResolvePath(path, cwd, fs.user.HomeDir)
}

// Stat returns the node at an absolute path. The returned pointer shares
// the live tree and must be treated as read only.
func (fs *FileSystem) Stat(ctx context.Context, path string) (*data.Node, error) {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return nil, err
	}

	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		return nil, err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		return nil, err
	}

	return chain[len(chain)-1], nil
}

// ListDirectory returns the children of a directory sorted by name,
// directories first. The returned pointers share the live tree and must be
// treated as read only.
func (fs *FileSystem) ListDirectory(ctx context.Context, path string) ([]*data.Node, error) {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return nil, err
	}

	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		return nil, err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		return nil, err
	}

	node := chain[len(chain)-1]
	if !node.IsDir() {
		return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, abs)
	}
	if !data.Allowed(node, fs.user, data.OpRead, fs.st.groups) {
		return nil, fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}

	children := make([]*data.Node, len(node.Children))
	copy(children, node.Children)
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].IsDir() != children[j].IsDir() {
			return children[i].IsDir()
		}
		return children[i].Name < children[j].Name
	})

	return children, nil
}

// ReadFile returns the content of a file.
func (fs *FileSystem) ReadFile(ctx context.Context, path string) (string, error) {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return "", err
	}

	fs.st.mu.RLock()
	defer fs.st.mu.RUnlock()

	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		return "", err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		return "", err
	}

	node := chain[len(chain)-1]
	if node.IsDir() {
		return "", fmt.Errorf("%w: %s", data.ErrIsDirectory, abs)
	}
	if !data.Allowed(node, fs.user, data.OpRead, fs.st.groups) {
		return "", fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}

	return node.Content, nil
}

// WriteFile replaces the content of an existing file. Creating files goes
// through CreateFile or Touch.
func (fs *FileSystem) WriteFile(ctx context.Context, path, content string) error {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return err
	}

	fs.st.mu.Lock()
	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return err
	}

	node := chain[len(chain)-1]
	if node.IsDir() {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrIsDirectory, abs)
	}
	if !data.Allowed(node, fs.user, data.OpWrite, fs.st.groups) {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}

	clones := fs.st.cloneChain(chain)
	target := clones[len(clones)-1]
	target.Content = content
	target.Size = int64(len(content))
	target.ModifyTime = time.Now()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return nil
}

// CreateFile creates a file under an existing directory. The actor becomes
// the owner; the file gets the default file mode unless one is given.
func (fs *FileSystem) CreateFile(ctx context.Context, dir, name, content string) (*data.Node, error) {
	return fs.createNode(ctx, dir, name, func(owner, group string) *data.Node {
		return data.NewFile(name, content, owner, group, data.DefaultFileMode)
	})
}

// CreateDirectory creates a directory under an existing directory.
func (fs *FileSystem) CreateDirectory(ctx context.Context, dir, name string) (*data.Node, error) {
	return fs.createNode(ctx, dir, name, func(owner, group string) *data.Node {
		return data.NewDirectory(name, owner, group, data.DefaultDirMode)
	})
}

func (fs *FileSystem) createNode(ctx context.Context, dir, name string, build func(owner, group string) *data.Node) (*data.Node, error) {
	if err := data.ValidateName(name); err != nil {
		return nil, err
	}
	abs, err := fs.abs(dir, "/")
	if err != nil {
		return nil, err
	}

	fs.st.mu.Lock()
	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		fs.st.mu.Unlock()
		return nil, err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return nil, err
	}

	parent := chain[len(chain)-1]
	if !parent.IsDir() {
		fs.st.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", data.ErrNotDirectory, abs)
	}
	if !data.Allowed(parent, fs.user, data.OpWrite, fs.st.groups) {
		fs.st.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}
	if parent.FindChild(name) != nil {
		fs.st.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", data.ErrExist, data.JoinPath(abs, name))
	}

	group := fs.st.groupName(fs.user.GID, fs.user.Username)
	node := build(fs.user.Username, group)

	clones := fs.st.cloneChain(chain)
	target := clones[len(clones)-1]
	target.Children = append(target.Children, node)
	target.ModifyTime = time.Now()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return node, nil
}

// Touch creates an empty file or, if it already exists, bumps its modify
// time.
func (fs *FileSystem) Touch(ctx context.Context, path string) error {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return err
	}

	fs.st.mu.RLock()
	_, statErr := fs.st.resolveChain(abs)
	fs.st.mu.RUnlock()

	if statErr == nil {
		return fs.bumpModifyTime(ctx, abs)
	}

	_, err = fs.CreateFile(ctx, data.ParentPath(abs), data.BaseName(abs), "")
	return err
}

func (fs *FileSystem) bumpModifyTime(ctx context.Context, abs string) error {
	fs.st.mu.Lock()
	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return err
	}

	node := chain[len(chain)-1]
	if !data.Allowed(node, fs.user, data.OpWrite, fs.st.groups) {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}

	clones := fs.st.cloneChain(chain)
	clones[len(clones)-1].ModifyTime = time.Now()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return nil
}

// Delete permanently removes a node and its subtree. The root itself
// cannot be deleted.
func (fs *FileSystem) Delete(ctx context.Context, path string) error {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return err
	}
	if abs == "/" {
		return fmt.Errorf("%w: cannot delete /", data.ErrInvalidPath)
	}

	fs.st.mu.Lock()
	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return err
	}

	parent := chain[len(chain)-2]
	if !data.Allowed(parent, fs.user, data.OpWrite, fs.st.groups) {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}

	name := chain[len(chain)-1].Name
	clones := fs.st.cloneChain(chain[:len(chain)-1])
	target := clones[len(clones)-1]
	idx := target.IndexOf(name)
	if idx >= 0 {
		target.Children = append(target.Children[:idx], target.Children[idx+1:]...)
	}
	target.ModifyTime = time.Now()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return nil
}

// MoveNode relocates a node into a destination directory. Moving a
// directory into itself or one of its descendants is rejected.
func (fs *FileSystem) MoveNode(ctx context.Context, src, destDir string) error {
	absSrc, err := fs.abs(src, "/")
	if err != nil {
		return err
	}
	absDest, err := fs.abs(destDir, "/")
	if err != nil {
		return err
	}
	if absSrc == "/" {
		return fmt.Errorf("%w: cannot move /", data.ErrInvalidPath)
	}
	if absDest == absSrc || strings.HasPrefix(absDest+"/", absSrc+"/") {
		return fmt.Errorf("%w: %s into %s", data.ErrCycle, absSrc, absDest)
	}

	fs.st.mu.Lock()
	err = fs.st.moveLocked(absSrc, absDest, fs.user)
	fs.st.mu.Unlock()
	if err != nil {
		return err
	}

	fs.st.persist(ctx)
	return nil
}

// moveLocked detaches the source node and attaches it to the destination
// directory. Requires st.mu held for write.
func (st *state) moveLocked(absSrc, absDest string, user data.User) error {
	srcChain, err := st.resolveChain(absSrc)
	if err != nil {
		return err
	}
	if err := checkTraverse(srcChain, user, st.groups); err != nil {
		return err
	}
	destChain, err := st.resolveChain(absDest)
	if err != nil {
		return err
	}
	if err := checkTraverse(destChain, user, st.groups); err != nil {
		return err
	}

	srcParent := srcChain[len(srcChain)-2]
	dest := destChain[len(destChain)-1]
	if !dest.IsDir() {
		return fmt.Errorf("%w: %s", data.ErrNotDirectory, absDest)
	}
	if !data.Allowed(srcParent, user, data.OpWrite, st.groups) {
		return fmt.Errorf("%w: %s", data.ErrPermission, absSrc)
	}
	if !data.Allowed(dest, user, data.OpWrite, st.groups) {
		return fmt.Errorf("%w: %s", data.ErrPermission, absDest)
	}

	node := srcChain[len(srcChain)-1]
	if dest.FindChild(node.Name) != nil {
		return fmt.Errorf("%w: %s", data.ErrExist, data.JoinPath(absDest, node.Name))
	}

	// Detach from the source parent first, then re-resolve the destination
	// against the new root so both spines share consistent clones.
	srcClones := st.cloneChain(srcChain[:len(srcChain)-1])
	srcTarget := srcClones[len(srcClones)-1]
	idx := srcTarget.IndexOf(node.Name)
	if idx >= 0 {
		srcTarget.Children = append(srcTarget.Children[:idx], srcTarget.Children[idx+1:]...)
	}
	srcTarget.ModifyTime = time.Now()

	destChain, err = st.resolveChain(absDest)
	if err != nil {
		return err
	}
	destClones := st.cloneChain(destChain)
	destTarget := destClones[len(destClones)-1]
	destTarget.Children = append(destTarget.Children, node)
	destTarget.ModifyTime = time.Now()

	return nil
}

// Rename changes a node's name in place.
func (fs *FileSystem) Rename(ctx context.Context, path, newName string) error {
	if err := data.ValidateName(newName); err != nil {
		return err
	}
	abs, err := fs.abs(path, "/")
	if err != nil {
		return err
	}
	if abs == "/" {
		return fmt.Errorf("%w: cannot rename /", data.ErrInvalidPath)
	}

	fs.st.mu.Lock()
	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return err
	}

	parent := chain[len(chain)-2]
	if !data.Allowed(parent, fs.user, data.OpWrite, fs.st.groups) {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}
	if parent.FindChild(newName) != nil {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrExist, data.JoinPath(data.ParentPath(abs), newName))
	}

	clones := fs.st.cloneChain(chain)
	target := clones[len(clones)-1]
	target.Name = newName
	target.ModifyTime = time.Now()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return nil
}

// MoveToTrash relocates a node into the acting user's trash directory,
// creating it when missing. Name collisions get a numeric suffix. Returns
// the name the node ended up with inside the trash.
func (fs *FileSystem) MoveToTrash(ctx context.Context, path string) (string, error) {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return "", err
	}
	if abs == "/" {
		return "", fmt.Errorf("%w: cannot trash /", data.ErrInvalidPath)
	}

	trashDir := data.JoinPath(fs.user.HomeDir, ".trash")
	if abs == trashDir || strings.HasPrefix(trashDir+"/", abs+"/") {
		return "", fmt.Errorf("%w: %s into %s", data.ErrCycle, abs, trashDir)
	}

	fs.st.mu.Lock()
	if _, err := fs.st.resolveChain(trashDir); err != nil {
		fs.st.ensureHome(&fs.user)
	}

	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		fs.st.mu.Unlock()
		return "", err
	}
	node := chain[len(chain)-1]
	name := node.Name

	trashChain, err := fs.st.resolveChain(trashDir)
	if err != nil {
		fs.st.mu.Unlock()
		return "", err
	}
	trash := trashChain[len(trashChain)-1]
	final := trashName(trash, name)
	if final != name {
		if err := fs.renameLocked(chain, final); err != nil {
			fs.st.mu.Unlock()
			return "", err
		}
	}

	if err := fs.st.moveLocked(data.JoinPath(data.ParentPath(abs), final), trashDir, fs.user); err != nil {
		fs.st.mu.Unlock()
		return "", err
	}
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return final, nil
}

// renameLocked renames the target of a resolved chain. Requires st.mu held
// for write; the caller has already checked permissions or accepts the
// parent write check here.
func (fs *FileSystem) renameLocked(chain []*data.Node, newName string) error {
	parent := chain[len(chain)-2]
	if !data.Allowed(parent, fs.user, data.OpWrite, fs.st.groups) {
		return fmt.Errorf("%w: %s", data.ErrPermission, chain[len(chain)-1].Name)
	}

	clones := fs.st.cloneChain(chain)
	target := clones[len(clones)-1]
	target.Name = newName
	target.ModifyTime = time.Now()
	return nil
}

// trashName finds a collision free name inside the trash directory by
// appending -1, -2 and so on.
func trashName(trash *data.Node, name string) string {
	if trash.FindChild(name) == nil {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if trash.FindChild(candidate) == nil {
			return candidate
		}
	}
}

// CopyNode deep copies a node into a destination directory. Copies get
// fresh IDs and the acting user as owner.
func (fs *FileSystem) CopyNode(ctx context.Context, src, destDir string) error {
	absSrc, err := fs.abs(src, "/")
	if err != nil {
		return err
	}
	absDest, err := fs.abs(destDir, "/")
	if err != nil {
		return err
	}

	fs.st.mu.Lock()
	srcChain, err := fs.st.resolveChain(absSrc)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if err := checkTraverse(srcChain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return err
	}
	srcNode := srcChain[len(srcChain)-1]
	if !data.Allowed(srcNode, fs.user, data.OpRead, fs.st.groups) {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrPermission, absSrc)
	}

	destChain, err := fs.st.resolveChain(absDest)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if err := checkTraverse(destChain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return err
	}
	dest := destChain[len(destChain)-1]
	if !dest.IsDir() {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrNotDirectory, absDest)
	}
	if !data.Allowed(dest, fs.user, data.OpWrite, fs.st.groups) {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrPermission, absDest)
	}
	if dest.FindChild(srcNode.Name) != nil {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrExist, data.JoinPath(absDest, srcNode.Name))
	}

	clone := srcNode.Clone(true)
	clone.Owner = fs.user.Username
	clone.Group = fs.st.groupName(fs.user.GID, fs.user.Username)
	clone.ModifyTime = time.Now()

	destClones := fs.st.cloneChain(destChain)
	destTarget := destClones[len(destClones)-1]
	destTarget.Children = append(destTarget.Children, clone)
	destTarget.ModifyTime = time.Now()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return nil
}

// MoveNodeByID relocates a node identified by its ID, used by desktop drag
// and drop where paths are not at hand.
func (fs *FileSystem) MoveNodeByID(ctx context.Context, id, destDir string) error {
	fs.st.mu.RLock()
	path, found := findPathByID(fs.st.root, id, "/")
	fs.st.mu.RUnlock()

	if !found {
		return fmt.Errorf("%w: node %s", data.ErrNotExist, id)
	}

	return fs.MoveNode(ctx, path, destDir)
}

// findPathByID walks the tree depth first and returns the absolute path of
// the node carrying the given ID.
func findPathByID(node *data.Node, id, path string) (string, bool) {
	if node.ID == id {
		return path, true
	}
	for _, child := range node.Children {
		childPath := data.JoinPath(path, child.Name)
		if found, ok := findPathByID(child, id, childPath); ok {
			return found, true
		}
	}
	return "", false
}

// Chmod replaces a node's permission string. Only the owner or root may
// change modes.
func (fs *FileSystem) Chmod(ctx context.Context, path string, mode data.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", data.ErrInvalidMode, string(mode))
	}
	return fs.updateMeta(ctx, path, func(node *data.Node) {
		node.Permissions = mode
	})
}

// Chown replaces a node's owner and group. Only the owner or root may
// change ownership, and both names must exist in the account databases.
func (fs *FileSystem) Chown(ctx context.Context, path, owner, group string) error {
	fs.st.mu.RLock()
	if owner != "" {
		if _, err := fs.st.lookupUser(owner); err != nil {
			fs.st.mu.RUnlock()
			return err
		}
	}
	if group != "" && !fs.st.groupExists(group) {
		fs.st.mu.RUnlock()
		return fmt.Errorf("%w: %s", data.ErrGroupNotFound, group)
	}
	fs.st.mu.RUnlock()

	return fs.updateMeta(ctx, path, func(node *data.Node) {
		if owner != "" {
			node.Owner = owner
		}
		if group != "" {
			node.Group = group
		}
	})
}

func (fs *FileSystem) updateMeta(ctx context.Context, path string, apply func(*data.Node)) error {
	abs, err := fs.abs(path, "/")
	if err != nil {
		return err
	}

	fs.st.mu.Lock()
	chain, err := fs.st.resolveChain(abs)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if err := checkTraverse(chain, fs.user, fs.st.groups); err != nil {
		fs.st.mu.Unlock()
		return err
	}

	node := chain[len(chain)-1]
	if node.Owner != fs.user.Username && !fs.user.IsRoot() {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: %s", data.ErrPermission, abs)
	}

	clones := fs.st.cloneChain(chain)
	target := clones[len(clones)-1]
	apply(target)
	target.ModifyTime = time.Now()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return nil
}
