package webtop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mwantia/webtop/data"
)

// key builds a store key under the configured prefix.
func (st *state) key(suffix string) string {
	return st.prefix + "-" + suffix
}

// persist serializes the tree into the store. Persistence is best effort;
// a failing store never breaks an operation, it only costs durability.
func (st *state) persist(ctx context.Context) {
	st.mu.RLock()
	snapshot := st.root.Clone(false)
	st.mu.RUnlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		st.log.Warn("Failed to serialize filesystem: %v", err)
		return
	}

	if err := st.store.Set(ctx, st.key("filesystem"), string(raw)); err != nil {
		st.log.Warn("Failed to persist filesystem: %v", err)
	}
}

// load restores the tree from the store and rebuilds the user and group
// databases from /etc/passwd and /etc/group inside it. Returns false when
// the store has no state yet.
func (st *state) load(ctx context.Context) (bool, error) {
	raw, err := st.store.Get(ctx, st.key("filesystem"))
	if err != nil {
		if errors.Is(err, data.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	var root data.Node
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return false, fmt.Errorf("corrupt filesystem state: %w", err)
	}
	if !root.IsDir() {
		return false, fmt.Errorf("corrupt filesystem state: root is not a directory")
	}

	users, groups, err := parseUserFiles(&root)
	if err != nil {
		return false, err
	}

	st.root = &root
	st.users = users
	st.groups = groups
	return true, nil
}

// parseUserFiles reads the account databases back out of the tree.
func parseUserFiles(root *data.Node) ([]data.User, []data.Group, error) {
	etc := root.FindChild("etc")
	if etc == nil {
		return nil, nil, fmt.Errorf("corrupt filesystem state: missing /etc")
	}
	passwd := etc.FindChild("passwd")
	if passwd == nil || passwd.IsDir() {
		return nil, nil, fmt.Errorf("corrupt filesystem state: missing /etc/passwd")
	}

	users, err := data.ParsePasswd(passwd.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("corrupt /etc/passwd: %w", err)
	}
	if len(users) == 0 {
		return nil, nil, fmt.Errorf("corrupt /etc/passwd: no users")
	}

	var groups []data.Group
	if file := etc.FindChild("group"); file != nil && !file.IsDir() {
		groups, err = data.ParseGroups(file.Content)
		if err != nil {
			return nil, nil, fmt.Errorf("corrupt /etc/group: %w", err)
		}
	}

	return users, groups, nil
}

// AppPreference returns the persisted preference blob for an application,
// or data.ErrNotExist when none was stored.
func (fs *FileSystem) AppPreference(ctx context.Context, appID string) (string, error) {
	return fs.st.store.Get(ctx, fs.st.key("app-"+appID))
}

// SetAppPreference stores an application preference blob.
func (fs *FileSystem) SetAppPreference(ctx context.Context, appID, value string) error {
	return fs.st.store.Set(ctx, fs.st.key("app-"+appID), value)
}
