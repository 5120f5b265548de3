package webtop

import (
	"context"
	"fmt"

	"github.com/mwantia/webtop/data"
)

// AddUser creates a user account together with a primary group and a home
// directory skeleton. Only root may add users. UIDs are assigned from 1000
// upwards.
func (fs *FileSystem) AddUser(ctx context.Context, username, password, fullName string) (data.User, error) {
	if !fs.user.IsRoot() {
		return data.User{}, fmt.Errorf("%w: useradd requires root", data.ErrPermission)
	}
	if err := data.ValidateName(username); err != nil {
		return data.User{}, err
	}

	fs.st.mu.Lock()
	if _, err := fs.st.lookupUser(username); err == nil {
		fs.st.mu.Unlock()
		return data.User{}, fmt.Errorf("%w: %s", data.ErrUserExists, username)
	}

	uid := 1000
	for _, u := range fs.st.users {
		if u.UID >= uid {
			uid = u.UID + 1
		}
	}

	user := data.User{
		Username: username,
		Password: password,
		UID:      uid,
		GID:      uid,
		FullName: fullName,
		HomeDir:  "/home/" + username,
		Shell:    "/bin/sh",
	}

	fs.st.users = append(fs.st.users, user)
	fs.st.groups = append(fs.st.groups, data.Group{
		Name:    username,
		GID:     uid,
		Members: []string{username},
	})

	fs.st.ensureHome(&user)
	fs.st.syncUserFiles()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	fs.st.log.Info("Created user %s (uid %d)", username, uid)
	return user, nil
}

// DeleteUser removes a user account and its primary group. The home
// directory is left in place. Only root may delete users and the root
// account itself cannot be removed.
func (fs *FileSystem) DeleteUser(ctx context.Context, username string) error {
	if !fs.user.IsRoot() {
		return fmt.Errorf("%w: userdel requires root", data.ErrPermission)
	}

	fs.st.mu.Lock()
	user, err := fs.st.lookupUser(username)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	if user.IsRoot() {
		fs.st.mu.Unlock()
		return fmt.Errorf("%w: cannot delete root", data.ErrPermission)
	}

	gid := user.GID
	for i := range fs.st.users {
		if fs.st.users[i].Username == username {
			fs.st.users = append(fs.st.users[:i], fs.st.users[i+1:]...)
			break
		}
	}
	for i := range fs.st.groups {
		if fs.st.groups[i].GID == gid && fs.st.groups[i].Name == username {
			fs.st.groups = append(fs.st.groups[:i], fs.st.groups[i+1:]...)
			break
		}
	}

	fs.st.syncUserFiles()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	fs.st.log.Info("Deleted user %s", username)
	return nil
}

// SetPassword changes a user's password. Users may change their own; root
// may change anyone's.
func (fs *FileSystem) SetPassword(ctx context.Context, username, password string) error {
	if username != fs.user.Username && !fs.user.IsRoot() {
		return fmt.Errorf("%w: passwd for %s requires root", data.ErrPermission, username)
	}

	fs.st.mu.Lock()
	user, err := fs.st.lookupUser(username)
	if err != nil {
		fs.st.mu.Unlock()
		return err
	}
	user.Password = password
	fs.st.syncUserFiles()
	fs.st.mu.Unlock()

	fs.st.persist(ctx)
	return nil
}

// syncUserFiles rewrites /etc/passwd and /etc/group from the in-memory
// databases. The user records stay authoritative; the files mirror them so
// tools reading the tree and the account state never disagree. Requires
// st.mu held for write.
func (st *state) syncUserFiles() {
	passwd := data.FormatPasswd(st.users)
	groups := data.FormatGroups(st.groups)

	st.writeSystemFile("/etc/passwd", passwd)
	st.writeSystemFile("/etc/group", groups)
}

// writeSystemFile updates or creates a file bypassing permission checks.
// Requires st.mu held for write.
func (st *state) writeSystemFile(path, content string) {
	chain, err := st.resolveChain(path)
	if err == nil {
		clones := st.cloneChain(chain)
		target := clones[len(clones)-1]
		target.Content = content
		target.Size = int64(len(content))
		return
	}

	parentChain, err := st.resolveChain(data.ParentPath(path))
	if err != nil {
		st.log.Warn("Cannot write %s: %v", path, err)
		return
	}

	node := data.NewFile(data.BaseName(path), content, "root", "root", data.DefaultFileMode)
	clones := st.cloneChain(parentChain)
	target := clones[len(clones)-1]
	target.Children = append(target.Children, node)
}
