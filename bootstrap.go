package webtop

import (
	"github.com/mwantia/webtop/data"
)

// defaultUsers returns the accounts a fresh desktop starts with.
func defaultUsers() []data.User {
	return []data.User{
		{
			Username: "root",
			Password: "root",
			UID:      0,
			GID:      0,
			FullName: "System Administrator",
			HomeDir:  "/root",
			Shell:    "/bin/sh",
		},
		{
			Username: "user",
			Password: "password",
			UID:      1000,
			GID:      1000,
			FullName: "Default User",
			HomeDir:  "/home/user",
			Shell:    "/bin/sh",
		},
	}
}

func defaultGroups() []data.Group {
	return []data.Group{
		{Name: "root", GID: 0, Members: []string{"root"}},
		{Name: "user", GID: 1000, Members: []string{"user"}},
	}
}

// launchers are the applications shipped under /bin. Each file carries the
// launcher marker as its first line so the terminal can start them.
var launchers = []string{
	"files",
	"notepad",
	"settings",
	"terminal",
	"browser",
	"calculator",
}

// bootstrap builds the initial tree and user database. Requires st.mu held
// for write, or exclusive access before the state is published.
func (st *state) bootstrap() {
	st.users = defaultUsers()
	st.groups = defaultGroups()

	root := data.NewDirectory("/", "root", "root", data.DefaultDirMode)

	bin := data.NewDirectory("bin", "root", "root", data.DefaultDirMode)
	for _, app := range launchers {
		bin.Children = append(bin.Children,
			data.NewFile(app, AppMarker+" "+app+"\n", "root", "root", data.ExecutableMode))
	}

	usr := data.NewDirectory("usr", "root", "root", data.DefaultDirMode)
	usr.Children = append(usr.Children, data.NewDirectory("bin", "root", "root", data.DefaultDirMode))

	etc := data.NewDirectory("etc", "root", "root", data.DefaultDirMode)
	etc.Children = append(etc.Children,
		data.NewFile("passwd", data.FormatPasswd(st.users), "root", "root", data.DefaultFileMode),
		data.NewFile("group", data.FormatGroups(st.groups), "root", "root", data.DefaultFileMode),
		data.NewFile("hostname", "webtop\n", "root", "root", data.DefaultFileMode),
	)

	home := data.NewDirectory("home", "root", "root", data.DefaultDirMode)
	tmp := data.NewDirectory("tmp", "root", "root", data.SharedDirMode)

	root.Children = append(root.Children, bin, usr, etc, home, tmp)
	st.root = root

	for i := range st.users {
		st.ensureHome(&st.users[i])
	}
}

// ensureHome creates a user's home directory with the standard skeleton if
// it does not exist yet. Requires st.mu held for write, or exclusive access.
func (st *state) ensureHome(user *data.User) {
	if _, err := st.resolveChain(user.HomeDir); err == nil {
		return
	}

	parentPath := data.ParentPath(user.HomeDir)
	parentChain, err := st.resolveChain(parentPath)
	if err != nil {
		st.log.Warn("Cannot create home for %s: %v", user.Username, err)
		return
	}

	group := st.groupName(user.GID, user.Username)
	mode := data.DefaultDirMode
	if user.IsRoot() {
		mode = data.PrivateDirMode
	}
	home := data.NewDirectory(data.BaseName(user.HomeDir), user.Username, group, mode)
	home.Children = append(home.Children,
		data.NewDirectory("Documents", user.Username, group, data.DefaultDirMode),
		data.NewDirectory("Desktop", user.Username, group, data.DefaultDirMode),
		data.NewDirectory("Downloads", user.Username, group, data.DefaultDirMode),
		data.NewDirectory(".trash", user.Username, group, data.PrivateDirMode),
	)

	welcome := "Welcome to your desktop, " + user.Username + "!\n\n" +
		"Your files live under " + user.HomeDir + ".\n" +
		"Open the terminal and type 'help' to see what you can do.\n"
	for _, child := range home.Children {
		if child.Name == "Documents" {
			child.Children = append(child.Children,
				data.NewFile("welcome.txt", welcome, user.Username, group, data.DefaultFileMode))
		}
	}

	clones := st.cloneChain(parentChain)
	target := clones[len(clones)-1]
	target.Children = append(target.Children, home)
}
