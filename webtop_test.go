package webtop_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mwantia/webtop"
	"github.com/mwantia/webtop/data"
	"github.com/mwantia/webtop/storage/ephemeral"
)

func TestNewFileSystem_Bootstrap(t *testing.T) {
	ctx := t.Context()
	fs, err := webtop.NewFileSystem(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize filesystem: %v", err)
	}
	defer fs.Close(ctx)

	if fs.CurrentUser().Username != "user" {
		t.Errorf("Expected default user 'user', got %q", fs.CurrentUser().Username)
	}

	for _, path := range []string{"/bin", "/usr/bin", "/etc", "/home/user", "/tmp"} {
		if _, err := fs.Stat(ctx, path); err != nil {
			t.Errorf("Expected %s to exist, got %v", path, err)
		}
	}

	passwd, err := fs.ReadFile(ctx, "/etc/passwd")
	if err != nil {
		t.Fatalf("Failed to read /etc/passwd: %v", err)
	}
	if !strings.Contains(passwd, "root:root:0:0:") {
		t.Errorf("Expected root entry in passwd, got %q", passwd)
	}

	entries, err := fs.ListDirectory(ctx, "/home/user")
	if err != nil {
		t.Fatalf("Failed to list home: %v", err)
	}
	names := make(map[string]bool)
	for _, entry := range entries {
		names[entry.Name] = true
	}
	for _, expected := range []string{"Documents", "Desktop", "Downloads", ".trash"} {
		if !names[expected] {
			t.Errorf("Expected %s in home skeleton", expected)
		}
	}
}

func TestNewFileSystem_Launchers(t *testing.T) {
	ctx := t.Context()
	fs, err := webtop.NewFileSystem(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize filesystem: %v", err)
	}
	defer fs.Close(ctx)

	content, err := fs.ReadFile(ctx, "/bin/notepad")
	if err != nil {
		t.Fatalf("Failed to read launcher: %v", err)
	}
	if !strings.HasPrefix(content, webtop.AppMarker+" notepad") {
		t.Errorf("Expected launcher marker, got %q", content)
	}

	node, err := fs.Stat(ctx, "/bin/notepad")
	if err != nil {
		t.Fatalf("Failed to stat launcher: %v", err)
	}
	if !node.Permissions.Allows(data.ClassOther, data.OpExecute) {
		t.Errorf("Expected launcher to be executable, got %q", node.Permissions)
	}
}

func TestFileSystem_PersistReload(t *testing.T) {
	ctx := t.Context()
	store := ephemeral.NewEphemeralBackend()

	fs, err := webtop.NewFileSystem(ctx, webtop.WithStore(store))
	if err != nil {
		t.Fatalf("Failed to initialize filesystem: %v", err)
	}

	if _, err := fs.CreateFile(ctx, "~/Documents", "notes.txt", "remember me"); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	reloaded, err := webtop.NewFileSystem(ctx, webtop.WithStore(store))
	if err != nil {
		t.Fatalf("Failed to reload filesystem: %v", err)
	}

	content, err := reloaded.ReadFile(ctx, "/home/user/Documents/notes.txt")
	if err != nil {
		t.Fatalf("Failed to read reloaded file: %v", err)
	}
	if content != "remember me" {
		t.Errorf("Expected persisted content, got %q", content)
	}

	users := reloaded.Users()
	if len(users) != 2 {
		t.Errorf("Expected 2 users after reload, got %d", len(users))
	}
}

func TestFileSystem_CorruptStateBootstraps(t *testing.T) {
	ctx := t.Context()
	store := ephemeral.NewEphemeralBackend()
	if err := store.Open(ctx); err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.Set(ctx, "webtop-filesystem", "{not json"); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}

	fs, err := webtop.NewFileSystem(ctx, webtop.WithStore(store))
	if err != nil {
		t.Fatalf("Expected fresh bootstrap on corrupt state, got %v", err)
	}

	if _, err := fs.Stat(ctx, "/bin"); err != nil {
		t.Errorf("Expected bootstrapped tree, got %v", err)
	}
}

func TestFileSystem_Login(t *testing.T) {
	ctx := t.Context()
	fs, err := webtop.NewFileSystem(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize filesystem: %v", err)
	}
	defer fs.Close(ctx)

	if _, err := fs.Login(ctx, "user", "wrong"); !errors.Is(err, webtop.ErrAuthFailed) {
		t.Errorf("Expected ErrAuthFailed, got %v", err)
	}
	if _, err := fs.Login(ctx, "ghost", "password"); !errors.Is(err, webtop.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}

	rootFs, err := fs.Login(ctx, "root", "root")
	if err != nil {
		t.Fatalf("Failed to login as root: %v", err)
	}
	rootUser := rootFs.CurrentUser()
	if !rootUser.IsRoot() {
		t.Error("Expected root session after login")
	}

	// The original session keeps its own identity.
	if fs.CurrentUser().Username != "user" {
		t.Errorf("Expected original session unchanged, got %q", fs.CurrentUser().Username)
	}
}

func TestFileSystem_RunAs(t *testing.T) {
	ctx := t.Context()
	fs, err := webtop.NewFileSystem(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize filesystem: %v", err)
	}
	defer fs.Close(ctx)

	rootFs, err := fs.RunAs("root")
	if err != nil {
		t.Fatalf("Failed to run as root: %v", err)
	}
	if rootFs.CurrentUser().UID != 0 {
		t.Errorf("Expected uid 0, got %d", rootFs.CurrentUser().UID)
	}

	if _, err := fs.RunAs("ghost"); !errors.Is(err, webtop.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}

	// Both views share the same tree.
	if _, err := rootFs.CreateFile(ctx, "/etc", "motd", "hello"); err != nil {
		t.Fatalf("Failed to create file as root: %v", err)
	}
	content, err := fs.ReadFile(ctx, "/etc/motd")
	if err != nil {
		t.Fatalf("Expected shared state, got %v", err)
	}
	if content != "hello" {
		t.Errorf("Expected shared content, got %q", content)
	}
}

func TestFileSystem_AppPreferences(t *testing.T) {
	ctx := t.Context()
	fs, err := webtop.NewFileSystem(ctx)
	if err != nil {
		t.Fatalf("Failed to initialize filesystem: %v", err)
	}
	defer fs.Close(ctx)

	if _, err := fs.AppPreference(ctx, "notepad"); !errors.Is(err, webtop.ErrNotExist) {
		t.Errorf("Expected ErrNotExist for unset preference, got %v", err)
	}

	if err := fs.SetAppPreference(ctx, "notepad", `{"fontSize":14}`); err != nil {
		t.Fatalf("Failed to set preference: %v", err)
	}

	value, err := fs.AppPreference(ctx, "notepad")
	if err != nil {
		t.Fatalf("Failed to get preference: %v", err)
	}
	if value != `{"fontSize":14}` {
		t.Errorf("Expected stored preference, got %q", value)
	}
}
