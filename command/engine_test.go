package command_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mwantia/webtop"
	"github.com/mwantia/webtop/command"
	"github.com/mwantia/webtop/command/builtin"
)

func newTestEngine(t *testing.T, opts ...command.EngineOption) *command.Engine {
	fs, err := webtop.NewFileSystem(t.Context())
	if err != nil {
		t.Fatalf("Failed to initialize filesystem: %v", err)
	}
	t.Cleanup(func() {
		fs.Close(t.Context())
	})

	cc := command.NewCommandCenter()
	if err := builtin.InitBuiltin(cc); err != nil {
		t.Fatalf("Failed to register builtins: %v", err)
	}

	return command.NewEngine(fs, cc, opts...)
}

func run(t *testing.T, e *command.Engine, line string) *command.HistoryEntry {
	entry, err := e.Run(t.Context(), line)
	if err != nil {
		t.Fatalf("Run %q failed: %v", line, err)
	}
	return entry
}

func TestEngine_RunEcho(t *testing.T) {
	e := newTestEngine(t)

	entry := run(t, e, "  echo hello world  ")
	if entry == nil {
		t.Fatal("Expected a history entry")
	}
	if entry.Input != "echo hello world" {
		t.Errorf("Expected trimmed input, got %q", entry.Input)
	}
	if len(entry.Output) != 1 || entry.Output[0] != "hello world" {
		t.Errorf("Expected echoed output, got %v", entry.Output)
	}
	if entry.Err {
		t.Error("Expected success entry")
	}
	if entry.User != "user" {
		t.Errorf("Expected acting user recorded, got %q", entry.User)
	}
	if entry.Dir != "/home/user" {
		t.Errorf("Expected cwd recorded, got %q", entry.Dir)
	}
	if entry.Time.IsZero() {
		t.Error("Expected execution time recorded")
	}

	if e.State() != command.StateIdle {
		t.Errorf("Expected engine idle, got %v", e.State())
	}
}

func TestEngine_EmptyInput(t *testing.T) {
	e := newTestEngine(t)

	entry, err := e.Run(t.Context(), "   ")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if entry != nil {
		t.Errorf("Expected no entry for empty input, got %+v", entry)
	}
	if len(e.History()) != 0 {
		t.Error("Expected transcript untouched")
	}
}

func TestEngine_UnknownCommand(t *testing.T) {
	e := newTestEngine(t)

	entry := run(t, e, "frobnicate now")
	if !entry.Err {
		t.Error("Expected error entry")
	}
	if len(entry.Output) != 1 || entry.Output[0] != "frobnicate: command not found" {
		t.Errorf("Expected not-found line, got %v", entry.Output)
	}
}

func TestEngine_Redirect(t *testing.T) {
	ctx := t.Context()
	e := newTestEngine(t)

	entry := run(t, e, "echo first > notes.txt")
	if entry.Err {
		t.Fatalf("Expected success, got %v", entry.Output)
	}
	if len(entry.Output) != 0 {
		t.Errorf("Expected redirected output suppressed, got %v", entry.Output)
	}

	content, err := e.Session().ReadFile(ctx, "/home/user/notes.txt")
	if err != nil {
		t.Fatalf("Failed to read redirect target: %v", err)
	}
	if content != "first\n" {
		t.Errorf("Expected written output, got %q", content)
	}

	run(t, e, "echo second >> notes.txt")
	content, err = e.Session().ReadFile(ctx, "/home/user/notes.txt")
	if err != nil {
		t.Fatalf("Failed to read redirect target: %v", err)
	}
	if content != "first\nsecond\n" {
		t.Errorf("Expected appended output, got %q", content)
	}

	run(t, e, "echo third > notes.txt")
	content, err = e.Session().ReadFile(ctx, "/home/user/notes.txt")
	if err != nil {
		t.Fatalf("Failed to read redirect target: %v", err)
	}
	if content != "third\n" {
		t.Errorf("Expected truncated rewrite, got %q", content)
	}
}

func TestEngine_RedirectErrors(t *testing.T) {
	e := newTestEngine(t)

	entry := run(t, e, "echo x >")
	if !entry.Err {
		t.Error("Expected error for missing target")
	}

	// A failing command never writes its error into the target.
	entry = run(t, e, "cat /nope > out.txt")
	if !entry.Err {
		t.Error("Expected error entry")
	}
	if _, err := e.Session().Stat(t.Context(), "/home/user/out.txt"); err == nil {
		t.Error("Expected no redirect file after failure")
	}

	// Writing somewhere forbidden turns into an errored entry.
	entry = run(t, e, "echo x > /etc/forbidden.txt")
	if !entry.Err {
		t.Error("Expected permission failure on redirect target")
	}
}

func TestEngine_Glob(t *testing.T) {
	e := newTestEngine(t)

	run(t, e, "touch alpha.txt beta.txt gamma.md")

	entry := run(t, e, "echo *.txt")
	if got := strings.Join(entry.Output, "\n"); got != "alpha.txt beta.txt" {
		t.Errorf("Expected sorted glob expansion, got %q", got)
	}

	// Zero matches keep the pattern literal.
	entry = run(t, e, "echo *.zip")
	if got := strings.Join(entry.Output, "\n"); got != "*.zip" {
		t.Errorf("Expected literal fallback, got %q", got)
	}

	// Patterns with a path separator never expand.
	entry = run(t, e, "echo /tmp/*.txt")
	if got := strings.Join(entry.Output, "\n"); got != "/tmp/*.txt" {
		t.Errorf("Expected no expansion across directories, got %q", got)
	}

	// Hidden entries only match when the dot is spelled out.
	entry = run(t, e, "echo *")
	if got := strings.Join(entry.Output, "\n"); strings.Contains(got, ".trash") {
		t.Errorf("Expected hidden entries skipped, got %q", got)
	}
	entry = run(t, e, "echo .*")
	if got := strings.Join(entry.Output, "\n"); !strings.Contains(got, ".trash") {
		t.Errorf("Expected dot pattern to match hidden entries, got %q", got)
	}
}

func TestEngine_Launcher(t *testing.T) {
	launched := ""
	var launchArgs []string
	e := newTestEngine(t, command.WithLaunchFunc(func(ctx context.Context, appID string, args []string) error {
		launched = appID
		launchArgs = args
		return nil
	}))

	entry := run(t, e, "notepad ~/Documents/welcome.txt")
	if entry.Err {
		t.Fatalf("Expected launch to succeed, got %v", entry.Output)
	}
	if launched != "notepad" {
		t.Errorf("Expected notepad launched, got %q", launched)
	}
	if len(launchArgs) != 1 || launchArgs[0] != "~/Documents/welcome.txt" {
		t.Errorf("Expected launcher args passed through, got %v", launchArgs)
	}
}

func TestEngine_LauncherRequiresMarker(t *testing.T) {
	ctx := t.Context()
	e := newTestEngine(t)

	rootFs, err := e.Session().RunAs("root")
	if err != nil {
		t.Fatalf("Failed to run as root: %v", err)
	}
	if _, err := rootFs.CreateFile(ctx, "/bin", "plain", "just text"); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := rootFs.Chmod(ctx, "/bin/plain", "rwxr-xr-x"); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}

	entry := run(t, e, "plain")
	if !entry.Err || entry.Output[0] != "plain: command not found" {
		t.Errorf("Expected marker-less executable rejected, got %v", entry.Output)
	}
}

func TestEngine_LauncherWithoutDesktop(t *testing.T) {
	e := newTestEngine(t)

	entry := run(t, e, "notepad")
	if !entry.Err {
		t.Error("Expected launch failure without a desktop hook")
	}
}

func TestEngine_SessionStack(t *testing.T) {
	e := newTestEngine(t)

	entry := run(t, e, "su root wrong")
	if !entry.Err {
		t.Error("Expected su with wrong password to fail")
	}

	run(t, e, "su root root")
	if e.User().Username != "root" {
		t.Errorf("Expected effective user root, got %q", e.User().Username)
	}
	if e.Depth() != 2 {
		t.Errorf("Expected stacked session, got depth %d", e.Depth())
	}

	entry = run(t, e, "whoami")
	if entry.Output[0] != "root" {
		t.Errorf("Expected whoami root, got %v", entry.Output)
	}
	if entry.User != "root" {
		t.Errorf("Expected entry to record effective user, got %q", entry.User)
	}

	// Root stacks further without a password.
	run(t, e, "su user")
	if e.User().Username != "user" || e.Depth() != 3 {
		t.Errorf("Expected root to switch freely, got %q depth %d", e.User().Username, e.Depth())
	}

	run(t, e, "exit")
	if e.User().Username != "root" {
		t.Errorf("Expected pop back to root, got %q", e.User().Username)
	}
	run(t, e, "exit")
	run(t, e, "exit")
	if e.User().Username != "user" || e.Depth() != 1 {
		t.Errorf("Expected base session to survive exit, got %q depth %d", e.User().Username, e.Depth())
	}
}

func TestEngine_Clear(t *testing.T) {
	e := newTestEngine(t)

	run(t, e, "echo one")
	run(t, e, "echo two")
	if len(e.History()) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(e.History()))
	}

	entry := run(t, e, "clear")
	if !entry.Clear {
		t.Error("Expected clear flag on entry")
	}
	if len(e.History()) != 0 {
		t.Errorf("Expected transcript reset, got %d entries", len(e.History()))
	}
}

func TestEngine_InputHistory(t *testing.T) {
	e := newTestEngine(t)

	run(t, e, "echo one")
	run(t, e, "echo two")

	line, ok := e.HistoryPrev()
	if !ok || line != "echo two" {
		t.Errorf("Expected newest input, got %q", line)
	}
	line, _ = e.HistoryPrev()
	if line != "echo one" {
		t.Errorf("Expected older input, got %q", line)
	}

	// Clamped at the oldest.
	line, _ = e.HistoryPrev()
	if line != "echo one" {
		t.Errorf("Expected clamp at oldest, got %q", line)
	}

	line, _ = e.HistoryNext()
	if line != "echo two" {
		t.Errorf("Expected forward step, got %q", line)
	}

	// Stepping past the newest clears the selection.
	line, ok = e.HistoryNext()
	if !ok || line != "" {
		t.Errorf("Expected empty line past newest, got %q", line)
	}
	if _, ok := e.HistoryNext(); ok {
		t.Error("Expected no-op after selection cleared")
	}

	// A new submission resets navigation to the end.
	run(t, e, "echo three")
	line, _ = e.HistoryPrev()
	if line != "echo three" {
		t.Errorf("Expected newest after submit, got %q", line)
	}
}

func TestEngine_RedirectTargetTokens(t *testing.T) {
	ctx := t.Context()
	e := newTestEngine(t)

	// The rightmost operator wins; earlier ones stay ordinary text.
	run(t, e, "echo a > b > c.txt")
	content, err := e.Session().ReadFile(ctx, "/home/user/c.txt")
	if err != nil {
		t.Fatalf("Failed to read target: %v", err)
	}
	if content != "a > b\n" {
		t.Errorf("Expected earlier operator kept as text, got %q", content)
	}

	// Only the first field after the operator names the target.
	run(t, e, "echo x > d.txt ignored")
	if _, err := e.Session().Stat(ctx, "/home/user/d.txt"); err != nil {
		t.Errorf("Expected first field as target, got %v", err)
	}
}
