package command_test

import (
	"testing"
)

func TestEngine_CompleteCommandName(t *testing.T) {
	ctx := t.Context()
	e := newTestEngine(t)

	// Exactly one candidate completes in place.
	completed, candidates := e.Complete(ctx, "whoa")
	if completed != "whoami" || candidates != nil {
		t.Errorf("Expected single completion, got %q %v", completed, candidates)
	}

	// Several candidates leave the input alone and list them.
	completed, candidates = e.Complete(ctx, "c")
	if completed != "c" {
		t.Errorf("Expected input untouched, got %q", completed)
	}
	if len(candidates) < 2 {
		t.Errorf("Expected multiple candidates, got %v", candidates)
	}
	seen := make(map[string]bool)
	for _, c := range candidates {
		seen[c] = true
	}
	for _, expected := range []string{"cat", "cd", "clear", "cp", "chmod", "chown", "calculator"} {
		if !seen[expected] {
			t.Errorf("Expected %s among candidates, got %v", expected, candidates)
		}
	}

	// Launchers under /bin complete like commands.
	completed, candidates = e.Complete(ctx, "notep")
	if completed != "notepad" || candidates != nil {
		t.Errorf("Expected launcher completion, got %q %v", completed, candidates)
	}

	// No candidates is a no-op.
	completed, candidates = e.Complete(ctx, "zzz")
	if completed != "zzz" || candidates != nil {
		t.Errorf("Expected no-op, got %q %v", completed, candidates)
	}
}

func TestEngine_CompletePath(t *testing.T) {
	ctx := t.Context()
	e := newTestEngine(t)

	completed, candidates := e.Complete(ctx, "cat ~/Docu")
	if completed != "cat ~/Documents/" || candidates != nil {
		t.Errorf("Expected path completion, got %q %v", completed, candidates)
	}

	_, candidates = e.Complete(ctx, "cat ~/Do")
	if len(candidates) != 2 {
		t.Errorf("Expected Documents/ and Downloads/, got %v", candidates)
	}

	// Relative to the working directory.
	completed, candidates = e.Complete(ctx, "cd Desk")
	if completed != "cd Desktop/" || candidates != nil {
		t.Errorf("Expected relative completion, got %q %v", completed, candidates)
	}

	// Descending into a completed directory keeps the typed prefix.
	completed, _ = e.Complete(ctx, "cat ~/Documents/wel")
	if completed != "cat ~/Documents/welcome.txt" {
		t.Errorf("Expected file completion, got %q", completed)
	}

	// Hidden entries only complete once the dot is typed.
	_, candidates = e.Complete(ctx, "cd ")
	for _, c := range candidates {
		if c == ".trash/" {
			t.Errorf("Expected hidden entries skipped, got %v", candidates)
		}
	}
	completed, _ = e.Complete(ctx, "cd .t")
	if completed != "cd .trash/" {
		t.Errorf("Expected dot prefix to reveal hidden entries, got %q", completed)
	}
}

func TestEngine_Ghost(t *testing.T) {
	ctx := t.Context()
	e := newTestEngine(t)

	if ghost := e.Ghost(ctx, "whoa"); ghost != "mi" {
		t.Errorf("Expected ghost suffix, got %q", ghost)
	}
	if ghost := e.Ghost(ctx, "c"); ghost != "" {
		t.Errorf("Expected no ghost with many candidates, got %q", ghost)
	}
	if ghost := e.Ghost(ctx, ""); ghost != "" {
		t.Errorf("Expected no ghost for empty input, got %q", ghost)
	}
	if ghost := e.Ghost(ctx, "cat "); ghost != "" {
		t.Errorf("Expected no ghost after trailing space, got %q", ghost)
	}
	if ghost := e.Ghost(ctx, "cat ~/Documents/wel"); ghost != "come.txt" {
		t.Errorf("Expected path ghost, got %q", ghost)
	}
}
