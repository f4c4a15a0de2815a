package launch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func fixedID() string { return "ab12cd34" }

func TestOpenSessionCommandSequence(t *testing.T) {
	t.Parallel()

	var calls [][]string
	runner := func(_ context.Context, name string, args ...string) (string, error) {
		calls = append(calls, append([]string{name}, args...))
		return "", nil
	}

	l := NewProcessLauncher("vim",
		WithRunFunc(runner),
		WithIDFunc(fixedID),
		WithInTmux(func() bool { return false }),
	)

	result, err := l.OpenSession(context.Background(), SessionConfig{
		Project: "hawk",
		Dir:     "/repos/hawk",
		Tool:    "claude",
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}

	wantName := "hawk-hawk-ab12cd34"
	if result.Name != wantName {
		t.Errorf("Name = %q, want %q", result.Name, wantName)
	}
	if result.Switched {
		t.Error("Switched = true, want false outside tmux")
	}

	want := [][]string{
		{"tmux", "new-session", "-d", "-s", wantName, "-c", "/repos/hawk"},
		{"tmux", "send-keys", "-t", wantName + ":0.0", `claude --prompt "read session context"`, "Enter"},
		{"tmux", "split-window", "-h", "-t", wantName, "-c", "/repos/hawk"},
		{"tmux", "select-pane", "-t", wantName + ":0.0"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %d, want %d:\n%v", len(calls), len(want), calls)
	}
	for i := range want {
		if !slices.Equal(calls[i], want[i]) {
			t.Errorf("call[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestOpenSessionSanitizesName(t *testing.T) {
	t.Parallel()

	runner := func(_ context.Context, _ string, _ ...string) (string, error) {
		return "", nil
	}

	l := NewProcessLauncher("",
		WithRunFunc(runner),
		WithIDFunc(fixedID),
		WithInTmux(func() bool { return false }),
	)

	result, err := l.OpenSession(context.Background(), SessionConfig{
		Project: "v2.0:beta",
		Dir:     "/repos/beta",
		Tool:    "claude",
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if want := "hawk-v2-0-beta-ab12cd34"; result.Name != want {
		t.Errorf("Name = %q, want %q", result.Name, want)
	}
}

func TestOpenSessionNoTool(t *testing.T) {
	t.Parallel()

	var calls int
	runner := func(_ context.Context, _ string, _ ...string) (string, error) {
		calls++
		return "", nil
	}

	l := NewProcessLauncher("vim", WithRunFunc(runner))

	_, err := l.OpenSession(context.Background(), SessionConfig{Project: "p", Dir: "/d"})
	if !errors.Is(err, ErrNoTool) {
		t.Errorf("OpenSession() error = %v, want ErrNoTool", err)
	}
	if calls != 0 {
		t.Errorf("run calls = %d, want 0", calls)
	}
}

func TestOpenSessionCreateFails(t *testing.T) {
	t.Parallel()

	runner := func(_ context.Context, _ string, args ...string) (string, error) {
		if slices.Contains(args, "new-session") {
			return "", fmt.Errorf("no server running")
		}
		return "", nil
	}

	l := NewProcessLauncher("", WithRunFunc(runner), WithIDFunc(fixedID))

	_, err := l.OpenSession(context.Background(), SessionConfig{
		Project: "p", Dir: "/d", Tool: "claude",
	})
	if err == nil {
		t.Fatal("OpenSession() error = nil, want create failure")
	}
	if !strings.Contains(err.Error(), "create session") {
		t.Errorf("error = %v, should mention 'create session'", err)
	}
}

func TestOpenSessionSendKeysFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	runner := func(_ context.Context, _ string, args ...string) (string, error) {
		if slices.Contains(args, "send-keys") {
			return "", fmt.Errorf("send-keys failed")
		}
		return "", nil
	}

	l := NewProcessLauncher("",
		WithRunFunc(runner),
		WithIDFunc(fixedID),
		WithInTmux(func() bool { return false }),
	)

	result, err := l.OpenSession(context.Background(), SessionConfig{
		Project: "p", Dir: "/d", Tool: "claude",
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v, want nil", err)
	}
	if result.Name == "" {
		t.Error("Name empty, want session name despite send-keys failure")
	}
}

func TestOpenSessionSplitFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	runner := func(_ context.Context, _ string, args ...string) (string, error) {
		if slices.Contains(args, "split-window") {
			return "", fmt.Errorf("split failed")
		}
		return "", nil
	}

	l := NewProcessLauncher("",
		WithRunFunc(runner),
		WithIDFunc(fixedID),
		WithInTmux(func() bool { return false }),
	)

	if _, err := l.OpenSession(context.Background(), SessionConfig{
		Project: "p", Dir: "/d", Tool: "claude",
	}); err != nil {
		t.Errorf("OpenSession() error = %v, want nil", err)
	}
}

func TestOpenSessionSwitchesClientInsideTmux(t *testing.T) {
	t.Parallel()

	var calls [][]string
	runner := func(_ context.Context, name string, args ...string) (string, error) {
		calls = append(calls, append([]string{name}, args...))
		return "", nil
	}

	l := NewProcessLauncher("",
		WithRunFunc(runner),
		WithIDFunc(fixedID),
		WithInTmux(func() bool { return true }),
	)

	result, err := l.OpenSession(context.Background(), SessionConfig{
		Project: "p", Dir: "/d", Tool: "claude",
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if !result.Switched {
		t.Error("Switched = false, want true inside tmux")
	}

	last := calls[len(calls)-1]
	if !slices.Contains(last, "switch-client") {
		t.Errorf("last call = %q, want switch-client", last)
	}
}

func TestOpenSessionSwitchFailureLeavesDetached(t *testing.T) {
	t.Parallel()

	runner := func(_ context.Context, _ string, args ...string) (string, error) {
		if slices.Contains(args, "switch-client") {
			return "", fmt.Errorf("no current client")
		}
		return "", nil
	}

	l := NewProcessLauncher("",
		WithRunFunc(runner),
		WithIDFunc(fixedID),
		WithInTmux(func() bool { return true }),
	)

	result, err := l.OpenSession(context.Background(), SessionConfig{
		Project: "p", Dir: "/d", Tool: "claude",
	})
	if err != nil {
		t.Fatalf("OpenSession() error = %v, want nil", err)
	}
	if result.Switched {
		t.Error("Switched = true, want false when switch-client fails")
	}
}

func TestOpenEditor(t *testing.T) {
	t.Parallel()

	var started [][]string
	starter := func(name string, args ...string) error {
		started = append(started, append([]string{name}, args...))
		return nil
	}

	l := NewProcessLauncher("code", WithStartFunc(starter))

	if err := l.OpenEditor(context.Background(), "/repos/hawk"); err != nil {
		t.Fatalf("OpenEditor() error = %v", err)
	}
	if len(started) != 1 {
		t.Fatalf("start calls = %d, want 1", len(started))
	}
	want := []string{"code", "/repos/hawk"}
	if !slices.Equal(started[0], want) {
		t.Errorf("start call = %q, want %q", started[0], want)
	}
}

func TestOpenEditorNoEditor(t *testing.T) {
	t.Parallel()

	l := NewProcessLauncher("", WithStartFunc(func(string, ...string) error {
		t.Error("start called despite missing editor")
		return nil
	}))

	if err := l.OpenEditor(context.Background(), "/d"); !errors.Is(err, ErrNoEditor) {
		t.Errorf("OpenEditor() error = %v, want ErrNoEditor", err)
	}
}

func TestOpenEditorStartFails(t *testing.T) {
	t.Parallel()

	l := NewProcessLauncher("code", WithStartFunc(func(string, ...string) error {
		return fmt.Errorf("executable not found")
	}))

	err := l.OpenEditor(context.Background(), "/d")
	if err == nil {
		t.Fatal("OpenEditor() error = nil, want start failure")
	}
	if !strings.Contains(err.Error(), "open editor") {
		t.Errorf("error = %v, should mention 'open editor'", err)
	}
}
