// Package launch starts external work surfaces for a project: the
// configured editor, and tmux sessions running an AI tool next to a plain
// shell.
package launch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
)

// sessionPrefix marks tmux sessions created by hawk so they are easy to
// spot in `tmux ls` and safe to clean up in bulk.
const sessionPrefix = "hawk-"

// sessionPrompt is handed to the AI tool so it starts by reading the
// project's session notes.
const sessionPrompt = "read session context"

var (
	// ErrNoEditor is returned when no editor is configured.
	ErrNoEditor = errors.New("launch: no editor configured")

	// ErrNoTool is returned when a session is requested without an AI tool.
	ErrNoTool = errors.New("launch: no AI tool configured")
)

// RunFunc executes a command and returns its trimmed stdout.
type RunFunc func(ctx context.Context, name string, args ...string) (string, error)

// StartFunc starts a command without waiting for it to finish.
type StartFunc func(name string, args ...string) error

// SessionConfig describes the tmux session to create for a project.
type SessionConfig struct {
	// Project is the project name, used to derive the session name.
	Project string

	// Dir is the working directory for both panes, normally the
	// project's repository.
	Dir string

	// Tool is the AI tool command to run in the first pane.
	Tool string
}

// SessionResult holds the outcome of session creation.
type SessionResult struct {
	// Name is the tmux session name.
	Name string

	// Switched reports whether the current tmux client was moved to the
	// new session. False means the session is running detached.
	Switched bool
}

// Launcher starts editors and tool sessions.
type Launcher interface {
	// OpenEditor opens the configured editor on dir.
	OpenEditor(ctx context.Context, dir string) error

	// OpenSession creates a detached tmux session for the project and
	// switches the current client to it when possible.
	OpenSession(ctx context.Context, cfg SessionConfig) (SessionResult, error)
}

// ProcessLauncher implements Launcher by shelling out to the editor binary
// and the tmux CLI.
type ProcessLauncher struct {
	editor string
	run    RunFunc
	start  StartFunc
	newID  func() string
	inTmux func() bool
	logger *slog.Logger
}

// Compile-time interface compliance check.
var _ Launcher = (*ProcessLauncher)(nil)

// Option configures a ProcessLauncher.
type Option func(*ProcessLauncher)

// WithRunFunc sets a custom command runner (used for testing).
func WithRunFunc(fn RunFunc) Option {
	return func(p *ProcessLauncher) { p.run = fn }
}

// WithStartFunc sets a custom detached-process starter (used for testing).
func WithStartFunc(fn StartFunc) Option {
	return func(p *ProcessLauncher) { p.start = fn }
}

// WithIDFunc sets the session suffix generator (used for testing).
func WithIDFunc(fn func() string) Option {
	return func(p *ProcessLauncher) { p.newID = fn }
}

// WithInTmux overrides detection of whether hawk itself runs inside tmux.
func WithInTmux(fn func() bool) Option {
	return func(p *ProcessLauncher) { p.inTmux = fn }
}

// WithLogger sets the logger for the launcher.
func WithLogger(l *slog.Logger) Option {
	return func(p *ProcessLauncher) { p.logger = l }
}

// NewProcessLauncher creates a launcher using editor for OpenEditor.
func NewProcessLauncher(editor string, opts ...Option) *ProcessLauncher {
	p := &ProcessLauncher{
		editor: editor,
		run:    defaultRun,
		start:  defaultStart,
		newID:  func() string { return uuid.NewString()[:8] },
		inTmux: func() bool { return os.Getenv("TMUX") != "" },
		logger: slog.Default().With("module", "launch"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OpenEditor starts the configured editor with dir as its argument and
// does not wait for it to exit.
func (p *ProcessLauncher) OpenEditor(_ context.Context, dir string) error {
	if p.editor == "" {
		return ErrNoEditor
	}
	if err := p.start(p.editor, dir); err != nil {
		return fmt.Errorf("open editor %q: %w", p.editor, err)
	}
	p.logger.Debug("editor launched", "editor", p.editor, "dir", dir)
	return nil
}

// OpenSession creates a two-pane tmux session: the AI tool on the left,
// primed to read the session notes, and a plain shell on the right. Both
// panes start in cfg.Dir.
//
// Failing to create the session is fatal; failures while furnishing it
// (starting the tool, splitting the shell pane) leave a usable session
// behind and are only logged.
func (p *ProcessLauncher) OpenSession(ctx context.Context, cfg SessionConfig) (SessionResult, error) {
	if cfg.Tool == "" {
		return SessionResult{}, ErrNoTool
	}

	name := sessionPrefix + sanitizeName(cfg.Project) + "-" + p.newID()

	if _, err := p.run(ctx, "tmux", "new-session", "-d", "-s", name, "-c", cfg.Dir); err != nil {
		return SessionResult{}, fmt.Errorf("create session %q: %w", name, err)
	}
	p.logger.Debug("tmux session created", "name", name)

	command := fmt.Sprintf("%s --prompt %q", cfg.Tool, sessionPrompt)
	if _, err := p.run(ctx, "tmux", "send-keys", "-t", name+":0.0", command, "Enter"); err != nil {
		p.logger.Warn("failed to start tool in session",
			"session", name,
			"tool", cfg.Tool,
			"error", err,
		)
	}

	if _, err := p.run(ctx, "tmux", "split-window", "-h", "-t", name, "-c", cfg.Dir); err != nil {
		p.logger.Warn("failed to create shell pane",
			"session", name,
			"error", err,
		)
	}

	// Focus back on the tool pane.
	_, _ = p.run(ctx, "tmux", "select-pane", "-t", name+":0.0")

	result := SessionResult{Name: name}
	if p.inTmux() {
		if _, err := p.run(ctx, "tmux", "switch-client", "-t", name); err != nil {
			p.logger.Warn("failed to switch client",
				"session", name,
				"error", err,
			)
		} else {
			result.Switched = true
		}
	}

	p.logger.Info("session ready",
		"name", name,
		"tool", cfg.Tool,
		"switched", result.Switched,
	)
	return result, nil
}

// sessionNameReplacer strips characters tmux rejects in session names.
var sessionNameReplacer = strings.NewReplacer(".", "-", ":", "-")

func sanitizeName(name string) string {
	return sessionNameReplacer.Replace(name)
}

// defaultRun executes the command, capturing stdout.
func defaultRun(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// defaultStart launches the command detached from hawk's lifetime.
func defaultStart(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
