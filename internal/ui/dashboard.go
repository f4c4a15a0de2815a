// Package ui renders the hawk dashboard: a bubbletea program with a
// project pane, a client pane, health alerts, and huh modals for client
// edits. All filesystem and subprocess work happens in tea commands so
// the update loop never blocks.
package ui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hawklabs/hawk/internal/client"
	"github.com/hawklabs/hawk/internal/config"
	"github.com/hawklabs/hawk/internal/health"
	"github.com/hawklabs/hawk/internal/launch"
	"github.com/hawklabs/hawk/internal/project"
)

const (
	// scanTimeout bounds one full scan, branch lookups included.
	scanTimeout = 10 * time.Second

	// launchTimeout bounds the tmux calls of one session launch.
	launchTimeout = 10 * time.Second

	// statusTTL is how long a status-bar message stays visible.
	statusTTL = 4 * time.Second
)

// viewTab identifies the active view.
type viewTab int

const (
	tabProjects viewTab = iota
	tabClients
)

// pane identifies focus within the projects view.
type pane int

const (
	paneList pane = iota
	paneDetail
)

// overlayKind identifies the active fullscreen overlay.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayRoutine
	overlayHealth
)

// Deps carries the dashboard's collaborators, built once by the CLI
// composition root.
type Deps struct {
	Config   *config.Config
	Scanner  *project.Scanner
	Checker  *health.Checker
	Store    *client.Store
	Launcher launch.Launcher
	Logger   *slog.Logger

	// Now is the clock for payment status and relative times. nil means
	// time.Now.
	Now func() time.Time
}

// --- Messages ---

type scanDoneMsg struct {
	summaries []project.Summary
	report    health.Report
	err       error
}

type clientsLoadedMsg struct {
	clients []client.Client
	owners  map[string]client.Client
	err     error
}

type routineLoadedMsg string

type sessionStartedMsg struct {
	result launch.SessionResult
	err    error
}

type statusMsg string

type clearStatusMsg struct {
	seq int
}

// Model is the dashboard state. It is a value type; Update returns the
// evolved copy.
type Model struct {
	deps Deps

	tab     viewTab
	pane    pane
	overlay overlayKind

	width  int
	height int

	spinner  spinner.Model
	scanning bool

	summaries []project.Summary
	report    health.Report
	clients   []client.Client
	owners    map[string]client.Client

	cursor       int
	clientCursor int

	form     *huh.Form
	formKind formKind
	draft    clientDraft
	deleteOK bool
	linkTo   string
	toolPick string

	routine   string
	status    string
	statusSeq int

	md *glamour.TermRenderer
}

// New builds the dashboard model. The first scan starts from Init.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(colorGreen)

	return Model{
		deps:     deps,
		spinner:  sp,
		scanning: true,
	}
}

// Init kicks off the first scan and client load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scanCmd(), m.loadClientsCmd())
}

// --- Commands ---

// scanCmd runs one scan plus health check off the update loop.
func (m Model) scanCmd() tea.Cmd {
	scanner, checker := m.deps.Scanner, m.deps.Checker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()

		summaries, err := scanner.Scan(ctx)
		if err != nil {
			return scanDoneMsg{err: err}
		}
		return scanDoneMsg{summaries: summaries, report: checker.Check(summaries)}
	}
}

// loadClientsCmd reads the store and derives the project ownership index.
func (m Model) loadClientsCmd() tea.Cmd {
	store := m.deps.Store
	return func() tea.Msg {
		clients, err := store.List()
		if err != nil {
			return clientsLoadedMsg{err: err}
		}

		owners := make(map[string]client.Client)
		for _, c := range clients {
			for _, p := range c.Projects {
				owners[p] = c
			}
		}
		client.SortByName(clients)
		return clientsLoadedMsg{clients: clients, owners: owners}
	}
}

// loadRoutineCmd reads routine.md; absence shows as an empty overlay.
func (m Model) loadRoutineCmd() tea.Cmd {
	path := m.deps.Config.Paths.Routine
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return routineLoadedMsg("")
		}
		return routineLoadedMsg(data)
	}
}

// openEditorCmd launches the editor on the project's repository.
func (m Model) openEditorCmd(dir string) tea.Cmd {
	launcher, editor := m.deps.Launcher, m.deps.Config.Tools.Editor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), launchTimeout)
		defer cancel()

		if err := launcher.OpenEditor(ctx, dir); err != nil {
			return statusMsg("editor failed: " + err.Error())
		}
		return statusMsg("Opening in " + editor)
	}
}

// openSessionCmd launches the AI-tool tmux session for a project.
func (m Model) openSessionCmd(sum project.Summary, tool string) tea.Cmd {
	launcher := m.deps.Launcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), launchTimeout)
		defer cancel()

		result, err := launcher.OpenSession(ctx, launch.SessionConfig{
			Project: sum.Name,
			Dir:     sum.RepoPath,
			Tool:    tool,
		})
		return sessionStartedMsg{result: result, err: err}
	}
}

// setStatus shows a transient status-bar message and schedules its
// removal. The sequence number keeps an old timer from clearing a newer
// message.
func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// --- Update ---

// Update advances the model. Async results are handled first, then an
// open form consumes everything else, then overlay and global keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.md = newMarkdownRenderer(m.detailWidth())

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			return m, m.setStatus("scan failed: " + msg.err.Error())
		}
		m.summaries = msg.summaries
		m.report = msg.report
		if m.cursor >= len(m.summaries) {
			m.cursor = max(0, len(m.summaries)-1)
		}
		return m, nil

	case clientsLoadedMsg:
		if msg.err != nil {
			return m, m.setStatus("clients: " + msg.err.Error())
		}
		m.clients = msg.clients
		m.owners = msg.owners
		if m.clientCursor >= len(m.clients) {
			m.clientCursor = max(0, len(m.clients)-1)
		}
		return m, nil

	case routineLoadedMsg:
		m.routine = string(msg)
		m.overlay = overlayRoutine
		return m, nil

	case sessionStartedMsg:
		if msg.err != nil {
			return m, m.setStatus("session failed: " + msg.err.Error())
		}
		if msg.result.Switched {
			return m, m.setStatus("Switched to " + msg.result.Name)
		}
		return m, m.setStatus("Started " + msg.result.Name + " (tmux attach -t " + msg.result.Name + ")")

	case statusMsg:
		return m, m.setStatus(string(msg))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if m.overlay != overlayNone {
			return m.updateOverlay(key)
		}
		return m.updateKeys(key)
	}

	return m, nil
}

// updateForm routes messages to the open modal and harvests its outcome.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		m.form = nil
		m.formKind = formNone
		return m, nil
	}
	return m, cmd
}

// completeForm applies the finished modal's result to the store or
// launcher, then refreshes the client list.
func (m Model) completeForm() (tea.Model, tea.Cmd) {
	kind := m.formKind
	m.form = nil
	m.formKind = formNone

	switch kind {
	case formAddClient:
		c := m.draft.toClient()
		if err := m.deps.Store.Create(c); err != nil {
			return m, m.setStatus("add failed: " + err.Error())
		}
		return m, tea.Batch(m.setStatus("Added "+c.Name), m.loadClientsCmd())

	case formEditClient:
		c := m.draft.toClient()
		if existing, err := m.deps.Store.Get(c.ID); err == nil {
			c.Projects = existing.Projects
		}
		if err := m.deps.Store.Update(c); err != nil {
			return m, m.setStatus("edit failed: " + err.Error())
		}
		return m, tea.Batch(m.setStatus("Updated "+c.Name), m.loadClientsCmd())

	case formDeleteClient:
		if !m.deleteOK {
			return m, nil
		}
		sel, ok := m.selectedClient()
		if !ok {
			return m, nil
		}
		if err := m.deps.Store.Delete(sel.ID); err != nil {
			return m, m.setStatus("delete failed: " + err.Error())
		}
		return m, tea.Batch(m.setStatus("Deleted "+sel.Name), m.loadClientsCmd())

	case formLinkProject:
		sum, ok := m.selectedProject()
		if !ok {
			return m, nil
		}
		if m.linkTo == "" {
			if err := m.deps.Store.UnlinkProject(sum.Name); err != nil {
				return m, m.setStatus("unlink failed: " + err.Error())
			}
			return m, tea.Batch(m.setStatus("Unlinked "+sum.Name), m.loadClientsCmd())
		}
		if err := m.deps.Store.LinkProject(sum.Name, m.linkTo); err != nil {
			return m, m.setStatus("link failed: " + err.Error())
		}
		return m, tea.Batch(m.setStatus("Linked "+sum.Name), m.loadClientsCmd())

	case formPickTool:
		sum, ok := m.selectedProject()
		if !ok || m.toolPick == "" {
			return m, nil
		}
		return m, m.openSessionCmd(sum, m.toolPick)
	}

	return m, nil
}

// updateOverlay handles keys while a fullscreen overlay is open.
func (m Model) updateOverlay(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "q", "R", "?":
		m.overlay = overlayNone
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updateKeys handles the main key map.
func (m Model) updateKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		m.scanning = true
		return m, tea.Batch(m.spinner.Tick, m.scanCmd(), m.loadClientsCmd())

	case "tab":
		if m.tab == tabProjects {
			m.tab = tabClients
		} else {
			m.tab = tabProjects
		}
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "h", "left":
		if m.tab == tabProjects {
			m.pane = paneList
		}
		return m, nil

	case "l", "right":
		if m.tab == tabProjects {
			m.pane = paneDetail
		}
		return m, nil

	case "e":
		return m.openEditor()

	case "s":
		return m.startSession()

	case "a":
		m.draft = clientDraft{Cycle: client.CycleAnnual, Currency: client.DefaultCurrency}
		m.formKind = formAddClient
		m.form = newClientForm(&m.draft, false)
		return m, m.form.Init()

	case "E":
		sel, ok := m.selectedClient()
		if !ok {
			return m, m.setStatus("no client selected")
		}
		m.draft = draftFrom(sel)
		m.formKind = formEditClient
		m.form = newClientForm(&m.draft, true)
		return m, m.form.Init()

	case "D":
		sel, ok := m.selectedClient()
		if !ok {
			return m, m.setStatus("no client selected")
		}
		m.deleteOK = false
		m.formKind = formDeleteClient
		m.form = newDeleteForm(sel.Name, &m.deleteOK)
		return m, m.form.Init()

	case "L":
		sum, ok := m.selectedProject()
		if !ok {
			return m, m.setStatus("no project selected")
		}
		if len(m.clients) == 0 {
			return m, m.setStatus("no clients yet; press a to add one")
		}
		m.linkTo = ""
		if owner, linked := m.owners[sum.Name]; linked {
			m.linkTo = owner.ID
		}
		m.formKind = formLinkProject
		m.form = newLinkForm(sum.Name, m.clients, &m.linkTo)
		return m, m.form.Init()

	case "u":
		sum, ok := m.selectedProject()
		if !ok {
			return m, m.setStatus("no project selected")
		}
		if _, linked := m.owners[sum.Name]; !linked {
			return m, m.setStatus(sum.Name + " is not linked")
		}
		if err := m.deps.Store.UnlinkProject(sum.Name); err != nil {
			return m, m.setStatus("unlink failed: " + err.Error())
		}
		return m, tea.Batch(m.setStatus("Unlinked "+sum.Name), m.loadClientsCmd())

	case "R":
		return m, m.loadRoutineCmd()

	case "?":
		m.overlay = overlayHealth
		return m, nil
	}

	return m, nil
}

// openEditor validates the selection and spawns the editor.
func (m Model) openEditor() (tea.Model, tea.Cmd) {
	sum, ok := m.selectedProject()
	if !ok {
		return m, m.setStatus("no project selected")
	}
	if sum.RepoPath == "" || !sum.RepoExists {
		return m, m.setStatus("Repo path missing or invalid")
	}
	return m, m.openEditorCmd(sum.RepoPath)
}

// startSession launches the default AI tool, or opens the picker when no
// default is configured.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	sum, ok := m.selectedProject()
	if !ok {
		return m, m.setStatus("no project selected")
	}
	if sum.RepoPath == "" || !sum.RepoExists {
		return m, m.setStatus("Repo path missing or invalid")
	}

	tools := m.deps.Config.Tools
	if tools.DefaultAITool != "" {
		return m, m.openSessionCmd(sum, tools.DefaultAITool)
	}
	if len(tools.AITools) == 0 {
		return m, m.setStatus("no AI tool configured")
	}

	m.toolPick = tools.AITools[0]
	m.formKind = formPickTool
	m.form = newToolForm(tools.AITools, &m.toolPick)
	return m, m.form.Init()
}

// moveCursor moves the active list's cursor, clamped to its length.
func (m *Model) moveCursor(delta int) {
	if m.tab == tabClients {
		m.clientCursor = clamp(m.clientCursor+delta, len(m.clients))
		return
	}
	m.cursor = clamp(m.cursor+delta, len(m.summaries))
}

func clamp(v, length int) int {
	if length == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= length {
		return length - 1
	}
	return v
}

// selectedProject returns the summary under the cursor.
func (m Model) selectedProject() (project.Summary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.summaries) {
		return project.Summary{}, false
	}
	return m.summaries[m.cursor], true
}

// selectedClient returns the client under the cursor.
func (m Model) selectedClient() (client.Client, bool) {
	if m.clientCursor < 0 || m.clientCursor >= len(m.clients) {
		return client.Client{}, false
	}
	return m.clients[m.clientCursor], true
}

// newMarkdownRenderer builds the glamour renderer for the detail pane.
// nil is a valid result; the view falls back to plain text.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width < 10 {
		return nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
