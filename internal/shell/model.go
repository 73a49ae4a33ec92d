// Package shell is the interactive submit-and-watch surface. It owns the
// per-session UI state (session, execution handle, auto-check flag) and wires
// staging, launching and polling behind a bubbletea event loop: while
// auto-check is on and the execution is non-terminal, a timer tick triggers
// one status check every polling interval.
package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smartfill/internal/domain"
	"smartfill/internal/history"
	"smartfill/internal/poller"
	"smartfill/internal/report"
)

// ---------- styles ----------

var (
	sessionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("40")).
		Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// StatusChecker is the one poller operation the shell needs per tick.
type StatusChecker interface {
	Check(ctx context.Context, handle domain.ExecutionHandle) (domain.Execution, error)
	Interval() time.Duration
}

var _ StatusChecker = (*poller.Poller)(nil)

// Model is the bubbletea model for one submission session.
type Model struct {
	ctx     context.Context
	checker StatusChecker
	hist    history.ReadWriter

	session   domain.Session
	handle    domain.ExecutionHandle
	autoCheck bool

	spinner  spinner.Model
	watching bool
	quitting bool
	err      error
}

// NewModel creates the shell model. The history store may be nil; recording
// is then skipped.
func NewModel(ctx context.Context, checker StatusChecker, hist history.ReadWriter) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{ctx: ctx, checker: checker, hist: hist, spinner: sp}
}

// Err reports the failure the shell quit with, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) pollTickCmd() tea.Cmd {
	return tea.Tick(m.checker.Interval(), func(time.Time) tea.Msg { return pollTickMsg{} })
}

func (m Model) checkCmd() tea.Cmd {
	handle := m.handle
	return func() tea.Msg {
		exec, err := m.checker.Check(m.ctx, handle)
		return checkedMsg{exec: exec, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case spinner.TickMsg:
		if m.watching || m.handle.ARN == "" {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "c":
			// Manual check: only meaningful when automatic checking is off
			// and the execution has not finished.
			if m.handle.ARN != "" && !m.autoCheck && !m.handle.Status.Terminal() {
				m.watching = true
				cmds = append(cmds, m.checkCmd(), m.spinner.Tick)
			}
		}

	case sessionStartedMsg:
		cmds = append(cmds, tea.Println(sessionStyle.Render("Session: "+msg.sessionID)))

	case itemStagedMsg:
		line := fmt.Sprintf("staged %s (%d/%d)", msg.name, msg.done, msg.total)
		cmds = append(cmds, tea.Println(progressStyle.Render(line)))

	case itemFailedMsg:
		line := fmt.Sprintf("⚠ skipped %s: %v", msg.name, msg.err)
		cmds = append(cmds, tea.Println(warnStyle.Render(line)))

	case submitFailedMsg:
		m.err = fmt.Errorf("%s", msg.reason)
		m.quitting = true
		cmds = append(cmds, tea.Println(failStyle.Render(msg.reason)), tea.Quit)

	case launchedMsg:
		m.session = msg.session
		m.handle = msg.handle
		m.autoCheck = true
		m.watching = true
		recordLaunch(m.hist, m.session.ID, m.handle)
		cmds = append(cmds,
			tea.Println(okStyle.Render("Processing pipeline started.")),
			m.pollTickCmd(),
			m.spinner.Tick,
		)

	case pollTickMsg:
		if m.autoCheck && m.handle.ARN != "" && !m.handle.Status.Terminal() {
			cmds = append(cmds, m.checkCmd())
		}

	case checkedMsg:
		return m.handleChecked(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleChecked(msg checkedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Transport failure: automatic polling stops, the true remote status
		// stays unresolved until a manual check succeeds.
		m.autoCheck = false
		m.watching = false
		return m, tea.Println(warnStyle.Render(
			fmt.Sprintf("⚠ status check failed: %v", msg.err)) + "\n" +
			hintStyle.Render("press c to check again, q to quit"))
	}

	prev := m.handle.Status
	m.handle = msg.exec.Handle()

	if !m.handle.Status.Terminal() {
		if m.autoCheck {
			return m, m.pollTickCmd()
		}
		m.watching = false
		return m, tea.Println(progressStyle.Render("Current status: " + string(m.handle.Status)))
	}

	// Terminal: auto-check off, render once and quit. A repeated check that
	// lands here again renders nothing extra.
	m.autoCheck = false
	m.watching = false
	m.quitting = true
	recordStatus(m.hist, msg.exec)
	if prev.Terminal() {
		return m, tea.Quit
	}
	return m, tea.Sequence(tea.Println(RenderOutcome(msg.exec)), tea.Quit)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.watching {
		status := string(m.handle.Status)
		if status == "" {
			status = "staging"
		}
		return m.spinner.View() + progressStyle.Render(" "+status+" - waiting for processing to complete...")
	}
	if m.handle.ARN != "" && !m.handle.Status.Terminal() {
		return hintStyle.Render("automatic checking is off; press c to check status now")
	}
	return m.spinner.View() + progressStyle.Render(" preparing submission...")
}

// RenderOutcome formats the terminal state of an execution: the decoded
// report on success, the error/cause pair on failure.
func RenderOutcome(exec domain.Execution) string {
	switch exec.Status {
	case domain.StatusSucceeded:
		return okStyle.Render("Processing completed successfully!") + "\n" +
			report.Render(report.Decode(exec.Output))
	case domain.StatusFailed:
		return report.RenderFailure(report.DecodeFailure(exec.ErrorCode, exec.Cause))
	default:
		return failStyle.Render("Execution ended: " + string(exec.Status))
	}
}
