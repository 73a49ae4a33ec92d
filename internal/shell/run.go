package shell

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"smartfill/internal/domain"
	"smartfill/internal/history"
	"smartfill/internal/launcher"
	"smartfill/internal/poller"
	"smartfill/internal/stager"
)

// Deps bundles everything a submission needs.
type Deps struct {
	Stager       *stager.Stager
	Launcher     *launcher.Launcher
	Poller       *poller.Poller
	History      history.ReadWriter
	NewSessionID func() string
}

// Input is the user's submission content.
type Input struct {
	Text  string
	Files []stager.File
}

// Run drives a full submission interactively: stage, launch, auto-check
// every polling interval until terminal, render the outcome.
func Run(ctx context.Context, deps Deps, in Input) error {
	p := tea.NewProgram(NewModel(ctx, deps.Poller, deps.History), tea.WithContext(ctx))
	go submit(ctx, p, deps, in)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}

// submit runs the staging and launch steps off the UI loop, reporting
// progress through program messages. Staging always finishes (with per-item
// failures reported) before the launch is attempted.
func submit(ctx context.Context, p *tea.Program, deps Deps, in Input) {
	sessionID := deps.NewSessionID()
	p.Send(sessionStartedMsg{sessionID: sessionID})

	keys, itemErrs := deps.Stager.Stage(ctx, sessionID, in.Text, in.Files, func(done, total int, name string) {
		p.Send(itemStagedMsg{done: done, total: total, name: name})
	})
	for _, ie := range itemErrs {
		p.Send(itemFailedMsg{name: ie.Name, err: ie.Err})
	}
	if len(keys) == 0 {
		p.Send(submitFailedMsg{reason: "no content was successfully uploaded; please try again"})
		return
	}

	handle, err := deps.Launcher.Launch(ctx, sessionID, keys)
	if err != nil {
		p.Send(submitFailedMsg{reason: fmt.Sprintf("error starting pipeline: %v", err)})
		return
	}
	p.Send(launchedMsg{
		session: domain.Session{ID: sessionID, StagedKeys: keys},
		handle:  handle,
	})
}
