package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/subdeck/internal/shared"
	"github.com/desertthunder/subdeck/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for subscription management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(ctx); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/subdeck-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.service)
	p := tea.NewProgram(model)

	cancel := r.watchSession(ctx, p)
	defer cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// watchSession starts the periodic revalidation loop for the duration of the
// TUI and routes a dead token into the running program, sending the user
// back to login instead of leaving a stale list on screen.
func (r *Runner) watchSession(ctx context.Context, p *tea.Program) context.CancelFunc {
	r.engine.OnExpired = func() {
		p.Send(ui.SessionExpiredMsg{})
	}

	validateCtx, cancel := context.WithCancel(ctx)
	r.engine.StartValidation(validateCtx)
	return cancel
}
