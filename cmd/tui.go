package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/presetx/internal/shared"
	"github.com/desertthunder/presetx/internal/store"
	"github.com/desertthunder/presetx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for preset management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.presets == nil {
		return fmt.Errorf("%w: preset service not initialized", shared.ErrServiceUnavailable)
	}
	if !r.isTerminal() {
		return fmt.Errorf("%w: run 'presetx tui' from a terminal", shared.ErrNotATerminal)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.config.Log.LogLevel())
	r.SetLogger(fileLogger)

	presets := store.New(r.presets, fileLogger)
	model := ui.NewModel(ctx, presets)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
