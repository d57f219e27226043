package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benaskins/rememberme/internal/watch"
)

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(deps)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if deps.MetadataPath != "" {
		go func() {
			err := watch.File(ctx, deps.MetadataPath, watch.DefaultDebounce, func() {
				program.Send(metadataChangedMsg{})
			})
			if err != nil {
				model.deps.Logger.Warn("live refresh disabled", "error", err)
			}
		}()
	}

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
