package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"github.com/keywordmaster/keywordmaster/internal/session"
	"go.uber.org/zap"
)

// Run starts the interactive application and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, ctrl *session.Controller, opts Options) error {
	updates, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	model := NewAppModel(ctx, ctrl, opts)
	model.Subscribe(updates)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	ctrl.SetResultsReadyHook(func() { p.Send(resultsReadyMsg{}) })
	defer ctrl.SetResultsReadyHook(nil)

	logging.Debug("Starting interactive session", zap.String("export_dir", opts.ExportDir))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
