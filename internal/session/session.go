// Package session is the outermost scope of a DocLog run: it loads the
// store, hands the terminal to the UI, and persists the store once the UI
// lets go of it, however the UI ended.
package session

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrea/doclog/internal/navigator"
	"github.com/kingrea/doclog/internal/store"
	"github.com/kingrea/doclog/internal/tui"
)

// Runner drives a bubbletea model until it quits.
type Runner func(ctx context.Context, model tea.Model) error

// Options configures a session.
type Options struct {
	DocFile      string
	Logger       *zap.Logger
	EditorWidth  int
	EditorHeight int

	// Runner defaults to a full-screen bubbletea program.
	Runner Runner
}

// Run executes one session. The store is persisted even when the UI was
// interrupted or failed; a persist failure is joined with any UI error.
func Run(ctx context.Context, opts Options) (err error) {
	if opts.DocFile == "" {
		return fmt.Errorf("session: document file is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session", uuid.NewString()))
	runner := opts.Runner
	if runner == nil {
		runner = RunProgram
	}

	docs, err := store.Load(opts.DocFile)
	if err != nil {
		logger.Error("load failed", zap.String("path", opts.DocFile), zap.Error(err))
		return err
	}
	logger.Info("store loaded",
		zap.String("path", opts.DocFile),
		zap.Int("oses", len(docs.ListOS())),
		zap.Int("apps", len(docs.ListApps())),
	)

	defer func() {
		if perr := docs.Persist(opts.DocFile); perr != nil {
			logger.Error("persist failed", zap.String("path", opts.DocFile), zap.Error(perr))
			err = errors.Join(err, perr)
			return
		}
		logger.Info("store persisted", zap.String("path", opts.DocFile))
	}()

	nav := navigator.New(docs, navigator.WithLogger(logger))
	app := tui.NewApp(nav,
		tui.WithEditorSize(opts.EditorWidth, opts.EditorHeight),
		tui.WithLogger(logger),
	)
	if err := runner(ctx, app); err != nil {
		if isInterrupt(err) {
			logger.Info("session interrupted")
			return nil
		}
		return fmt.Errorf("session: %w", err)
	}
	if err := app.Err(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	logger.Info("session finished", zap.Bool("interrupted", app.Interrupted()))
	return nil
}

// RunProgram runs model as a full-screen bubbletea program bound to ctx.
func RunProgram(ctx context.Context, model tea.Model) error {
	p := tea.NewProgram(model,
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func isInterrupt(err error) bool {
	return errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, tea.ErrInterrupted) ||
		errors.Is(err, context.Canceled)
}
