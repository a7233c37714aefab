package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kingrea/doclog/internal/config"
	"github.com/kingrea/doclog/internal/logging"
	"github.com/kingrea/doclog/internal/session"
	"github.com/kingrea/doclog/internal/store"
)

// runSession is swapped out in tests.
var runSession = session.Run

func newRootCmd() *cobra.Command {
	var docFile string
	cmd := &cobra.Command{
		Use:   "doclog",
		Short: "DocLog is a simple tool for storing documents by subject and operating system",
		Long: `DocLog is a simple tool for storing documents by subject and operating system.

Documents are filed either under an operating system and a category, or
under an application and a category. Pick a section, pick or add an entry at
each level, then read or edit the document. Press Ctrl-G to finish editing
and 'q' in the document view to quit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), docFile)
		},
	}
	cmd.Flags().StringVar(&docFile, "docfile", "", "The location to store/retrieve document logs (default "+config.DefaultDocFile+")")
	return cmd
}

func run(ctx context.Context, docFlag string) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	docFile, err := cfg.ResolveDocFile(docFlag)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	logger.Info("doclog starting", zap.String("docfile", docFile))

	err = runSession(ctx, session.Options{
		DocFile:      docFile,
		Logger:       logger,
		EditorWidth:  cfg.Editor.Width,
		EditorHeight: cfg.Editor.Height,
	})
	switch {
	case errors.Is(err, store.ErrCorruptState):
		return fmt.Errorf("%w\nthe document file could not be read; move it aside or pass --docfile", err)
	case err != nil:
		return err
	}
	logger.Info("doclog finished")
	return nil
}
