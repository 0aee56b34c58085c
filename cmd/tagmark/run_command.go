package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tagmark/internal/config"
	"tagmark/internal/console"
	"tagmark/internal/dataset"
	"tagmark/internal/logging"
	"tagmark/internal/session"
	"tagmark/internal/skipcache"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var sessionFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive labeling session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runLabeling(cmd, cfg, sessionFlag)
		},
	}

	cmd.Flags().StringVarP(&sessionFlag, "session", "s", "", "Cache session to resume or create")
	return cmd
}

func runLabeling(cmd *cobra.Command, cfg *config.Config, sessionFlag string) error {
	logger, err := logging.New(logging.Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		FilePath: cfg.Logging.FilePath,
		Writer:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	printer := console.NewPrinter(cmd.OutOrStdout())
	lines := session.NewLineReader(cmd.InOrStdin())

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	unmarked, err := dataset.Load(cfg.Dataset.UnmarkedPath)
	if err != nil {
		return fmt.Errorf("load unmarked table: %w", err)
	}

	sessionName := strings.TrimSpace(sessionFlag)
	if sessionName == "" {
		sessionName = cfg.Cache.Session
	}

	var cache *skipcache.Cache
	if cfg.Cache.Enabled {
		cache, err = skipcache.Open(cfg.Cache.Dir, logger)
		if err != nil {
			return fmt.Errorf("open skip cache: %w", err)
		}
		if sessionName == "" {
			sessionName, err = session.ChooseSession(runCtx, cache, lines, printer)
			if err != nil {
				return err
			}
		}
	}

	sess, err := session.New(unmarked, session.Options{
		Labels:         cfg.Labels,
		IDColumn:       cfg.Dataset.IDColumn,
		TextColumn:     cfg.Dataset.TextColumn,
		LabelColumn:    cfg.Dataset.LabelColumn,
		ShowColumns:    cfg.Dataset.ShowColumns,
		ShowChars:      cfg.Display.ShowChars,
		SelectLabel:    cfg.Dataset.SelectLabel,
		Controls: session.Controls{
			Skip: cfg.Controls.Skip,
			Back: cfg.Controls.Back,
			More: cfg.Controls.More,
		},
		MarkedPath:     cfg.Dataset.MarkedPath,
		WriteMeta:      cfg.Metadata.Enabled,
		MetaPrefix:     cfg.Metadata.Prefix,
		Cache:          cache,
		SessionName:    sessionName,
		SessionMinutes: cfg.Timing.SessionMinutes,
		BreakMinutes:   cfg.Timing.BreakMinutes,
		Lines:          lines,
		Printer:        printer,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	return sess.Run(runCtx)
}
