package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tagmark/internal/console"
	"tagmark/internal/logging"
	"tagmark/internal/skipcache"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List cached labeling sessions and their skip counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Cache.Enabled {
				fmt.Fprintln(out, "Skip caching is disabled; enable [cache] in the configuration")
				return nil
			}

			cache, err := skipcache.Open(cfg.Cache.Dir, logging.NewNop())
			if err != nil {
				return fmt.Errorf("open skip cache: %w", err)
			}

			names := cache.Sessions()
			if len(names) == 0 {
				fmt.Fprintln(out, "No cached sessions")
				return nil
			}

			rows := make([][]string, 0, len(names))
			for i, name := range names {
				rows = append(rows, []string{strconv.Itoa(i), name, strconv.Itoa(cache.Count(name))})
			}
			fmt.Fprintln(out, console.RenderTable(
				[]string{"#", "Session", "Skipped"},
				rows,
				[]console.Alignment{console.AlignRight, console.AlignLeft, console.AlignRight},
			))
			return nil
		},
	}
}
