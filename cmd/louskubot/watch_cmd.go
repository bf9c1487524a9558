package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/log"
)

func newWatchCmd() *cobra.Command {
	var (
		repoFlag string
		noPush   bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Run the sync pipeline on a fixed interval",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Run the full sync pipeline immediately and then on a fixed interval
until interrupted.

A failed run is logged and the loop continues; the next tick starts
from scratch. This mirrors scheduler semantics: no retries within a
run, retry by schedule.`,
		Example: `  louskubot watch                  # use the configured interval (default 24h)
  louskubot watch --interval 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			if interval == 0 {
				interval = cfg.Watch.Interval.Std()
			}

			runOnce := func() {
				if err := runSync(cmd, repoFlag, false, noPush, syncBoth); err != nil {
					l.Warnf("sync failed: %v", err)
				}
			}

			l.Printf("Watching every %s, press Ctrl+C to stop\n", interval)
			runOnce()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					l.Printf("Stopping\n")
					return nil
				case <-ticker.C:
					runOnce()
				}
			}
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository working copy (default: configured repo or current directory)")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "Commit without pushing to origin")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Run interval (default: configured watch.interval)")

	return cmd
}
