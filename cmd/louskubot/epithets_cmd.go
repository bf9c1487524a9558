package main

import (
	"github.com/spf13/cobra"
)

func newEpithetsCmd() *cobra.Command {
	var (
		repoFlag string
		dryRun   bool
		noPush   bool
	)

	cmd := &cobra.Command{
		Use:     "epithets",
		Short:   "Mirror epithets.json from the upstream repository",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Mirror epithets.json from the tip of the upstream repository's
branch into the local working copy, committing and pushing only when
the file content changed. Local edits to the file are overwritten.`,
		Example: `  louskubot epithets
  louskubot epithets --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, repoFlag, dryRun, noPush, syncEpithetsOnly)
		},
	}

	addSyncFlags(cmd, &repoFlag, &dryRun, &noPush)
	return cmd
}
