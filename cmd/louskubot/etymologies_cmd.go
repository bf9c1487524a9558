package main

import (
	"github.com/spf13/cobra"
)

func newEtymologiesCmd() *cobra.Command {
	var (
		repoFlag string
		dryRun   bool
		noPush   bool
	)

	cmd := &cobra.Command{
		Use:     "etymologies",
		Short:   "Regenerate etymologies.json and commit the result",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Regenerate etymologies.json and commit it when the content changed.

With an empty [generator] command the built-in generator queries the
Kotus etymological dictionary for every word of every epithet, skipping
words that already have an entry. With a configured command, that
command is run in a staging copy and its output validated before being
promoted.`,
		Example: `  louskubot etymologies
  louskubot etymologies --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, repoFlag, dryRun, noPush, syncEtymologiesOnly)
		},
	}

	addSyncFlags(cmd, &repoFlag, &dryRun, &noPush)
	return cmd
}
