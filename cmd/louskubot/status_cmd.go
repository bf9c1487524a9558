package main

import (
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/git"
	"github.com/corrafig/louskubot/internal/output"
	"github.com/corrafig/louskubot/internal/state"
	"github.com/corrafig/louskubot/internal/ui/styles"
)

func newStatusCmd() *cobra.Command {
	var repoFlag string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the outcome of the last sync run",
		GroupID: GroupData,
		Args:    cobra.NoArgs,
		Long: `Show the recorded outcome of the most recent sync run per artifact,
plus whether the working copy has unpushed commits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			path, err := state.Path()
			if err != nil {
				return err
			}
			st, err := state.Load(path)
			if err != nil {
				return err
			}

			if len(st.Artifacts) == 0 {
				out.Println("No recorded sync runs yet")
			}

			names := make([]string, 0, len(st.Artifacts))
			for name := range st.Artifacts {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				o := st.Artifacts[name]
				out.Printf("%s %s\n", styles.OutcomeSymbol(o.Changed, o.Error != ""), name)
				out.Printf("    last run: %s\n", o.Ran.Local().Format(time.RFC3339))
				switch {
				case o.Error != "":
					out.Printf("    error: %s\n", o.Error)
				case o.Commit != "":
					out.Printf("    commit: %s (pushed: %v)\n", shortHash(o.Commit), o.Pushed)
				default:
					out.Printf("    no change\n")
				}
			}

			repo := repoFlag
			if repo == "" {
				repo = cfg.RepoPath(config.WorkDirFromContext(ctx))
			}
			if git.IsInsideRepoPath(ctx, repo) {
				branch, err := git.CurrentBranch(ctx, repo)
				if err != nil {
					return err
				}
				ahead, err := git.AheadCount(ctx, repo, branch)
				if err != nil {
					return err
				}
				if ahead > 0 {
					out.Printf("\n%s: %d unpushed commit(s) on %s\n", repo, ahead, branch)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository working copy (default: configured repo or current directory)")

	return cmd
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
