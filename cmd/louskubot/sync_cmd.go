package main

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/log"
	"github.com/corrafig/louskubot/internal/output"
	"github.com/corrafig/louskubot/internal/state"
	"github.com/corrafig/louskubot/internal/sync"
	"github.com/corrafig/louskubot/internal/ui/progress"
	"github.com/corrafig/louskubot/internal/ui/styles"
)

// branchSelector picks which pipeline branches a command runs.
type branchSelector int

const (
	syncBoth branchSelector = iota
	syncEpithetsOnly
	syncEtymologiesOnly
)

func newSyncCmd() *cobra.Command {
	var (
		repoFlag string
		dryRun   bool
		noPush   bool
	)

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Sync both artifacts (epithets, then etymologies)",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Run the full pipeline against a repository working copy.

epithets.json is mirrored from the upstream repository first, including
its commit and push. etymologies.json is then regenerated and committed
the same way. Each file is committed only when its content changed.`,
		Example: `  louskubot sync                   # sync the configured (or current) repo
  louskubot sync --repo ~/data     # sync a specific working copy
  louskubot sync --dry-run         # report what would be committed
  louskubot sync --no-push         # commit locally without pushing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, repoFlag, dryRun, noPush, syncBoth)
		},
	}

	addSyncFlags(cmd, &repoFlag, &dryRun, &noPush)
	return cmd
}

func addSyncFlags(cmd *cobra.Command, repoFlag *string, dryRun, noPush *bool) {
	cmd.Flags().StringVar(repoFlag, "repo", "", "Repository working copy (default: configured repo or current directory)")
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "Refresh artifacts and report changes without committing")
	cmd.Flags().BoolVar(noPush, "no-push", false, "Commit without pushing to origin")
}

func runSync(cmd *cobra.Command, repoFlag string, dryRun, noPush bool, which branchSelector) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	repo := repoFlag
	if repo == "" {
		repo = cfg.RepoPath(config.WorkDirFromContext(ctx))
	}

	p := sync.New(cfg, repo)
	p.DryRun = dryRun
	if noPush {
		p.Push = false
	}

	// Spinner on stderr while the pipeline works. Verbose runs log each
	// git invocation instead, and quiet runs stay silent.
	var sp *progress.Spinner
	if isatty.IsTerminal(os.Stderr.Fd()) && !verbose && !quiet {
		sp = progress.NewSpinner(spinnerMessage(which))
		sp.Start()
	}

	var results []sync.Result
	var runErr error
	switch which {
	case syncEpithetsOnly:
		var r sync.Result
		if r, runErr = p.RunEpithets(ctx); runErr == nil {
			results = append(results, r)
		}
	case syncEtymologiesOnly:
		var r sync.Result
		if r, runErr = p.RunEtymologies(ctx); runErr == nil {
			results = append(results, r)
		}
	default:
		results, runErr = p.Run(ctx)
	}

	if sp != nil {
		sp.Stop()
	}

	if !dryRun {
		recordOutcomes(l, cfg, which, results, runErr)
	}

	for _, r := range results {
		out.Printf("%s  %s\n", r.Artifact, styles.FormatOutcome(r.Changed, r.Pushed, false))
	}
	if runErr != nil {
		out.Printf("%s  %s\n", failedArtifact(cfg, which, results), styles.FormatOutcome(false, false, true))
	}

	return runErr
}

func spinnerMessage(which branchSelector) string {
	switch which {
	case syncEpithetsOnly:
		return "Syncing epithets"
	case syncEtymologiesOnly:
		return "Syncing etymologies"
	default:
		return "Syncing artifacts"
	}
}

// failedArtifact names the artifact whose branch aborted. The pipeline
// returns results only for completed branches, so the failed one is
// whichever comes next.
func failedArtifact(cfg *config.Config, which branchSelector, results []sync.Result) string {
	switch which {
	case syncEpithetsOnly:
		return cfg.EpithetsFile
	case syncEtymologiesOnly:
		return cfg.EtymologiesFile
	default:
		if len(results) == 0 {
			return cfg.EpithetsFile
		}
		return cfg.EtymologiesFile
	}
}

// recordOutcomes persists per-artifact outcomes for `louskubot status`.
// Recording failures are logged, never fatal: the sync already happened.
func recordOutcomes(l *log.Logger, cfg *config.Config, which branchSelector, results []sync.Result, runErr error) {
	path, err := state.Path()
	if err != nil {
		l.Warnf("failed to locate state file: %v", err)
		return
	}
	st, _ := state.Load(path)
	now := time.Now()

	for _, r := range results {
		o := state.Outcome{
			Changed: r.Changed,
			Commit:  r.Commit,
			Pushed:  r.Pushed,
			Ran:     now,
		}
		if err := st.Record(path, r.Artifact, o); err != nil {
			l.Warnf("failed to record state: %v", err)
			return
		}
	}

	if runErr != nil {
		o := state.Outcome{Ran: now, Error: runErr.Error()}
		if err := st.Record(path, failedArtifact(cfg, which, results), o); err != nil {
			l.Warnf("failed to record state: %v", err)
		}
	}
}
