package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/etym"
	"github.com/corrafig/louskubot/internal/generator"
	"github.com/corrafig/louskubot/internal/git"
	"github.com/corrafig/louskubot/internal/lock"
	"github.com/corrafig/louskubot/internal/log"
)

// Result describes what one branch of a pipeline run did.
type Result struct {
	Artifact string
	Changed  bool
	Commit   string
	Pushed   bool
}

// Pipeline synchronizes the data artifacts in one repository working copy.
type Pipeline struct {
	cfg *config.Config
	dir string

	// DryRun refreshes artifacts and reports what would be committed,
	// but never commits or pushes.
	DryRun bool
	// Push controls whether commits are pushed to origin. Defaults to
	// the configured value; commands can override it.
	Push bool
	// LockPath overrides the run lock location. Empty means the default
	// per-repository lock under the storage dir.
	LockPath string
}

// New creates a pipeline for the working copy at dir.
func New(cfg *config.Config, dir string) *Pipeline {
	return &Pipeline{
		cfg:  cfg,
		dir:  dir,
		Push: cfg.Commit.Push,
	}
}

// Run executes both branches in order: epithets fully first (including its
// push), then etymologies. The epithet branch's outcome stands even when
// the etymology branch fails.
func (p *Pipeline) Run(ctx context.Context) ([]Result, error) {
	var results []Result

	epithetResult, err := p.RunEpithets(ctx)
	if err != nil {
		return results, err
	}
	results = append(results, epithetResult)

	etymologyResult, err := p.RunEtymologies(ctx)
	if err != nil {
		return results, err
	}
	results = append(results, etymologyResult)

	return results, nil
}

// RunEpithets mirrors the epithets file from the upstream repository and
// commits it when it differs from the committed version.
func (p *Pipeline) RunEpithets(ctx context.Context) (Result, error) {
	l := log.FromContext(ctx)
	file := p.cfg.EpithetsFile

	result, err := p.runBranch(ctx, file, p.cfg.Commit.EpithetSubject, p.cfg.Upstream.URL, func(ctx context.Context) error {
		l.Debug("fetching upstream", "url", p.cfg.Upstream.URL, "branch", p.cfg.Upstream.Branch)
		if err := git.FetchRef(ctx, p.dir, p.cfg.Upstream.URL, p.cfg.Upstream.Branch); err != nil {
			return err
		}
		return git.CheckoutFileFromFetchHead(ctx, p.dir, file)
	})
	if err != nil {
		return result, fmt.Errorf("epithet sync: %w", err)
	}
	return result, nil
}

// RunEtymologies regenerates the etymologies file and commits it when it
// differs from the committed version.
func (p *Pipeline) RunEtymologies(ctx context.Context) (Result, error) {
	file := p.cfg.EtymologiesFile

	result, err := p.runBranch(ctx, file, p.cfg.Commit.EtymologySubject, p.generatorSource(), func(ctx context.Context) error {
		if err := p.regenerate(ctx); err != nil {
			return err
		}
		return git.StageFile(ctx, p.dir, file)
	})
	if err != nil {
		return result, fmt.Errorf("etymology sync: %w", err)
	}
	return result, nil
}

// regenerate refreshes the etymologies file using the configured external
// command, or the built-in Kotus generator when none is configured.
func (p *Pipeline) regenerate(ctx context.Context) error {
	if cmd := p.cfg.Generator.Command; cmd != "" {
		runner := generator.New(cmd, p.cfg.Generator.Timeout.Std())
		return runner.Run(ctx, p.dir, p.cfg.EpithetsFile, p.cfg.EtymologiesFile)
	}

	client := etym.NewClient(
		p.cfg.Kotus.BaseURL,
		p.cfg.Kotus.ArticleBaseURL,
		p.cfg.Kotus.UserAgent,
		p.cfg.Kotus.Timeout.Std(),
	)
	gen := etym.NewGenerator(client, p.cfg.Kotus.OverwriteExisting)
	return gen.Update(ctx, p.dir, p.cfg.EpithetsFile, p.cfg.EtymologiesFile)
}

func (p *Pipeline) generatorSource() string {
	if p.cfg.Generator.Command != "" {
		return "generator: " + p.cfg.Generator.Command
	}
	return p.cfg.Kotus.BaseURL
}

// runBranch is the shared refresh-stage-diff-commit-push sequence. The
// refresh callback must leave the artifact staged.
func (p *Pipeline) runBranch(ctx context.Context, file, subject, source string, refresh func(context.Context) error) (Result, error) {
	l := log.FromContext(ctx)
	result := Result{Artifact: file}

	if !git.IsInsideRepoPath(ctx, p.dir) {
		return result, fmt.Errorf("%s is not a git repository", p.dir)
	}

	runLock, err := p.runLock()
	if err != nil {
		return result, err
	}
	if err := runLock.TryLock(); err != nil {
		return result, err
	}
	defer runLock.Unlock()

	if err := refresh(ctx); err != nil {
		return result, err
	}

	changed, err := git.StagedFileChanged(ctx, p.dir, file)
	if err != nil {
		return result, err
	}
	result.Changed = changed

	if !changed {
		l.Printf("%s is up to date\n", file)
		return result, p.pushIfBehind(ctx, &result)
	}

	stat, err := git.DiffStatCached(ctx, p.dir, file)
	if err != nil {
		return result, err
	}

	if p.DryRun {
		l.Printf("Would commit %s (%s)\n", file, stat)
		return result, nil
	}

	ident := git.Identity{Name: p.cfg.Identity.Name, Email: p.cfg.Identity.Email}
	body := commitBody(source, stat, time.Now())
	if err := git.Commit(ctx, p.dir, ident, subject, body); err != nil {
		return result, err
	}

	hash, err := git.HeadHash(ctx, p.dir)
	if err != nil {
		return result, err
	}
	result.Commit = hash
	l.Printf("Committed %s (%s)\n", file, stat)

	if !p.Push {
		return result, nil
	}
	if err := git.Push(ctx, p.dir); err != nil {
		return result, err
	}
	result.Pushed = true

	return result, nil
}

func (p *Pipeline) runLock() (*lock.RunLock, error) {
	if p.LockPath != "" {
		return lock.New(p.LockPath), nil
	}
	return lock.ForRepo(p.dir)
}

// pushIfBehind pushes when a previous run committed but failed to push.
// Without this, a commit stranded by a push failure would never reach
// origin, because later runs see no staged changes.
func (p *Pipeline) pushIfBehind(ctx context.Context, result *Result) error {
	if !p.Push || p.DryRun {
		return nil
	}

	branch, err := git.CurrentBranch(ctx, p.dir)
	if err != nil {
		return err
	}
	ahead, err := git.AheadCount(ctx, p.dir, branch)
	if err != nil {
		return err
	}
	if ahead == 0 {
		return nil
	}

	log.FromContext(ctx).Printf("Pushing %d unpushed commit(s)\n", ahead)
	if err := git.Push(ctx, p.dir); err != nil {
		return err
	}
	result.Pushed = true
	return nil
}
