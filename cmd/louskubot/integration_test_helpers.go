//go:build integration

package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corrafig/louskubot/internal/config"
	"github.com/corrafig/louskubot/internal/log"
	"github.com/corrafig/louskubot/internal/output"
	"github.com/spf13/cobra"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGitCommand runs a git command and returns its output.
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

func configureTestRepo(t *testing.T, dir string) {
	t.Helper()
	runGitCommand(t, dir, "config", "user.email", "test@test.com")
	runGitCommand(t, dir, "config", "user.name", "Test User")
	runGitCommand(t, dir, "config", "commit.gpgsign", "false")
}

func commitTestFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	runGitCommand(t, dir, "add", name)
	runGitCommand(t, dir, "commit", "-m", message)
}

// setupUpstreamRepo creates the repository epithets.json is mirrored from.
func setupUpstreamRepo(t *testing.T, epithetsContent string) string {
	t.Helper()
	dir := filepath.Join(resolvePath(t, t.TempDir()), "upstream")
	if out, err := exec.Command("git", "init", "-b", "main", dir).CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}
	configureTestRepo(t, dir)
	commitTestFile(t, dir, "epithets.json", epithetsContent, "Add epithets")
	return dir
}

// setupDataRepoWithOrigin creates a working copy backed by a local bare
// origin, with one initial commit pushed. Returns (repoPath, originPath).
func setupDataRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmp := resolvePath(t, t.TempDir())
	origin := filepath.Join(tmp, "origin.git")
	repo := filepath.Join(tmp, "repo")

	if out, err := exec.Command("git", "init", "--bare", "-b", "main", origin).CombinedOutput(); err != nil {
		t.Fatalf("git init --bare failed: %v\n%s", err, out)
	}
	if out, err := exec.Command("git", "clone", origin, repo).CombinedOutput(); err != nil {
		t.Fatalf("git clone failed: %v\n%s", err, out)
	}
	configureTestRepo(t, repo)
	commitTestFile(t, repo, "README.md", "# data\n", "Initial commit")
	runGitCommand(t, repo, "push", "-u", "origin", "HEAD")

	return repo, origin
}

// testContext builds the context a command would receive from the root's
// PersistentPreRunE, with quiet logging.
func testContext(t *testing.T, cfg *config.Config, workDir string) context.Context {
	t.Helper()
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, true))
	ctx = output.WithPrinter(ctx, os.Stderr)
	ctx = config.WithConfig(ctx, cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	return ctx
}

// executeCommand runs a command with args against the given context.
func executeCommand(t *testing.T, cmd *cobra.Command, ctx context.Context, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.ExecuteContext(ctx)
}

func countCommits(t *testing.T, dir string) int {
	t.Helper()
	out := strings.TrimSpace(runGitCommand(t, dir, "rev-list", "--count", "HEAD"))
	switch out {
	case "":
		return 0
	default:
		n := 0
		for _, c := range out {
			n = n*10 + int(c-'0')
		}
		return n
	}
}

func lastCommitSubject(t *testing.T, dir string) string {
	t.Helper()
	return strings.TrimSpace(runGitCommand(t, dir, "log", "-1", "--format=%s"))
}
