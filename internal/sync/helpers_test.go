package sync

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/corrafig/louskubot/internal/config"
)

// gitRun executes a git command in dir, failing the test on error.
func gitRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

func configureRepo(t *testing.T, dir string) {
	t.Helper()
	gitRun(t, dir, "config", "user.email", "test@test.com")
	gitRun(t, dir, "config", "user.name", "Test User")
	gitRun(t, dir, "config", "commit.gpgsign", "false")
}

// commitFile writes content to name in dir and commits it.
func commitFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	gitRun(t, dir, "add", name)
	gitRun(t, dir, "commit", "-m", message)
}

// setupUpstream creates the repository that epithets.json is mirrored from.
func setupUpstream(t *testing.T, epithetsContent string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "upstream")
	if out, err := exec.Command("git", "init", "-b", "main", dir).CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}
	configureRepo(t, dir)
	commitFile(t, dir, "epithets.json", epithetsContent, "Add epithets")
	return dir
}

// setupDataRepo creates the local working copy with a bare origin remote
// and an initial commit. Returns (repoPath, originPath).
func setupDataRepo(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	origin := filepath.Join(tmp, "origin.git")
	repo := filepath.Join(tmp, "repo")

	if out, err := exec.Command("git", "init", "--bare", "-b", "main", origin).CombinedOutput(); err != nil {
		t.Fatalf("git init --bare failed: %v\n%s", err, out)
	}
	if out, err := exec.Command("git", "clone", origin, repo).CombinedOutput(); err != nil {
		t.Fatalf("git clone failed: %v\n%s", err, out)
	}
	configureRepo(t, repo)
	commitFile(t, repo, "README.md", "# data\n", "Initial commit")
	gitRun(t, repo, "push", "-u", "origin", "HEAD")

	return repo, origin
}

// testConfig returns a config pointing at the given upstream, with pushes
// enabled and everything else at defaults.
func testConfig(upstream string) *config.Config {
	cfg := config.Default()
	cfg.Upstream.URL = upstream
	cfg.Upstream.Branch = "main"
	return &cfg
}

// testPipeline creates a pipeline whose run lock lives in a temp dir so
// tests never touch the real storage dir.
func testPipeline(t *testing.T, cfg *config.Config, repo string) *Pipeline {
	t.Helper()
	p := New(cfg, repo)
	p.LockPath = filepath.Join(t.TempDir(), "sync.lock")
	return p
}

// commitCount returns the number of commits in dir.
func commitCount(t *testing.T, dir string) int {
	t.Helper()
	out := strings.TrimSpace(gitRun(t, dir, "rev-list", "--count", "HEAD"))
	n, err := strconv.Atoi(out)
	if err != nil {
		t.Fatalf("bad rev-list output %q: %v", out, err)
	}
	return n
}

// lastSubject returns the subject of the most recent commit in dir.
func lastSubject(t *testing.T, dir string) string {
	t.Helper()
	return strings.TrimSpace(gitRun(t, dir, "log", "-1", "--format=%s"))
}

// lastBody returns the body of the most recent commit in dir.
func lastBody(t *testing.T, dir string) string {
	t.Helper()
	return strings.TrimSpace(gitRun(t, dir, "log", "-1", "--format=%b"))
}

// originHead returns the tip hash of the origin's main branch.
func originHead(t *testing.T, origin string) string {
	t.Helper()
	return strings.TrimSpace(gitRun(t, origin, "rev-parse", "refs/heads/main"))
}

// readFile returns the content of name inside dir.
func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}
