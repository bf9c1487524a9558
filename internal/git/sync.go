package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/corrafig/louskubot/internal/cmd"
)

// Identity is the commit author/committer identity used for automated
// commits. It is passed per-command via -c so the repository's own git
// config is left untouched.
type Identity struct {
	Name  string
	Email string
}

// FetchRef fetches the given ref from a remote URL into FETCH_HEAD.
func FetchRef(ctx context.Context, dir, url, ref string) error {
	if err := runGit(ctx, dir, "fetch", "--quiet", url, ref); err != nil {
		return fmt.Errorf("fetch %s %s: %w", url, ref, err)
	}
	return nil
}

// CheckoutFileFromFetchHead extracts a single path from the most recently
// fetched tree into the working copy and index.
func CheckoutFileFromFetchHead(ctx context.Context, dir, path string) error {
	if err := runGit(ctx, dir, "checkout", "FETCH_HEAD", "--", path); err != nil {
		return fmt.Errorf("checkout %s from FETCH_HEAD: %w", path, err)
	}
	return nil
}

// StageFile adds the given path to the index.
func StageFile(ctx context.Context, dir, path string) error {
	if err := runGit(ctx, dir, "add", "--", path); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	return nil
}

// StagedFileChanged reports whether the staged version of path differs from
// HEAD. Uses `git diff --cached --quiet`, which exits 1 on differences.
func StagedFileChanged(ctx context.Context, dir, path string) (bool, error) {
	err := runGit(ctx, dir, "diff", "--cached", "--quiet", "--", path)
	if err == nil {
		return false, nil
	}
	if cmd.ExitCode(err) == 1 {
		return true, nil
	}
	return false, fmt.Errorf("diff %s against index: %w", path, err)
}

// DiffStatCached returns a one-line diffstat summary of the staged changes
// to path, e.g. "1 file changed, 3 insertions(+), 1 deletion(-)".
// Returns an empty string when there are no staged changes.
func DiffStatCached(ctx context.Context, dir, path string) (string, error) {
	output, err := outputGit(ctx, dir, "diff", "--cached", "--shortstat", "--", path)
	if err != nil {
		return "", fmt.Errorf("diffstat %s: %w", path, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Commit records the staged changes with the given identity, subject and
// optional body paragraph.
func Commit(ctx context.Context, dir string, ident Identity, subject, body string) error {
	args := []string{
		"-c", "user.name=" + ident.Name,
		"-c", "user.email=" + ident.Email,
		"commit", "-m", subject,
	}
	if body != "" {
		args = append(args, "-m", body)
	}
	if err := runGit(ctx, dir, args...); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Push pushes the current branch to the origin remote.
func Push(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "push", "--quiet", "origin", "HEAD"); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	return nil
}
