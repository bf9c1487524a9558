package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CurrentBranch returns the current branch name
// Returns "(detached)" for detached HEAD state
func CurrentBranch(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %v", err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// HeadHash returns the full hash of the current HEAD commit
func HeadHash(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// OriginURL returns the URL of the origin remote
func OriginURL(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("not in a git repository or no origin remote: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// AheadCount returns the number of commits on HEAD that are not on
// origin/<branch>. Returns 0 if the remote branch does not exist yet.
func AheadCount(ctx context.Context, path, branch string) (int, error) {
	if err := runGit(ctx, path, "rev-parse", "--verify", "--quiet", "origin/"+branch); err != nil {
		return 0, nil
	}
	output, err := outputGit(ctx, path, "rev-list", "--count", fmt.Sprintf("origin/%s..HEAD", branch))
	if err != nil {
		return 0, fmt.Errorf("failed to count unpushed commits: %v", err)
	}
	return strconv.Atoi(strings.TrimSpace(string(output)))
}
