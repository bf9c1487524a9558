package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testIdentity = Identity{Name: "LouskuBot", Email: "bot@test.com"}

func TestFetchRefAndCheckoutFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	upstream := setupTestRepo(t)
	commitFile(t, upstream, "epithets.json", `{"epithets": ["kelmeä"]}`+"\n", "Add epithets")

	local := setupTestRepo(t)

	if err := FetchRef(ctx, local, upstream, "main"); err != nil {
		t.Fatalf("FetchRef = %v, want nil", err)
	}
	if err := CheckoutFileFromFetchHead(ctx, local, "epithets.json"); err != nil {
		t.Fatalf("CheckoutFileFromFetchHead = %v, want nil", err)
	}

	data, err := os.ReadFile(filepath.Join(local, "epithets.json"))
	if err != nil {
		t.Fatalf("failed to read checked out file: %v", err)
	}
	if got := string(data); got != `{"epithets": ["kelmeä"]}`+"\n" {
		t.Errorf("checked out content = %q", got)
	}
}

func TestFetchRef_UnreachableRemote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	local := setupTestRepo(t)
	err := FetchRef(ctx, local, filepath.Join(t.TempDir(), "does-not-exist"), "main")
	if err == nil {
		t.Error("FetchRef with missing remote = nil, want error")
	}
}

func TestCheckoutFileFromFetchHead_MissingPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	upstream := setupTestRepo(t)
	local := setupTestRepo(t)

	if err := FetchRef(ctx, local, upstream, "main"); err != nil {
		t.Fatalf("FetchRef = %v, want nil", err)
	}
	if err := CheckoutFileFromFetchHead(ctx, local, "epithets.json"); err == nil {
		t.Error("CheckoutFileFromFetchHead for missing path = nil, want error")
	}
}

func TestStagedFileChanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := setupTestRepo(t)
	commitFile(t, repo, "epithets.json", `{"epithets": []}`+"\n", "Add epithets")

	t.Run("unchanged file", func(t *testing.T) {
		changed, err := StagedFileChanged(ctx, repo, "epithets.json")
		if err != nil {
			t.Fatalf("StagedFileChanged = %v, want nil", err)
		}
		if changed {
			t.Error("StagedFileChanged = true for identical content, want false")
		}
	})

	t.Run("modified and staged", func(t *testing.T) {
		path := filepath.Join(repo, "epithets.json")
		if err := os.WriteFile(path, []byte(`{"epithets": ["uusi"]}`+"\n"), 0644); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if err := StageFile(ctx, repo, "epithets.json"); err != nil {
			t.Fatalf("StageFile = %v, want nil", err)
		}

		changed, err := StagedFileChanged(ctx, repo, "epithets.json")
		if err != nil {
			t.Fatalf("StagedFileChanged = %v, want nil", err)
		}
		if !changed {
			t.Error("StagedFileChanged = false for modified content, want true")
		}

		stat, err := DiffStatCached(ctx, repo, "epithets.json")
		if err != nil {
			t.Fatalf("DiffStatCached = %v, want nil", err)
		}
		if !strings.Contains(stat, "1 file changed") {
			t.Errorf("DiffStatCached = %q, want to contain %q", stat, "1 file changed")
		}
	})
}

func TestCommit_UsesIdentity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := setupTestRepo(t)
	if err := os.WriteFile(filepath.Join(repo, "etymologies.json"), []byte("{}\n"), 0644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if err := StageFile(ctx, repo, "etymologies.json"); err != nil {
		t.Fatalf("StageFile = %v, want nil", err)
	}
	if err := Commit(ctx, repo, testIdentity, "Automated etymology update from GitHub Action", "Source: generator"); err != nil {
		t.Fatalf("Commit = %v, want nil", err)
	}

	out, err := outputGit(ctx, repo, "log", "-1", "--format=%an <%ae>%n%s%n%b")
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "LouskuBot <bot@test.com>") {
		t.Errorf("commit author = %q, want LouskuBot identity", got)
	}
	if !strings.Contains(got, "Automated etymology update from GitHub Action") {
		t.Errorf("commit subject missing from %q", got)
	}
	if !strings.Contains(got, "Source: generator") {
		t.Errorf("commit body missing from %q", got)
	}
}

func TestPushAndAheadCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo, _ := setupTestRepoWithOrigin(t)

	count, err := AheadCount(ctx, repo, "main")
	if err != nil {
		t.Fatalf("AheadCount = %v, want nil", err)
	}
	if count != 0 {
		t.Errorf("AheadCount after push = %d, want 0", count)
	}

	commitFile(t, repo, "epithets.json", `{"epithets": ["a"]}`+"\n", "Add epithets")

	count, err = AheadCount(ctx, repo, "main")
	if err != nil {
		t.Fatalf("AheadCount = %v, want nil", err)
	}
	if count != 1 {
		t.Errorf("AheadCount with local commit = %d, want 1", count)
	}

	if err := Push(ctx, repo); err != nil {
		t.Fatalf("Push = %v, want nil", err)
	}

	count, err = AheadCount(ctx, repo, "main")
	if err != nil {
		t.Fatalf("AheadCount = %v, want nil", err)
	}
	if count != 0 {
		t.Errorf("AheadCount after second push = %d, want 0", count)
	}
}

func TestCurrentBranchAndHeadHash(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := setupTestRepo(t)

	branch, err := CurrentBranch(ctx, repo)
	if err != nil {
		t.Fatalf("CurrentBranch = %v, want nil", err)
	}
	if branch != "main" {
		t.Errorf("CurrentBranch = %q, want %q", branch, "main")
	}

	hash, err := HeadHash(ctx, repo)
	if err != nil {
		t.Fatalf("HeadHash = %v, want nil", err)
	}
	if len(hash) != 40 {
		t.Errorf("HeadHash = %q, want 40-char hash", hash)
	}
}
