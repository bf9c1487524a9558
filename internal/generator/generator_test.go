package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "epithets.json"), []byte(`{"epithets": ["tammi"]}`), 0644); err != nil {
		t.Fatalf("failed to write epithets: %v", err)
	}
	return dir
}

func TestRun_PromotesValidOutput(t *testing.T) {
	t.Parallel()

	dir := setupArtifacts(t)
	r := New(`echo '{"etymologies": {"tammi": {"tammi": null}}}' > etymologies.json`, time.Minute)

	if err := r.Run(context.Background(), dir, "epithets.json", "etymologies.json"); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "etymologies.json"))
	if err != nil {
		t.Fatalf("promoted file missing: %v", err)
	}
	if !strings.Contains(string(data), `"etymologies"`) {
		t.Errorf("promoted content = %q", data)
	}
}

func TestRun_SeedsStagingWithExistingArtifacts(t *testing.T) {
	t.Parallel()

	dir := setupArtifacts(t)
	if err := os.WriteFile(filepath.Join(dir, "etymologies.json"), []byte(`{"etymologies": {"old": {}}}`), 0644); err != nil {
		t.Fatalf("failed to write etymologies: %v", err)
	}

	// The generator sees the seeded files, not the originals
	r := New(`grep -q tammi epithets.json && grep -q old etymologies.json && `+
		`echo '{"etymologies": {"new": {}}}' > etymologies.json`, time.Minute)

	if err := r.Run(context.Background(), dir, "epithets.json", "etymologies.json"); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "etymologies.json"))
	if err != nil {
		t.Fatalf("promoted file missing: %v", err)
	}
	if !strings.Contains(string(data), `"new"`) {
		t.Errorf("promoted content = %q, want updated document", data)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	t.Parallel()

	dir := setupArtifacts(t)
	r := New("exit 3", time.Minute)

	err := r.Run(context.Background(), dir, "epithets.json", "etymologies.json")
	if err == nil {
		t.Fatal("Run = nil, want error for failing generator")
	}

	// Committed artifact untouched
	if _, err := os.Stat(filepath.Join(dir, "etymologies.json")); !os.IsNotExist(err) {
		t.Error("failing generator should not produce an etymologies file")
	}
}

func TestRun_InvalidOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
	}{
		{"no output file", "true"},
		{"empty file", "> etymologies.json"},
		{"malformed json", "echo '{oops' > etymologies.json"},
		{"missing etymologies key", "echo '{}' > etymologies.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := setupArtifacts(t)
			r := New(tt.command, time.Minute)

			err := r.Run(context.Background(), dir, "epithets.json", "etymologies.json")
			if !errors.Is(err, ErrInvalidOutput) {
				t.Errorf("Run = %v, want ErrInvalidOutput", err)
			}
		})
	}
}

func TestRun_DoesNotClobberOnInvalidOutput(t *testing.T) {
	t.Parallel()

	dir := setupArtifacts(t)
	committed := `{"etymologies": {"tammi": {}}}`
	if err := os.WriteFile(filepath.Join(dir, "etymologies.json"), []byte(committed), 0644); err != nil {
		t.Fatalf("failed to write etymologies: %v", err)
	}

	r := New("echo broken > etymologies.json", time.Minute)
	if err := r.Run(context.Background(), dir, "epithets.json", "etymologies.json"); err == nil {
		t.Fatal("Run = nil, want error")
	}

	data, err := os.ReadFile(filepath.Join(dir, "etymologies.json"))
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(data) != committed {
		t.Errorf("committed artifact was clobbered: %q", data)
	}
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	dir := setupArtifacts(t)
	r := New("sleep 10", 100*time.Millisecond)

	err := r.Run(context.Background(), dir, "epithets.json", "etymologies.json")
	if err == nil {
		t.Fatal("Run = nil, want timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v, want context.DeadlineExceeded", err)
	}
}

func TestRun_MissingEpithets(t *testing.T) {
	t.Parallel()

	r := New("true", time.Minute)
	err := r.Run(context.Background(), t.TempDir(), "epithets.json", "etymologies.json")
	if err == nil {
		t.Error("Run without epithets file = nil, want error")
	}
}
