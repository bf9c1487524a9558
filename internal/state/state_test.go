package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	s := &State{}
	outcome := Outcome{
		Changed: true,
		Commit:  "abc123",
		Pushed:  true,
		Ran:     time.Date(2026, 8, 24, 6, 0, 0, 0, time.UTC),
	}
	if err := s.Record(path, "epithets.json", outcome); err != nil {
		t.Fatalf("Record = %v, want nil", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load = %v, want nil", err)
	}
	got, ok := loaded.Artifacts["epithets.json"]
	if !ok {
		t.Fatal("loaded state missing epithets.json outcome")
	}
	if got.Commit != "abc123" || !got.Changed || !got.Pushed {
		t.Errorf("outcome = %+v, want %+v", got, outcome)
	}
	if !got.Ran.Equal(outcome.Ran) {
		t.Errorf("Ran = %v, want %v", got.Ran, outcome.Ran)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load = %v, want nil for missing file", err)
	}
	if len(s.Artifacts) != 0 {
		t.Errorf("Artifacts = %v, want empty", s.Artifacts)
	}
}

func TestLoad_Corrupted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load = %v, want nil for corrupted file", err)
	}
	if len(s.Artifacts) != 0 {
		t.Errorf("Artifacts = %v, want empty after corruption", s.Artifacts)
	}
}
