package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "state.json")
	in := sample{Name: "epithets.json", Count: 2}

	if err := SaveJSON(path, in); err != nil {
		t.Fatalf("SaveJSON = %v, want nil", err)
	}

	var out sample
	if err := LoadJSON(path, &out); err != nil {
		t.Fatalf("LoadJSON = %v, want nil", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	// No temp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up by rename")
	}
}

func TestLoadJSON_Missing(t *testing.T) {
	t.Parallel()

	var out sample
	err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadJSON = %v, want os.ErrNotExist", err)
	}
}
