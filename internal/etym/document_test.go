package etym

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		doc, err := ParseDocument([]byte(`{"etymologies": {"tammi": {"tammi": {"definition": "puulaji", "url": "u"}}}}`))
		if err != nil {
			t.Fatalf("ParseDocument = %v, want nil", err)
		}
		if doc.Etymologies["tammi"]["tammi"].Definition != "puulaji" {
			t.Error("parsed document missing entry")
		}
	})

	t.Run("null entry preserved", func(t *testing.T) {
		t.Parallel()
		doc, err := ParseDocument([]byte(`{"etymologies": {"x": {"x": null}}}`))
		if err != nil {
			t.Fatalf("ParseDocument = %v, want nil", err)
		}
		entry, ok := doc.Etymologies["x"]["x"]
		if !ok {
			t.Fatal("null entry should be present in map")
		}
		if entry != nil {
			t.Errorf("entry = %+v, want nil", entry)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()
		_, err := ParseDocument([]byte("  \n"))
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("ParseDocument = %v, want ErrEmptyDocument", err)
		}
	})

	t.Run("missing etymologies key", func(t *testing.T) {
		t.Parallel()
		_, err := ParseDocument([]byte(`{}`))
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("ParseDocument = %v, want ErrEmptyDocument", err)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Etymologies: map[string]map[string]*Etymology{
			"tammi": {
				"tammi": {Definition: "puulaji & kuukausi", URL: "https://example.com/?a=1&b=2"},
			},
		},
	}

	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode = %v, want nil", err)
	}
	got := string(data)

	if !strings.Contains(got, "  \"etymologies\"") {
		t.Errorf("Encode output not indented:\n%s", got)
	}
	// HTML escaping is off so ampersands survive verbatim
	if !strings.Contains(got, "puulaji & kuukausi") {
		t.Errorf("Encode escaped text:\n%s", got)
	}
	if !strings.Contains(got, "?a=1&b=2") {
		t.Errorf("Encode escaped URL:\n%s", got)
	}
}

func TestSaveAndLoadDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "etymologies.json")

	doc := &Document{
		Etymologies: map[string]map[string]*Etymology{
			"kelmeä": {
				"kelmeä": {Definition: "kalpea", URL: "u"},
				"outo":   nil,
			},
		},
	}
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save = %v, want nil", err)
	}

	loaded, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument = %v, want nil", err)
	}
	if loaded.Etymologies["kelmeä"]["kelmeä"].Definition != "kalpea" {
		t.Error("loaded document missing entry")
	}
	if entry, ok := loaded.Etymologies["kelmeä"]["outo"]; !ok || entry != nil {
		t.Error("null entry not preserved through save/load")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestLoadDocument_Missing(t *testing.T) {
	t.Parallel()

	doc, err := LoadDocument(filepath.Join(t.TempDir(), "etymologies.json"))
	if err != nil {
		t.Fatalf("LoadDocument = %v, want nil for missing file", err)
	}
	if doc.Etymologies == nil {
		t.Error("missing file should yield an initialized document")
	}
}
