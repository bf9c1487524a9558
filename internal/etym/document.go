package etym

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Document is the top-level structure of etymologies.json: one map of word
// etymologies per epithet. A nil entry records that a word has no match in
// the dictionary, so it is not retried on the next run.
type Document struct {
	Etymologies map[string]map[string]*Etymology `json:"etymologies"`
}

// ErrEmptyDocument indicates a document without the etymologies key or with
// no content at all.
var ErrEmptyDocument = errors.New("etymologies document is empty")

// ParseDocument decodes and validates an etymologies.json payload.
func ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse etymologies: %w", err)
	}
	if doc.Etymologies == nil {
		return nil, ErrEmptyDocument
	}
	return &doc, nil
}

// LoadDocument reads etymologies.json from path. A missing file yields an
// empty document so the first generator run starts from scratch.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{Etymologies: make(map[string]map[string]*Etymology)}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode renders the document the way the artifact is committed: two-space
// indentation, no HTML escaping so Finnish text and URLs stay readable,
// map keys sorted by encoding/json.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save atomically writes the document to path.
func (d *Document) Save(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}
