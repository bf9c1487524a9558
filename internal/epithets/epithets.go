// Package epithets models the epithets.json artifact.
//
// The file is mirrored verbatim from the upstream repository, so this
// package never rewrites it. Parsing exists for two reasons: the minimal
// schema check before an etymology run, and expanding epithets into the
// word segments that etymologies are looked up for.
package epithets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Document is the top-level structure of epithets.json.
type Document struct {
	Epithets []string `json:"epithets"`
}

// ErrNoEpithets indicates a parsed document without any epithets.
var ErrNoEpithets = errors.New("epithets document contains no epithets")

// Parse decodes and validates an epithets.json payload.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse epithets: %w", err)
	}
	if len(doc.Epithets) == 0 {
		return nil, ErrNoEpithets
	}
	return &doc, nil
}

// LoadFile reads and parses an epithets.json file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// unwantedRunes matches everything outside the Finnish lowercase alphabet,
// spaces and hyphens.
var unwantedRunes = regexp.MustCompile(`[^a-zäåö -]`)

// Clean lowercases an epithet and strips characters that never occur in
// dictionary headwords (digits, punctuation, foreign letters).
func Clean(epithet string) string {
	return unwantedRunes.ReplaceAllString(strings.ToLower(epithet), "")
}

// Words expands a cleaned epithet into the distinct word segments an
// etymology lookup should cover: each space-separated word, plus the parts
// of hyphenated compounds. The result is sorted for deterministic output.
func Words(epithet string) []string {
	set := make(map[string]bool)
	for _, word := range strings.Fields(epithet) {
		set[word] = true
		if strings.Contains(word, "-") {
			for _, part := range strings.Split(word, "-") {
				if part != "" {
					set[part] = true
				}
			}
		}
	}

	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
