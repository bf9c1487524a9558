// Package etym generates the etymologies.json artifact from epithet data.
//
// For every epithet, each of its word segments is looked up in the Kotus
// etymological dictionary. Results are accumulated into etymologies.json,
// which is persisted after each epithet so an interrupted run loses at most
// one epithet's worth of lookups.
package etym

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/corrafig/louskubot/internal/epithets"
	"github.com/corrafig/louskubot/internal/log"
)

// Generator regenerates etymologies.json in a repository working copy.
type Generator struct {
	client    *Client
	overwrite bool
}

// NewGenerator creates a generator. When overwrite is set, words that
// already have an entry are re-fetched instead of skipped.
func NewGenerator(client *Client, overwrite bool) *Generator {
	return &Generator{client: client, overwrite: overwrite}
}

// Update reads the epithets file, resolves missing etymologies and writes
// the etymologies file in dir. The etymologies file is created when absent.
func (g *Generator) Update(ctx context.Context, dir, epithetsFile, etymologiesFile string) error {
	l := log.FromContext(ctx)

	doc, err := epithets.LoadFile(filepath.Join(dir, epithetsFile))
	if err != nil {
		return err
	}

	etymPath := filepath.Join(dir, etymologiesFile)
	etymDoc, err := LoadDocument(etymPath)
	if err != nil {
		return err
	}
	if etymDoc.Etymologies == nil {
		etymDoc.Etymologies = make(map[string]map[string]*Etymology)
	}

	for _, epithet := range doc.Epithets {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := g.updateEpithet(ctx, etymDoc, epithet); err != nil {
			return fmt.Errorf("epithet %q: %w", epithet, err)
		}

		// Persist after each epithet so partial progress survives
		if err := etymDoc.Save(etymPath); err != nil {
			return fmt.Errorf("save %s: %w", etymPath, err)
		}
		l.Debug("updated epithet", "epithet", epithet)
	}

	return nil
}

func (g *Generator) updateEpithet(ctx context.Context, doc *Document, epithet string) error {
	l := log.FromContext(ctx)

	entries := doc.Etymologies[epithet]
	if entries == nil {
		entries = make(map[string]*Etymology)
	}

	for _, word := range epithets.Words(epithets.Clean(epithet)) {
		if _, done := entries[word]; done && !g.overwrite {
			l.Debug("word already resolved", "word", word)
			continue
		}

		l.Printf("Searching word '%s'\n", word)
		etymology, err := g.client.Search(ctx, word)
		if err != nil {
			return err
		}
		if etymology == nil {
			l.Printf("There is no etymology for the word '%s'\n", word)
		}
		entries[word] = etymology
	}

	doc.Etymologies[epithet] = entries
	return nil
}
