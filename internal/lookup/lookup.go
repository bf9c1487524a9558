// Package lookup provides fuzzy search over resolved etymology entries.
package lookup

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/corrafig/louskubot/internal/etym"
)

// Entry is one word of one epithet, with its resolved etymology.
// Etymology is nil when the dictionary has no entry for the word.
type Entry struct {
	Epithet   string
	Word      string
	Etymology *etym.Etymology
}

// Label is the string the entry is matched and displayed by.
func (e Entry) Label() string {
	if e.Epithet == e.Word {
		return e.Word
	}
	return e.Epithet + " / " + e.Word
}

// entrySource implements fuzzy.Source for entries.
type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Label() }
func (s entrySource) Len() int            { return len(s) }

// Index holds a flattened, sorted view of an etymologies document.
type Index struct {
	entries []Entry
}

// NewIndex flattens doc into a searchable index, sorted by epithet and word.
func NewIndex(doc *etym.Document) *Index {
	var entries []Entry
	for epithet, words := range doc.Etymologies {
		for word, etymology := range words {
			entries = append(entries, Entry{
				Epithet:   epithet,
				Word:      word,
				Etymology: etymology,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Epithet != entries[j].Epithet {
			return entries[i].Epithet < entries[j].Epithet
		}
		return entries[i].Word < entries[j].Word
	})
	return &Index{entries: entries}
}

// Len returns the number of entries in the index.
func (ix *Index) Len() int { return len(ix.entries) }

// All returns every entry in index order.
func (ix *Index) All() []Entry {
	return append([]Entry(nil), ix.entries...)
}

// Search returns entries matching query, best match first. An empty query
// returns all entries.
func (ix *Index) Search(query string) []Entry {
	if query == "" {
		return ix.All()
	}
	matches := fuzzy.FindFrom(query, entrySource(ix.entries))
	results := make([]Entry, 0, len(matches))
	for _, m := range matches {
		results = append(results, ix.entries[m.Index])
	}
	return results
}
