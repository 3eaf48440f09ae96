package semantics

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/lexicon.json
var embeddedLexicon embed.FS

// Entry is one category's row in the lexical table.
type Entry struct {
	Name     Category `json:"name"`
	Color    string   `json:"color"`
	Triggers []string `json:"triggers"`
	Variants []string `json:"variants"`
}

type lexiconFile struct {
	Categories []Entry `json:"categories"`
}

// Lexicon is the immutable lexical table. Entry order is the category
// insertion order used for tie-breaking.
type Lexicon struct {
	entries []Entry
	byWord  map[string]Category
	byName  map[Category]*Entry
	words   []string // all trigger words, for prefix scanning
}

// LoadBuiltIn parses the embedded lexicon.
func LoadBuiltIn() (*Lexicon, error) {
	data, err := embeddedLexicon.ReadFile("data/lexicon.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded lexicon: %w", err)
	}
	return parseLexicon(data)
}

func parseLexicon(data []byte) (*Lexicon, error) {
	var file lexiconFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := &Lexicon{
		entries: file.Categories,
		byWord:  make(map[string]Category),
		byName:  make(map[Category]*Entry, len(file.Categories)),
	}

	for i := range lex.entries {
		e := &lex.entries[i]
		if !e.Name.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, e.Name)
		}
		if len(e.Variants) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyVariantPool, e.Name)
		}
		lex.byName[e.Name] = e

		for _, word := range e.Triggers {
			if owner, taken := lex.byWord[word]; taken {
				return nil, fmt.Errorf("%w: %q in %q and %q", ErrDuplicateTrigger, word, owner, e.Name)
			}
			lex.byWord[word] = e.Name
			lex.words = append(lex.words, word)
		}
	}

	if _, ok := lex.byName[CategoryNeutral]; !ok {
		return nil, ErrMissingNeutral
	}

	return lex, nil
}

// Entry returns the table row for a category, or nil if absent.
func (l *Lexicon) Entry(c Category) *Entry {
	return l.byName[c]
}

// Categories returns category names in insertion order.
func (l *Lexicon) Categories() []Category {
	out := make([]Category, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Name
	}
	return out
}

// Color returns the display color for a category (empty if unknown).
func (l *Lexicon) Color(c Category) string {
	if e := l.byName[c]; e != nil {
		return e.Color
	}
	return ""
}

// Variants returns the fixed animation-variant pool for a category.
func (l *Lexicon) Variants(c Category) []string {
	if e := l.byName[c]; e != nil {
		return e.Variants
	}
	return nil
}
