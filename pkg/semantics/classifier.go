package semantics

import (
	"math/rand"
	"strings"
	"sync"
	"unicode"

	"github.com/visagelabs/go-visage/internal/log"
)

// Match weights: exact word hits count full, lexicon entries that are a
// proper prefix of a token count half. The prefix rule picks up compound
// and inflected forms ("joyful", "loving") without a stemmer.
const (
	exactWeight  = 1.0
	prefixWeight = 0.5
)

// Classifier scores utterances against the lexical table and records the
// winning category in a bounded history.
type Classifier struct {
	lex     *Lexicon
	history *History

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifier creates a classifier over the given lexicon.
func NewClassifier(lex *Lexicon) *Classifier {
	return &Classifier{
		lex:     lex,
		history: NewHistory(),
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// Classify scores an utterance and returns the winning category plus an
// animation variant drawn from that category's pool. Empty or
// whitespace-only input yields neutral without touching the history.
func (c *Classifier) Classify(utterance string) (Category, string) {
	tokens := Tokenize(utterance)
	if len(tokens) == 0 {
		return CategoryNeutral, c.pickVariant(CategoryNeutral)
	}

	scores := make(map[Category]float64)
	for _, token := range tokens {
		if cat, ok := c.lex.byWord[token]; ok {
			scores[cat] += exactWeight
		}
		for _, word := range c.lex.words {
			if len(word) < len(token) && strings.HasPrefix(token, word) {
				scores[c.lex.byWord[word]] += prefixWeight
			}
		}
	}

	// Strictly highest score wins; ties resolve to the first-seen
	// category in table insertion order.
	winner := CategoryNeutral
	best := 0.0
	for _, cat := range c.lex.Categories() {
		if s := scores[cat]; s > best {
			best = s
			winner = cat
		}
	}

	variant := c.pickVariant(winner)
	rec := c.history.Push(winner, variant)
	log.Debug("classified utterance",
		"category", winner, "variant", variant, "score", best, "record", rec.ID)

	return winner, variant
}

// History exposes the classification history.
func (c *Classifier) History() *History {
	return c.history
}

// Lexicon exposes the underlying lexical table.
func (c *Classifier) Lexicon() *Lexicon {
	return c.lex
}

// pickVariant draws pseudo-randomly from the category's fixed pool.
// Reproducibility is decorative here; membership in the pool is not.
func (c *Classifier) pickVariant(cat Category) string {
	pool := c.lex.Variants(cat)
	if len(pool) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return pool[c.rng.Intn(len(pool))]
}

// Tokenize lowercases the utterance and splits it into words stripped of
// punctuation. Tokens that end up empty are dropped.
func Tokenize(utterance string) []string {
	fields := strings.FieldsFunc(strings.ToLower(utterance), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
