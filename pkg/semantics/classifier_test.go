package semantics

import (
	"testing"
)

func mustLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := LoadBuiltIn()
	if err != nil {
		t.Fatalf("LoadBuiltIn failed: %v", err)
	}
	return lex
}

func TestLoadBuiltIn(t *testing.T) {
	lex := mustLexicon(t)

	cats := lex.Categories()
	if len(cats) != 11 {
		t.Errorf("Expected 11 categories, got %d", len(cats))
	}

	for _, cat := range cats {
		if !cat.Valid() {
			t.Errorf("Category %q outside the closed set", cat)
		}
		if len(lex.Variants(cat)) == 0 {
			t.Errorf("Category %q has an empty variant pool", cat)
		}
		if lex.Color(cat) == "" {
			t.Errorf("Category %q has no display color", cat)
		}
	}
}

func TestParseLexiconRejectsBadTables(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"unknown category", `{"categories":[{"name":"smug","triggers":["x"],"variants":["v"]}]}`},
		{"empty variants", `{"categories":[{"name":"joy","triggers":["x"],"variants":[]}]}`},
		{"duplicate trigger", `{"categories":[{"name":"joy","triggers":["x"],"variants":["v"]},{"name":"neutral","triggers":["x"],"variants":["v"]}]}`},
		{"missing neutral", `{"categories":[{"name":"joy","triggers":["x"],"variants":["v"]}]}`},
	}

	for _, c := range cases {
		if _, err := parseLexicon([]byte(c.json)); err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
		}
	}
}

func TestClassifyJoy(t *testing.T) {
	c := NewClassifier(mustLexicon(t))

	cat, variant := c.Classify("I am so happy and joyful today")
	if cat != CategoryJoy {
		t.Errorf("Expected joy, got %q", cat)
	}

	found := false
	for _, v := range c.Lexicon().Variants(CategoryJoy) {
		if v == variant {
			found = true
		}
	}
	if !found {
		t.Errorf("Variant %q not in the joy pool", variant)
	}

	if c.History().Len() != 1 {
		t.Errorf("Expected one history record, got %d", c.History().Len())
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	c := NewClassifier(mustLexicon(t))

	cat, variant := c.Classify("   \t  ")
	if cat != CategoryNeutral {
		t.Errorf("Expected neutral for whitespace input, got %q", cat)
	}
	if variant == "" {
		t.Error("Expected a variant from the neutral pool")
	}
	if c.History().Len() != 0 {
		t.Errorf("Empty input must not mutate history, got %d records", c.History().Len())
	}
}

func TestClassifyNoMatchIsNeutral(t *testing.T) {
	c := NewClassifier(mustLexicon(t))

	cat, _ := c.Classify("zyzzyva quux blorp")
	if cat != CategoryNeutral {
		t.Errorf("Expected neutral for unmatched input, got %q", cat)
	}
	if c.History().Len() != 1 {
		t.Errorf("Unmatched non-empty input still pushes history, got %d", c.History().Len())
	}
}

func TestClassifyPrefixMatching(t *testing.T) {
	c := NewClassifier(mustLexicon(t))

	// "hugging" is not a trigger, but "hug" is a proper prefix of it.
	cat, _ := c.Classify("they kept hugging everyone")
	if cat != CategoryLove {
		t.Errorf("Expected love via prefix match, got %q", cat)
	}

	// An inflection that drops letters ("loving" vs trigger "love") is not
	// a prefix hit; the classifier falls back to neutral.
	cat, _ = c.Classify("loving")
	if cat != CategoryNeutral {
		t.Errorf("Expected neutral for non-prefix inflection, got %q", cat)
	}
}

func TestClassifyPunctuationStripped(t *testing.T) {
	c := NewClassifier(mustLexicon(t))

	cat, _ := c.Classify("WOW!!! That was... unexpected?!")
	if cat != CategorySurprise {
		t.Errorf("Expected surprise, got %q", cat)
	}
}

func TestClassifyTieBreaksByInsertionOrder(t *testing.T) {
	c := NewClassifier(mustLexicon(t))

	// One exact hit each for joy and sadness; joy is listed first.
	cat, _ := c.Classify("happy but sad")
	if cat != CategoryJoy {
		t.Errorf("Expected tie to break toward joy, got %q", cat)
	}
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory()

	for i := 0; i < HistoryCapacity+5; i++ {
		h.Push(CategoryJoy, "joy_bounce")
	}

	if h.Len() != HistoryCapacity {
		t.Errorf("Expected history capped at %d, got %d", HistoryCapacity, h.Len())
	}

	recs := h.Records()
	latest, ok := h.Latest()
	if !ok || recs[len(recs)-1].ID != latest.ID {
		t.Error("Latest must be the last pushed record")
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, World! It's 2am...")
	want := []string{"hello", "world", "it", "s", "2am"}

	if len(got) != len(want) {
		t.Fatalf("Tokenize returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Token %d = %q, want %q", i, got[i], want[i])
		}
	}
}
