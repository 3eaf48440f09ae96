// Package semantics maps free-text utterances to discrete emotion
// categories using a fixed lexical table.
//
// The table is embedded at build time and immutable after load. Scoring
// is exact word matching plus half-weight prefix matching, which picks up
// compound and inflected forms without a stemmer.
package semantics

// Category is one of the closed set of emotion categories.
type Category string

const (
	CategoryJoy        Category = "joy"
	CategorySadness    Category = "sadness"
	CategoryAnger      Category = "anger"
	CategoryFear       Category = "fear"
	CategorySurprise   Category = "surprise"
	CategoryCuriosity  Category = "curiosity"
	CategoryExcitement Category = "excitement"
	CategoryCalm       Category = "calm"
	CategoryLove       Category = "love"
	CategoryHeroic     Category = "heroic"
	CategoryNeutral    Category = "neutral"
)

// knownCategories is the closed set; lexicon entries outside it are
// rejected at load.
var knownCategories = map[Category]bool{
	CategoryJoy: true, CategorySadness: true, CategoryAnger: true,
	CategoryFear: true, CategorySurprise: true, CategoryCuriosity: true,
	CategoryExcitement: true, CategoryCalm: true, CategoryLove: true,
	CategoryHeroic: true, CategoryNeutral: true,
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	return knownCategories[c]
}

func (c Category) String() string {
	return string(c)
}
