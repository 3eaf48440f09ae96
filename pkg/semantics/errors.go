package semantics

import "errors"

var (
	// ErrUnknownCategory is returned when the lexicon names a category
	// outside the closed set.
	ErrUnknownCategory = errors.New("unknown emotion category")

	// ErrEmptyVariantPool is returned when a category has no animation
	// variants.
	ErrEmptyVariantPool = errors.New("category has empty variant pool")

	// ErrDuplicateTrigger is returned when two categories claim the same
	// trigger word.
	ErrDuplicateTrigger = errors.New("trigger word claimed twice")

	// ErrMissingNeutral is returned when the lexicon omits the neutral
	// fallback category.
	ErrMissingNeutral = errors.New("lexicon is missing the neutral category")
)
