package domain

import "errors"

// Sentinel errors matched by the REST layer with errors.Is. The contract is
// deliberately flat: either the model cannot be served at all, or a lookup
// artifact is absent. Everything else surfaces with its raw message.
var (
	// ErrModelNotAvailable means the trained pipeline artifact is missing or
	// unreadable, so no prediction can be made.
	ErrModelNotAvailable = errors.New("model not available")

	// ErrVocabularyNotFound means the persisted neighborhood list has not
	// been written by a training run yet.
	ErrVocabularyNotFound = errors.New("neighborhood data not found")
)
