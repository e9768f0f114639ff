package port

// VocabularyStorePort exposes the categorical vocabularies captured at
// training time. The list is informational for callers; incoming requests
// are never validated against it.
type VocabularyStorePort interface {
	// Neighborhoods returns the distinct neighborhood values in the order
	// training observed them. Returns domain.ErrVocabularyNotFound if no
	// training run has persisted the list yet.
	Neighborhoods() ([]string, error)
}
