package services

import (
	"fmt"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/canonical"
)

// VocabularyService exposes the canonical vocabularies
type VocabularyService struct{}

// NewVocabularyService creates a vocabulary service
func NewVocabularyService() *VocabularyService {
	return &VocabularyService{}
}

// Describe lists every vocabulary with its labels and entries
func (s *VocabularyService) Describe() []canonical.Description {
	return canonical.Describe()
}

// Fields lists the fields that have a vocabulary
func (s *VocabularyService) Fields() []string {
	return canonical.Fields()
}

// Canonicalize maps values through the vocabulary of field
func (s *VocabularyService) Canonicalize(field string, values []string) ([]string, error) {
	vocab, err := canonical.ForField(field)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return canonical.Apply(vocab, values), nil
}
