package knowledge

import (
	"context"
	"strings"

	"notch-chatbot/internal/models"
)

// Store holds a loaded knowledge base. It is never mutated after NewStore
// returns, so any number of goroutines may read it without locking.
type Store struct {
	kb *models.KnowledgeBase

	// lower-cased search text, index-aligned with kb.Services / kb.CaseStudies
	serviceText   []string
	caseStudyText []string
}

// Stats summarises the size of the store.
type Stats struct {
	Services    int `json:"services"`
	CaseStudies int `json:"case_studies"`
	UseCases    int `json:"use_cases"`
	Domains     int `json:"expertise_domains"`
}

// NewStore copies kb so later changes by the caller are not visible.
func NewStore(kb *models.KnowledgeBase) *Store {
	s := &Store{kb: kb.Clone()}

	s.serviceText = make([]string, len(s.kb.Services))
	for i, svc := range s.kb.Services {
		s.serviceText[i] = serviceSearchText(svc)
	}
	s.caseStudyText = make([]string, len(s.kb.CaseStudies))
	for i, cs := range s.kb.CaseStudies {
		s.caseStudyText[i] = caseStudySearchText(cs)
	}
	return s
}

// Open loads from src and wraps the result in a Store.
func Open(ctx context.Context, src Source) (*Store, error) {
	kb, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(kb), nil
}

// Snapshot returns a deep copy of the whole knowledge base.
func (s *Store) Snapshot() *models.KnowledgeBase {
	return s.kb.Clone()
}

func (s *Store) Stats() Stats {
	return Stats{
		Services:    len(s.kb.Services),
		CaseStudies: len(s.kb.CaseStudies),
		UseCases:    len(s.kb.UseCases),
		Domains:     len(s.kb.ExpertiseDomains),
	}
}

func serviceSearchText(svc models.Service) string {
	parts := []string{svc.Name, svc.Description, svc.ShortDescription}
	parts = append(parts, svc.KeyFeatures...)
	parts = append(parts, svc.IdealFor...)
	return strings.ToLower(strings.Join(parts, " "))
}

func caseStudySearchText(cs models.CaseStudy) string {
	outcome := ""
	if cs.Outcome != nil {
		outcome = *cs.Outcome
	}
	parts := []string{cs.Title, cs.Challenge, cs.Solution, outcome}
	parts = append(parts, cs.Technologies...)
	return strings.ToLower(strings.Join(parts, " "))
}
