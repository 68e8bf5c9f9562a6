package knowledge

import (
	"fmt"
	"sort"

	"notch-chatbot/internal/models"
)

// IssueKind classifies a consistency finding.
type IssueKind string

const (
	IssueUnknownService      IssueKind = "unknown_service_reference"
	IssueUnknownExpertiseKey IssueKind = "unknown_expertise_key"
)

// Issue is a dangling reference found by Check. Issues never block loading.
type Issue struct {
	Kind       IssueKind `json:"kind"`
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Reference  string    `json:"reference"`
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueUnknownService:
		return fmt.Sprintf("%s %s references unknown service %q", i.Collection, i.ID, i.Reference)
	case IssueUnknownExpertiseKey:
		return fmt.Sprintf("expertise key %q is not a known expertise domain", i.Reference)
	default:
		return fmt.Sprintf("%s %s: %s %q", i.Collection, i.ID, i.Kind, i.Reference)
	}
}

// Check reports services_used and related_services entries that name no
// service, and expertise keys that are not expertise domains.
func Check(kb *models.KnowledgeBase) []Issue {
	serviceIDs := make(map[string]struct{}, len(kb.Services))
	for _, svc := range kb.Services {
		serviceIDs[svc.ID] = struct{}{}
	}

	issues := []Issue{}
	for _, cs := range kb.CaseStudies {
		for _, ref := range cs.ServicesUsed {
			if _, ok := serviceIDs[ref]; !ok {
				issues = append(issues, Issue{Kind: IssueUnknownService, Collection: DocCaseStudies, ID: cs.ID, Reference: ref})
			}
		}
	}
	for _, uc := range kb.UseCases {
		for _, ref := range uc.RelatedServices {
			if _, ok := serviceIDs[ref]; !ok {
				issues = append(issues, Issue{Kind: IssueUnknownService, Collection: DocUseCases, ID: uc.ID, Reference: ref})
			}
		}
	}
	for _, d := range sortedKeys(kb.ExpertiseDomains) {
		if !models.ExpertiseDomain(d).Valid() {
			issues = append(issues, Issue{Kind: IssueUnknownExpertiseKey, Collection: DocExpertise, Reference: d})
		}
	}
	return issues
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
