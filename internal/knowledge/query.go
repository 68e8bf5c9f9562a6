package knowledge

import (
	"sort"
	"strings"

	"notch-chatbot/internal/models"
)

// Query answers the assistant's read-only lookups. Every method is total:
// no match yields an empty (non-nil) slice, never an error. Results keep
// store order.
type Query struct {
	store *Store
}

func NewQuery(store *Store) *Query {
	return &Query{store: store}
}

// FindServicesByKeyword returns services whose name, descriptions, key
// features or ideal-for text contain any keyword, case-insensitively.
func (q *Query) FindServicesByKeyword(keywords []string) []models.Service {
	needles := lowerAll(keywords)
	out := []models.Service{}
	for i, text := range q.store.serviceText {
		if containsAny(text, needles) {
			out = append(out, q.store.kb.Services[i].Clone())
		}
	}
	return out
}

// FindServicesByCategory matches the category token case-insensitively.
func (q *Query) FindServicesByCategory(category string) []models.Service {
	out := []models.Service{}
	cat, ok := models.ParseServiceCategory(category)
	if !ok {
		return out
	}
	for _, svc := range q.store.kb.Services {
		if svc.Category == cat {
			out = append(out, svc.Clone())
		}
	}
	return out
}

// FindCaseStudiesByIndustry accepts the industry token or a human phrasing
// such as "Workforce Management".
func (q *Query) FindCaseStudiesByIndustry(industry string) []models.CaseStudy {
	out := []models.CaseStudy{}
	ind, ok := models.ParseIndustry(industry)
	if !ok {
		return out
	}
	for _, cs := range q.store.kb.CaseStudies {
		if cs.Industry == ind {
			out = append(out, cs.Clone())
		}
	}
	return out
}

// FindCaseStudiesByService returns case studies listing serviceID in services_used.
func (q *Query) FindCaseStudiesByService(serviceID string) []models.CaseStudy {
	out := []models.CaseStudy{}
	for _, cs := range q.store.kb.CaseStudies {
		for _, id := range cs.ServicesUsed {
			if id == serviceID {
				out = append(out, cs.Clone())
				break
			}
		}
	}
	return out
}

// FindSimilarCaseStudies applies the keyword rule to title, challenge,
// solution, outcome and technologies.
func (q *Query) FindSimilarCaseStudies(keywords []string) []models.CaseStudy {
	needles := lowerAll(keywords)
	out := []models.CaseStudy{}
	for i, text := range q.store.caseStudyText {
		if containsAny(text, needles) {
			out = append(out, q.store.kb.CaseStudies[i].Clone())
		}
	}
	return out
}

func (q *Query) GetAllCaseStudies() []models.CaseStudy {
	out := make([]models.CaseStudy, len(q.store.kb.CaseStudies))
	for i, cs := range q.store.kb.CaseStudies {
		out[i] = cs.Clone()
	}
	return out
}

func (q *Query) ListAllServices() []models.Service {
	out := make([]models.Service, len(q.store.kb.Services))
	for i, svc := range q.store.kb.Services {
		out[i] = svc.Clone()
	}
	return out
}

// FindUseCasesByDomain normalizes domain the same way as industries.
func (q *Query) FindUseCasesByDomain(domain string) []models.UseCase {
	out := []models.UseCase{}
	d, ok := models.ParseExpertiseDomain(domain)
	if !ok {
		return out
	}
	for _, uc := range q.store.kb.UseCases {
		if uc.Domain == d {
			out = append(out, uc.Clone())
		}
	}
	return out
}

// GetExpertiseDescription looks domain up as given, then by its parsed
// token. ok is false when neither key exists.
func (q *Query) GetExpertiseDescription(domain string) (string, bool) {
	if desc, ok := q.store.kb.ExpertiseDomains[domain]; ok {
		return desc, true
	}
	if d, ok := models.ParseExpertiseDomain(domain); ok {
		desc, found := q.store.kb.ExpertiseDomains[string(d)]
		return desc, found
	}
	return "", false
}

// ListAvailableIndustries returns the distinct industries that appear in at
// least one case study, sorted.
func (q *Query) ListAvailableIndustries() []string {
	seen := map[models.Industry]struct{}{}
	out := []string{}
	for _, cs := range q.store.kb.CaseStudies {
		if _, ok := seen[cs.Industry]; ok {
			continue
		}
		seen[cs.Industry] = struct{}{}
		out = append(out, string(cs.Industry))
	}
	sort.Strings(out)
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
