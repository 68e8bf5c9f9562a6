// internal/models/knowledge.go
package models

// Service is one offering from the Notch catalogue.
type Service struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Category         ServiceCategory   `json:"category"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	KeyFeatures      []string          `json:"key_features"`
	RelatedExpertise []ExpertiseDomain `json:"related_expertise"`
	TypicalTimeline  *string           `json:"typical_timeline"`
	IdealFor         []string          `json:"ideal_for"`
	URL              string            `json:"url"`
}

// CaseStudy is a customer success story. ServicesUsed holds service ids and is
// not checked against the catalogue.
type CaseStudy struct {
	ID                  string   `json:"id"`
	ClientName          string   `json:"client_name"`
	Title               string   `json:"title"`
	Industry            Industry `json:"industry"`
	ServicesUsed        []string `json:"services_used"`
	Challenge           string   `json:"challenge"`
	Solution            string   `json:"solution"`
	Outcome             *string  `json:"outcome"`
	Technologies        []string `json:"technologies"`
	PartnershipDuration *string  `json:"partnership_duration"`
	Quote               *string  `json:"quote"`
	Metrics             []string `json:"metrics"` // nil when absent
	URL                 string   `json:"url"`
}

type UseCase struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Domain          ExpertiseDomain `json:"domain"`
	Problem         string          `json:"problem"`
	Solution        string          `json:"solution"`
	Metric          *string         `json:"metric"`
	RelatedServices []string        `json:"related_services"`
	URL             string          `json:"url"`
}

// KnowledgeBase is the full catalogue the assistant answers from.
type KnowledgeBase struct {
	Services         []Service         `json:"services"`
	CaseStudies      []CaseStudy       `json:"case_studies"`
	UseCases         []UseCase         `json:"use_cases"`
	ExpertiseDomains map[string]string `json:"expertise_domains"`
}

// Clone returns a deep copy of the knowledge base.
func (kb *KnowledgeBase) Clone() *KnowledgeBase {
	out := &KnowledgeBase{
		Services:         make([]Service, len(kb.Services)),
		CaseStudies:      make([]CaseStudy, len(kb.CaseStudies)),
		UseCases:         make([]UseCase, len(kb.UseCases)),
		ExpertiseDomains: make(map[string]string, len(kb.ExpertiseDomains)),
	}
	for i, s := range kb.Services {
		out.Services[i] = s.Clone()
	}
	for i, cs := range kb.CaseStudies {
		out.CaseStudies[i] = cs.Clone()
	}
	for i, uc := range kb.UseCases {
		out.UseCases[i] = uc.Clone()
	}
	for k, v := range kb.ExpertiseDomains {
		out.ExpertiseDomains[k] = v
	}
	return out
}

func (s Service) Clone() Service {
	s.KeyFeatures = cloneStrings(s.KeyFeatures)
	s.IdealFor = cloneStrings(s.IdealFor)
	s.TypicalTimeline = cloneString(s.TypicalTimeline)
	if s.RelatedExpertise != nil {
		related := make([]ExpertiseDomain, len(s.RelatedExpertise))
		copy(related, s.RelatedExpertise)
		s.RelatedExpertise = related
	}
	return s
}

func (cs CaseStudy) Clone() CaseStudy {
	cs.ServicesUsed = cloneStrings(cs.ServicesUsed)
	cs.Technologies = cloneStrings(cs.Technologies)
	cs.Metrics = cloneStrings(cs.Metrics)
	cs.Outcome = cloneString(cs.Outcome)
	cs.PartnershipDuration = cloneString(cs.PartnershipDuration)
	cs.Quote = cloneString(cs.Quote)
	return cs
}

func (uc UseCase) Clone() UseCase {
	uc.RelatedServices = cloneStrings(uc.RelatedServices)
	uc.Metric = cloneString(uc.Metric)
	return uc
}

// cloneStrings keeps nil as nil and empty as empty; the two encode
// differently.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneString(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
