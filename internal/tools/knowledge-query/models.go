package knowledgequery

import "notch-chatbot/internal/common/logger"

// Tool names exposed to the agent.
const (
	ToolFindServicesByKeyword     = "find_services_by_keyword"
	ToolFindServicesByCategory    = "find_services_by_category"
	ToolFindCaseStudiesByIndustry = "find_case_studies_by_industry"
	ToolFindCaseStudiesByService  = "find_case_studies_by_service"
	ToolFindSimilarCaseStudies    = "find_similar_case_studies"
	ToolGetAllCaseStudies         = "get_all_case_studies"
	ToolFindUseCasesByDomain      = "find_use_cases_by_domain"
	ToolGetExpertiseDescription   = "get_expertise_description"
	ToolListAllServices           = "list_all_services"
	ToolListAvailableIndustries   = "list_available_industries"

	Category = "knowledge"
)

type KeywordsInput struct {
	Keywords []string `json:"keywords"`
}

type CategoryInput struct {
	Category string `json:"category"`
}

type IndustryInput struct {
	Industry string `json:"industry"`
}

type ServiceInput struct {
	ServiceID string `json:"service_id"`
}

type DomainInput struct {
	Domain string `json:"domain"`
}

type NoInput struct{}

type ServiceDependencies struct {
	Logger logger.Logger
}
