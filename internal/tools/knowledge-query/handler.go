// Package knowledgequery exposes the knowledge base queries as agent tools.
package knowledgequery

import (
	"context"
	"strings"

	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/knowledge"
	"notch-chatbot/internal/models"
	"notch-chatbot/pkg/registry"
)

type Handler struct {
	query  *knowledge.Query
	logger logger.Logger
}

func NewHandler(query *knowledge.Query, deps ServiceDependencies) *Handler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		query:  query,
		logger: log.WithFields(map[string]interface{}{"component": "knowledge-query"}),
	}
}

// Tools returns one tool per query, in the order they are offered to the agent.
func (h *Handler) Tools() []registry.Tool {
	return []registry.Tool{
		{
			Name:         ToolFindServicesByKeyword,
			DisplayName:  "Find Services By Keyword",
			Description:  "Find Notch services matching any of the given keywords. Searches service names, descriptions, key features and ideal-for scenarios, case-insensitively.",
			Category:     Category,
			Tags:         []string{"services", "search"},
			InputSchema:  keywordsSchema("Keywords to search for, e.g. [\"IoT\", \"mobile\"]"),
			OutputSchema: serviceListSchema(),
			Handler:      registry.Typed(h.findServicesByKeyword),
		},
		{
			Name:         ToolFindServicesByCategory,
			DisplayName:  "Find Services By Category",
			Description:  "Find all services in a category: plan, design, build or integrate.",
			Category:     Category,
			Tags:         []string{"services"},
			InputSchema:  stringArgSchema("category", "Service category (plan, design, build, integrate)"),
			OutputSchema: serviceListSchema(),
			Handler:      registry.Typed(h.findServicesByCategory),
		},
		{
			Name:         ToolFindCaseStudiesByIndustry,
			DisplayName:  "Find Case Studies By Industry",
			Description:  "Find case studies for an industry, e.g. \"manufacturing\" or \"Workforce Management\". Call list_available_industries first if unsure.",
			Category:     Category,
			Tags:         []string{"case-studies"},
			InputSchema:  stringArgSchema("industry", "Industry name"),
			OutputSchema: caseStudyListSchema(),
			Handler:      registry.Typed(h.findCaseStudiesByIndustry),
		},
		{
			Name:         ToolFindCaseStudiesByService,
			DisplayName:  "Find Case Studies By Service",
			Description:  "Find case studies that used a service, by service id (as returned by the service tools).",
			Category:     Category,
			Tags:         []string{"case-studies", "services"},
			InputSchema:  stringArgSchema("service_id", "Service id, e.g. \"iot-solutions\""),
			OutputSchema: caseStudyListSchema(),
			Handler:      registry.Typed(h.findCaseStudiesByService),
		},
		{
			Name:         ToolFindSimilarCaseStudies,
			DisplayName:  "Find Similar Case Studies",
			Description:  "Find case studies whose title, challenge, solution, outcome or technologies mention any of the keywords.",
			Category:     Category,
			Tags:         []string{"case-studies", "search"},
			InputSchema:  keywordsSchema("Keywords describing the prospect's problem or stack"),
			OutputSchema: caseStudyListSchema(),
			Handler:      registry.Typed(h.findSimilarCaseStudies),
		},
		{
			Name:         ToolGetAllCaseStudies,
			DisplayName:  "Get All Case Studies",
			Description:  "Get every available case study.",
			Category:     Category,
			Tags:         []string{"case-studies"},
			InputSchema:  noArgsSchema(),
			OutputSchema: caseStudyListSchema(),
			Handler:      registry.Typed(h.getAllCaseStudies),
		},
		{
			Name:         ToolFindUseCasesByDomain,
			DisplayName:  "Find Use Cases By Domain",
			Description:  "Find use cases for an expertise domain, e.g. \"ai_engineering\", \"IoT Solutions\" or \"cloud devops\".",
			Category:     Category,
			Tags:         []string{"use-cases"},
			InputSchema:  stringArgSchema("domain", "Expertise domain"),
			OutputSchema: useCaseListSchema(),
			Handler:      registry.Typed(h.findUseCasesByDomain),
		},
		{
			Name:        ToolGetExpertiseDescription,
			DisplayName: "Get Expertise Description",
			Description: "Get the description of an expertise domain. Returns null when the domain is unknown.",
			Category:    Category,
			Tags:        []string{"expertise"},
			InputSchema: stringArgSchema("domain", "Expertise domain key, e.g. \"cloud_devops\""),
			Handler:     registry.Typed(h.getExpertiseDescription),
		},
		{
			Name:         ToolListAllServices,
			DisplayName:  "List All Services",
			Description:  "List every service Notch offers.",
			Category:     Category,
			Tags:         []string{"services"},
			InputSchema:  noArgsSchema(),
			OutputSchema: serviceListSchema(),
			Handler:      registry.Typed(h.listAllServices),
		},
		{
			Name:         ToolListAvailableIndustries,
			DisplayName:  "List Available Industries",
			Description:  "List the industries Notch has case studies for.",
			Category:     Category,
			Tags:         []string{"case-studies"},
			InputSchema:  noArgsSchema(),
			OutputSchema: industryListSchema(),
			Handler:      registry.Typed(h.listAvailableIndustries),
		},
	}
}

// Register adds every knowledge tool to reg.
func Register(reg *registry.Registry, query *knowledge.Query, deps ServiceDependencies) error {
	for _, tool := range NewHandler(query, deps).Tools() {
		if err := reg.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) findServicesByKeyword(ctx context.Context, in KeywordsInput) ([]models.Service, error) {
	out := h.query.FindServicesByKeyword(in.Keywords)
	h.logResult(ToolFindServicesByKeyword, strings.Join(in.Keywords, ","), len(out))
	return out, nil
}

func (h *Handler) findServicesByCategory(ctx context.Context, in CategoryInput) ([]models.Service, error) {
	out := h.query.FindServicesByCategory(in.Category)
	h.logResult(ToolFindServicesByCategory, in.Category, len(out))
	return out, nil
}

func (h *Handler) findCaseStudiesByIndustry(ctx context.Context, in IndustryInput) ([]models.CaseStudy, error) {
	out := h.query.FindCaseStudiesByIndustry(in.Industry)
	h.logResult(ToolFindCaseStudiesByIndustry, in.Industry, len(out))
	return out, nil
}

func (h *Handler) findCaseStudiesByService(ctx context.Context, in ServiceInput) ([]models.CaseStudy, error) {
	out := h.query.FindCaseStudiesByService(in.ServiceID)
	h.logResult(ToolFindCaseStudiesByService, in.ServiceID, len(out))
	return out, nil
}

func (h *Handler) findSimilarCaseStudies(ctx context.Context, in KeywordsInput) ([]models.CaseStudy, error) {
	out := h.query.FindSimilarCaseStudies(in.Keywords)
	h.logResult(ToolFindSimilarCaseStudies, strings.Join(in.Keywords, ","), len(out))
	return out, nil
}

func (h *Handler) getAllCaseStudies(ctx context.Context, _ NoInput) ([]models.CaseStudy, error) {
	return h.query.GetAllCaseStudies(), nil
}

func (h *Handler) findUseCasesByDomain(ctx context.Context, in DomainInput) ([]models.UseCase, error) {
	out := h.query.FindUseCasesByDomain(in.Domain)
	h.logResult(ToolFindUseCasesByDomain, in.Domain, len(out))
	return out, nil
}

// getExpertiseDescription returns nil (JSON null) for unknown domains.
func (h *Handler) getExpertiseDescription(ctx context.Context, in DomainInput) (*string, error) {
	desc, ok := h.query.GetExpertiseDescription(in.Domain)
	if !ok {
		h.logResult(ToolGetExpertiseDescription, in.Domain, 0)
		return nil, nil
	}
	return &desc, nil
}

func (h *Handler) listAllServices(ctx context.Context, _ NoInput) ([]models.Service, error) {
	return h.query.ListAllServices(), nil
}

func (h *Handler) listAvailableIndustries(ctx context.Context, _ NoInput) ([]string, error) {
	return h.query.ListAvailableIndustries(), nil
}

// logResult notes empty results, which the agent must answer honestly.
func (h *Handler) logResult(tool, arg string, n int) {
	if n > 0 {
		return
	}
	h.logger.Debug("Query returned no results", map[string]interface{}{
		"tool": tool,
		"arg":  arg,
	})
}
