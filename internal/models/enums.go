// internal/models/enums.go
package models

import "strings"

// ServiceCategory groups services by engagement phase.
type ServiceCategory string

const (
	CategoryPlan      ServiceCategory = "plan"
	CategoryDesign    ServiceCategory = "design"
	CategoryBuild     ServiceCategory = "build"
	CategoryIntegrate ServiceCategory = "integrate"
)

// Industry is a client vertical a case study belongs to.
type Industry string

const (
	IndustryManufacturing       Industry = "manufacturing"
	IndustryAutomotive          Industry = "automotive"
	IndustryPharma              Industry = "pharma"
	IndustryTelco               Industry = "telco"
	IndustryFintech             Industry = "fintech"
	IndustryHealthcare          Industry = "healthcare"
	IndustryEnergy              Industry = "energy"
	IndustryWorkforceManagement Industry = "workforce_management"
	IndustryIoT                 Industry = "iot"
	IndustryEnterprise          Industry = "enterprise"
	IndustryRetail              Industry = "retail"
	IndustryLogistics           Industry = "logistics"
	IndustrySaaS                Industry = "saas"
)

// ExpertiseDomain is a technical practice area.
type ExpertiseDomain string

const (
	DomainAIEngineering            ExpertiseDomain = "ai_engineering"
	DomainSoftwareEngineering      ExpertiseDomain = "software_engineering"
	DomainQualityEngineering       ExpertiseDomain = "quality_engineering"
	DomainProductManagement        ExpertiseDomain = "product_management"
	DomainIdentityAccessManagement ExpertiseDomain = "identity_access_management"
	DomainCloudDevOps              ExpertiseDomain = "cloud_devops"
	DomainBPMSolutions             ExpertiseDomain = "bpm_solutions"
	DomainIoTSolutions             ExpertiseDomain = "iot_solutions"
)

var (
	AllServiceCategories = []ServiceCategory{CategoryPlan, CategoryDesign, CategoryBuild, CategoryIntegrate}

	AllIndustries = []Industry{
		IndustryManufacturing, IndustryAutomotive, IndustryPharma, IndustryTelco,
		IndustryFintech, IndustryHealthcare, IndustryEnergy, IndustryWorkforceManagement,
		IndustryIoT, IndustryEnterprise, IndustryRetail, IndustryLogistics, IndustrySaaS,
	}

	AllExpertiseDomains = []ExpertiseDomain{
		DomainAIEngineering, DomainSoftwareEngineering, DomainQualityEngineering,
		DomainProductManagement, DomainIdentityAccessManagement, DomainCloudDevOps,
		DomainBPMSolutions, DomainIoTSolutions,
	}
)

// Aliases map normalized human phrasings onto enum tokens.
var (
	industryAliases = map[string]Industry{
		"telecom":                IndustryTelco,
		"telecoms":               IndustryTelco,
		"telecommunications":     IndustryTelco,
		"telecommunication":      IndustryTelco,
		"pharmaceutical":         IndustryPharma,
		"pharmaceuticals":        IndustryPharma,
		"internet_of_things":     IndustryIoT,
		"software_as_a_service":  IndustrySaaS,
		"health_care":            IndustryHealthcare,
		"health":                 IndustryHealthcare,
		"wfm":                    IndustryWorkforceManagement,
		"work_force_management":  IndustryWorkforceManagement,
		"workforce":              IndustryWorkforceManagement,
		"fin_tech":               IndustryFintech,
		"financial_technology":   IndustryFintech,
		"finance":                IndustryFintech,
		"auto":                   IndustryAutomotive,
		"supply_chain":           IndustryLogistics,
		"enterprise_software":    IndustryEnterprise,
		"retail_and_e_commerce":  IndustryRetail,
		"e_commerce":             IndustryRetail,
		"ecommerce":              IndustryRetail,
		"energy_and_utilities":   IndustryEnergy,
		"utilities":              IndustryEnergy,
		"manufacturing_industry": IndustryManufacturing,
	}

	domainAliases = map[string]ExpertiseDomain{
		"ai":                              DomainAIEngineering,
		"artificial_intelligence":         DomainAIEngineering,
		"machine_learning":                DomainAIEngineering,
		"ml":                              DomainAIEngineering,
		"software":                        DomainSoftwareEngineering,
		"software_development":            DomainSoftwareEngineering,
		"qa":                              DomainQualityEngineering,
		"quality_assurance":               DomainQualityEngineering,
		"testing":                         DomainQualityEngineering,
		"product":                         DomainProductManagement,
		"iam":                             DomainIdentityAccessManagement,
		"identity_and_access_management":  DomainIdentityAccessManagement,
		"identity_&_access_management":    DomainIdentityAccessManagement,
		"devops":                          DomainCloudDevOps,
		"cloud":                           DomainCloudDevOps,
		"cloud_and_devops":                DomainCloudDevOps,
		"cloud_&_devops":                  DomainCloudDevOps,
		"bpm":                             DomainBPMSolutions,
		"business_process_management":     DomainBPMSolutions,
		"iot":                             DomainIoTSolutions,
		"internet_of_things":              DomainIoTSolutions,
		"ai_engineering_and_data_science": DomainAIEngineering,
	}
)

// NormalizeToken lower-cases s, trims it and folds runs of spaces and hyphens
// into single underscores, turning "Workforce Management" into
// "workforce_management".
func NormalizeToken(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(s)), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	return strings.Join(fields, "_")
}

// ParseServiceCategory accepts the category token in any letter case.
func ParseServiceCategory(s string) (ServiceCategory, bool) {
	token := ServiceCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range AllServiceCategories {
		if c == token {
			return c, true
		}
	}
	return "", false
}

// ParseIndustry resolves free text to an Industry. Unknown input yields ok=false.
func ParseIndustry(s string) (Industry, bool) {
	token := NormalizeToken(s)
	for _, ind := range AllIndustries {
		if string(ind) == token {
			return ind, true
		}
	}
	if ind, ok := industryAliases[token]; ok {
		return ind, true
	}
	return "", false
}

// ParseExpertiseDomain resolves free text to an ExpertiseDomain. Unknown input yields ok=false.
func ParseExpertiseDomain(s string) (ExpertiseDomain, bool) {
	token := NormalizeToken(s)
	for _, d := range AllExpertiseDomains {
		if string(d) == token {
			return d, true
		}
	}
	if d, ok := domainAliases[token]; ok {
		return d, true
	}
	return "", false
}

// Valid reports whether c is one of the declared categories.
func (c ServiceCategory) Valid() bool {
	for _, cat := range AllServiceCategories {
		if cat == c {
			return true
		}
	}
	return false
}

func (i Industry) Valid() bool {
	for _, ind := range AllIndustries {
		if ind == i {
			return true
		}
	}
	return false
}

func (d ExpertiseDomain) Valid() bool {
	for _, dom := range AllExpertiseDomains {
		if dom == d {
			return true
		}
	}
	return false
}
