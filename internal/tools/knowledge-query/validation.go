package knowledgequery

import "notch-chatbot/internal/common/validation"

func keywordsSchema(description string) validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"keywords"},
		Properties: map[string]validation.Property{
			"keywords": {
				Type:        "array",
				Description: description,
				Items:       &validation.Property{Type: "string"},
			},
		},
	}
}

func stringArgSchema(name, description string) validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{name},
		Properties: map[string]validation.Property{
			name: {
				Type:        "string",
				Description: description,
			},
		},
	}
}

func noArgsSchema() validation.JSONSchema {
	return validation.JSONSchema{Type: "object"}
}

func listOf(required ...string) *validation.JSONSchema {
	return &validation.JSONSchema{
		Type: "array",
		Items: &validation.Property{
			Type:     "object",
			Required: required,
		},
	}
}

func serviceListSchema() *validation.JSONSchema {
	return listOf("id", "name", "category", "url")
}

func caseStudyListSchema() *validation.JSONSchema {
	return listOf("id", "client_name", "title", "industry", "url")
}

func useCaseListSchema() *validation.JSONSchema {
	return listOf("id", "title", "domain", "url")
}

func industryListSchema() *validation.JSONSchema {
	return &validation.JSONSchema{
		Type:  "array",
		Items: &validation.Property{Type: "string"},
	}
}
