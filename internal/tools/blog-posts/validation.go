package blogposts

import "notch-chatbot/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"query": {
				Type:        "string",
				Description: "Search query for blog posts",
				Default:     "latest posts",
			},
			"max_results": {
				Type:        "integer",
				Description: "Maximum number of results to return",
				Default:     3,
				Minimum:     validation.Float(1),
				Maximum:     validation.Float(20),
			},
		},
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:        "string",
		Description: "Pointer to the blog, or an apology with the error",
	}
}
