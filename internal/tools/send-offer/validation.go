package sendoffer

import "notch-chatbot/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"client_name", "client_email", "project_description", "services_list"},
		Properties: map[string]validation.Property{
			"client_name": {
				Type:        "string",
				Description: "Name of the client/prospect",
				MaxLength:   validation.Int(200),
			},
			"client_email": {
				Type:        "string",
				Description: "Email address of the client",
				MaxLength:   validation.Int(255),
			},
			"project_description": {
				Type:        "string",
				Description: "Description of the project based on conversation",
				MaxLength:   validation.Int(20000),
			},
			"services_list": {
				Type:        "string",
				Description: "Comma-separated list of relevant Notch services",
				MaxLength:   validation.Int(5000),
			},
			"project_scope": {
				Type:        "string",
				Description: "Project size - \"small\", \"medium\", or \"large\" (affects pricing)",
				Default:     "medium",
			},
		},
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:        "string",
		Description: "Success or error sentence",
	}
}
