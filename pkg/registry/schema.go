// pkg/registry/schema.go
package registry

import "encoding/json"

// Catalog is the exported description of every registered tool.
type Catalog struct {
	Version     string       `json:"version"`
	LastUpdated string       `json:"lastUpdated"`
	Tools       []Definition `json:"tools"`
}

// Definition describes one tool to an agent or an operator.
type Definition struct {
	Name         string          `json:"name"`
	DisplayName  string          `json:"displayName"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	InputSchema  json.RawMessage `json:"inputSchema"`
	OutputSchema json.RawMessage `json:"outputSchema,omitempty"`
	ErrorCodes   []string        `json:"errorCodes,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
}
