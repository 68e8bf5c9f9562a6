// Package blogposts points prospects at the public Notch blog.
package blogposts

import (
	"context"

	"notch-chatbot/pkg/registry"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Tool() registry.Tool {
	out := GetOutputSchema()
	return registry.Tool{
		Name:         ToolName,
		DisplayName:  "Fetch Latest Blog Posts",
		Description:  "Fetch latest blog posts from the Notch website.",
		Category:     "content",
		Tags:         []string{"blog"},
		InputSchema:  GetInputSchema(),
		OutputSchema: &out,
		Handler: registry.Typed(func(ctx context.Context, in Input) (string, error) {
			return h.service.Fetch(ctx, &in), nil
		}),
	}
}
