// Package sendoffer builds a proposal PDF and emails it to a prospect.
package sendoffer

import (
	"context"

	"notch-chatbot/internal/common/errors"
	"notch-chatbot/pkg/registry"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Tool describes create_and_send_offer for the registry.
func (h *Handler) Tool() registry.Tool {
	out := GetOutputSchema()
	return registry.Tool{
		Name:        ToolName,
		DisplayName: "Create And Send Offer",
		Description: "Create a PDF offer/proposal and send it via email to the prospect. " +
			"Only call this after the prospect has shared their name, email and project details and asked for a proposal.",
		Category:     "proposal",
		Tags:         []string{"proposal", "email", "pdf"},
		InputSchema:  GetInputSchema(),
		OutputSchema: &out,
		ErrorCodes: []string{
			string(errors.ErrCodeEmailNotConfigured),
			string(errors.ErrCodeEmailSendFailed),
		},
		Handler: registry.Typed(h.handle),
	}
}

func (h *Handler) handle(ctx context.Context, input Input) (string, error) {
	return h.service.CreateAndSendOffer(ctx, &input), nil
}
