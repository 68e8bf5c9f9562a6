package sendoffer

import (
	"time"

	"notch-chatbot/internal/common/email"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/common/observability"
	"notch-chatbot/internal/proposal"
)

const ToolName = "create_and_send_offer"

// Input is an offer request gathered during the conversation.
type Input struct {
	ClientName         string `json:"client_name"`
	ClientEmail        string `json:"client_email"`
	ProjectDescription string `json:"project_description"`
	ServicesList       string `json:"services_list"`
	ProjectScope       string `json:"project_scope,omitempty"`
}

// Output describes a proposal the provider accepted.
type Output struct {
	Recipient string    `json:"recipient"`
	Filename  string    `json:"filename"`
	Reference string    `json:"reference"`
	MessageID string    `json:"messageId,omitempty"`
	Provider  string    `json:"provider"`
	SentAt    time.Time `json:"sentAt"`
}

// ServiceDependencies are optional except Logger. A nil Mailer means a
// SendGrid client built from Config.
type ServiceDependencies struct {
	Logger        logger.Logger
	Mailer        email.Mailer
	Builder       *proposal.Builder
	Observability *observability.Observability
	Now           func() time.Time
	NewReference  func() string
}
