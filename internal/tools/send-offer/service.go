package sendoffer

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"notch-chatbot/internal/common/email"
	"notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/common/metrics"
	"notch-chatbot/internal/common/observability"
	"notch-chatbot/internal/proposal"
)

const (
	msgNotConfigured = "Error: SENDGRID_API_KEY not configured. Please set up SendGrid API key in environment variables. Get one at https://sendgrid.com (free tier: 100 emails/day)"
	msgSent          = "✓ Offer sent successfully to %s! %s should receive it shortly."
	msgRejected      = "Error sending email: Status %d - %s"
	msgFailed        = "Error sending offer email: %s"

	referenceArg = "proposal_reference"

	outcomeRejected      = "rejected"
	outcomeNotConfigured = "not_configured"
)

type Service struct {
	config        *Config
	mailer        email.Mailer
	builder       *proposal.Builder
	logger        logger.Logger
	observability *observability.Observability
	now           func() time.Time
	newReference  func() string
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	s := &Service{
		config:        config,
		mailer:        deps.Mailer,
		builder:       deps.Builder,
		logger:        deps.Logger,
		observability: deps.Observability,
		now:           deps.Now,
		newReference:  deps.NewReference,
	}
	if s.logger == nil {
		s.logger = logger.NewNoOpLogger()
	}
	if s.mailer == nil {
		s.mailer = email.NewSendGridClient(config.APIKey, config.BaseURL, config.Timeout)
	}
	if s.builder == nil {
		s.builder = proposal.NewBuilder()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newReference == nil {
		s.newReference = func() string { return uuid.New().String() }
	}
	return s
}

// CreateAndSendOffer renders the proposal PDF and emails it to the client.
// It never fails: every outcome, including errors, is a sentence for the
// agent to relay.
func (s *Service) CreateAndSendOffer(ctx context.Context, input *Input) string {
	out, err := s.Execute(ctx, input)
	if err == nil {
		return fmt.Sprintf(msgSent, out.Recipient, input.ClientName)
	}

	var stdErr *errors.StandardError
	if !stderrors.As(err, &stdErr) {
		return fmt.Sprintf(msgFailed, err.Error())
	}
	switch {
	case stdErr.Code == errors.ErrCodeEmailNotConfigured:
		return msgNotConfigured
	case stdErr.Metadata["statusCode"] != nil:
		return fmt.Sprintf(msgRejected, stdErr.Metadata["statusCode"], stdErr.Metadata["body"])
	case stderrors.Unwrap(stdErr) != nil:
		return fmt.Sprintf(msgFailed, stderrors.Unwrap(stdErr).Error())
	default:
		return fmt.Sprintf(msgFailed, stdErr.Error())
	}
}

// Execute renders and sends the proposal. Failures are StandardErrors:
// EMAIL_NOT_CONFIGURED when credentials are missing (no network call is
// made), EMAIL_SEND_FAILED for transport errors and provider rejections.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	now := s.now()
	scope := input.ProjectScope
	if strings.TrimSpace(scope) == "" {
		scope = string(proposal.ScopeMedium)
	}

	log := s.logger.WithFields(map[string]interface{}{
		"clientEmail": input.ClientEmail,
		"scope":       scope,
		"provider":    s.config.Provider,
	})
	log.Info("Creating offer", nil)

	pdf, err := s.builder.Build(proposal.Request{
		ClientName:         input.ClientName,
		ClientEmail:        input.ClientEmail,
		ProjectDescription: input.ProjectDescription,
		ServicesList:       input.ServicesList,
		ProjectScope:       scope,
		Date:               now,
	})
	if err != nil {
		log.WithError(err).Error("Failed to render proposal", nil)
		s.record(ctx, start, metrics.OutcomeError)
		return nil, errors.NewEmailSendFailedError(s.config.Provider, err)
	}
	s.observability.RecordProposalSize(ctx, len(pdf))
	encoded := base64.StdEncoding.EncodeToString(pdf)

	if s.config.credentialsMissing() {
		log.Warn("Email provider credentials missing", nil)
		s.record(ctx, start, outcomeNotConfigured)
		return nil, errors.NewEmailNotConfiguredError(s.config.Provider, "SENDGRID_API_KEY")
	}

	msg := s.buildMessage(input, encoded, now)

	sendCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	res, err := s.mailer.Send(sendCtx, msg)
	if err != nil {
		log.WithError(err).Error("Offer email transport failed", nil)
		s.record(ctx, start, metrics.OutcomeError)
		return nil, errors.NewEmailSendFailedError(s.config.Provider, err)
	}
	if !res.Accepted {
		log.Warn("Offer email rejected", map[string]interface{}{
			"statusCode": res.StatusCode,
			"body":       res.Body,
		})
		s.record(ctx, start, outcomeRejected)
		return nil, errors.NewEmailRejectedError(s.config.Provider, res.StatusCode, res.Body)
	}

	filename := msg.Attachments[0].Filename
	log.Info("Offer sent", map[string]interface{}{
		"messageId":  res.MessageID,
		"filename":   filename,
		"durationMs": time.Since(start).Milliseconds(),
	})
	s.record(ctx, start, metrics.OutcomeSuccess)

	return &Output{
		Recipient: input.ClientEmail,
		Filename:  filename,
		Reference: msg.Personalizations[0].CustomArgs[referenceArg],
		MessageID: res.MessageID,
		Provider:  res.Provider,
		SentAt:    now,
	}, nil
}

func (s *Service) buildMessage(input *Input, encodedPDF string, now time.Time) *email.Message {
	return &email.Message{
		Personalizations: []email.Personalization{{
			To:      []email.Address{{Email: input.ClientEmail, Name: input.ClientName}},
			BCC:     s.bccFor(input.ClientEmail),
			Subject: Subject(now),
			CustomArgs: map[string]string{
				referenceArg: s.newReference(),
			},
		}},
		From: email.Address{Email: s.config.FromEmail, Name: s.config.FromName},
		Content: []email.Content{{
			Type:  "text/html",
			Value: greetingHTML(input.ClientName),
		}},
		Attachments: []email.Attachment{{
			Content:     encodedPDF,
			Filename:    AttachmentFilename(input.ClientName, now),
			Type:        "application/pdf",
			Disposition: "attachment",
		}},
	}
}

// bccFor drops BCC addresses equal to the recipient; the provider rejects
// a message that repeats an address.
func (s *Service) bccFor(recipient string) []email.Address {
	var out []email.Address
	for _, addr := range s.config.BCC {
		if addr == "" || strings.EqualFold(addr, recipient) {
			continue
		}
		out = append(out, email.Address{Email: addr})
	}
	return out
}

func (s *Service) record(ctx context.Context, start time.Time, outcome string) {
	metrics.OffersDispatched.WithLabelValues(s.config.Provider, outcome).Inc()
	s.observability.RecordOfferDispatched(ctx, s.config.Provider, outcome)
	s.observability.RecordOfferDuration(ctx, time.Since(start), outcome)
}

func Subject(now time.Time) string {
	return "Your Project Proposal from Notch - " + now.Format("January 2006")
}

func AttachmentFilename(clientName string, now time.Time) string {
	return fmt.Sprintf("Notch_Proposal_%s_%s.pdf", strings.ReplaceAll(clientName, " ", "_"), now.Format("20060102"))
}

func greetingHTML(clientName string) string {
	return fmt.Sprintf(`
<html>
    <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
        <h2 style="color: #0066cc;">Hello %s,</h2>

        <p>Thank you for your interest in working with Notch! We're excited about the opportunity to help bring your project to life.</p>

        <p>Attached to this email, you'll find a detailed proposal outlining:</p>
        <ul>
            <li>Project overview and our understanding of your needs</li>
            <li>Recommended services and approach</li>
            <li>Team composition</li>
            <li>Investment estimate</li>
            <li>Next steps</li>
        </ul>

        <p>Please review the proposal at your convenience. We'd be happy to schedule a call to discuss any questions you might have and dive deeper into the details.</p>

        <p>Looking forward to hearing from you!</p>

        <p style="margin-top: 30px;">
            <strong>Best regards,</strong><br>
            The Notch Team<br>
            <a href="https://www.wearenotch.com" style="color: #0066cc;">www.wearenotch.com</a>
        </p>
    </body>
</html>
`, html.EscapeString(clientName))
}
