package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendPath = "/v3/mail/send"

// SendGridClient posts messages to the SendGrid v3 mail/send endpoint.
type SendGridClient struct {
	apiKey string
	host   string
	client *rest.Client
}

// NewSendGridClient targets host (the API origin, e.g.
// https://api.sendgrid.com). Every request is bounded by timeout.
func NewSendGridClient(apiKey, host string, timeout time.Duration) *SendGridClient {
	return &SendGridClient{
		apiKey: apiKey,
		host:   strings.TrimRight(host, "/"),
		client: &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}
}

// Send issues a single POST. Only 202 counts as accepted.
func (c *SendGridClient) Send(ctx context.Context, msg *Message) (*Result, error) {
	request := sendgrid.GetRequest(c.apiKey, sendPath, c.host)
	request.Method = rest.Post
	request.Headers["Content-Type"] = "application/json"
	request.Body = mail.GetRequestBody(ToV3Mail(msg))

	resp, err := c.client.SendWithContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("sendgrid request failed: %w", err)
	}

	return &Result{
		Provider:   "sendgrid",
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Accepted:   resp.StatusCode == http.StatusAccepted,
		MessageID:  http.Header(resp.Headers).Get("X-Message-Id"),
	}, nil
}

// ToV3Mail converts msg to the SendGrid v3 mail model.
func ToV3Mail(msg *Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.From.Name, msg.From.Email))

	for _, p := range msg.Personalizations {
		sp := mail.NewPersonalization()
		sp.AddTos(v3Emails(p.To)...)
		if len(p.BCC) > 0 {
			sp.AddBCCs(v3Emails(p.BCC)...)
		}
		sp.Subject = p.Subject
		for k, v := range p.CustomArgs {
			sp.SetCustomArg(k, v)
		}
		m.AddPersonalizations(sp)
	}

	for _, c := range msg.Content {
		m.AddContent(mail.NewContent(c.Type, c.Value))
	}

	for _, a := range msg.Attachments {
		m.AddAttachment(mail.NewAttachment().
			SetContent(a.Content).
			SetType(a.Type).
			SetFilename(a.Filename).
			SetDisposition(a.Disposition))
	}
	return m
}

func v3Emails(in []Address) []*mail.Email {
	out := make([]*mail.Email, len(in))
	for i, a := range in {
		out[i] = mail.NewEmail(a.Name, a.Email)
	}
	return out
}
