// internal/common/aws/ses.go
package aws

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"notch-chatbot/internal/common/email"
)

// SESService is the part of the SES client used here, for mocking.
type SESService interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESMailer sends email.Message values through SES as raw MIME, which is the
// only SES call that carries attachments.
type SESMailer struct {
	client SESService
}

func NewSESMailer(ctx context.Context, region string) (*SESMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg)}, nil
}

func NewSESMailerWithClient(client SESService) *SESMailer {
	return &SESMailer{client: client}
}

func (m *SESMailer) Send(ctx context.Context, msg *email.Message) (*email.Result, error) {
	raw, err := BuildRawMessage(msg)
	if err != nil {
		return nil, err
	}

	var destinations []string
	for _, p := range msg.Personalizations {
		for _, a := range p.To {
			destinations = append(destinations, a.Email)
		}
		for _, a := range p.BCC {
			destinations = append(destinations, a.Email)
		}
	}

	out, err := m.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: raw},
		Destinations: destinations,
		Source:       aws.String(formatAddress(msg.From)),
	})
	if err != nil {
		return nil, fmt.Errorf("ses send failed: %w", err)
	}

	return &email.Result{
		Provider:   "ses",
		StatusCode: 200,
		Accepted:   true,
		MessageID:  aws.ToString(out.MessageId),
	}, nil
}

// BuildRawMessage renders msg as multipart/mixed MIME. BCC recipients are
// omitted from the headers and passed as envelope destinations instead.
func BuildRawMessage(msg *email.Message) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	var to []string
	for _, p := range msg.Personalizations {
		for _, a := range p.To {
			to = append(to, formatAddress(a))
		}
	}

	headers := []string{
		"From: " + formatAddress(msg.From),
		"To: " + strings.Join(to, ", "),
		"Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject()),
		"MIME-Version: 1.0",
		"Content-Type: " + mime.FormatMediaType("multipart/mixed", map[string]string{"boundary": w.Boundary()}),
	}
	buf.WriteString(strings.Join(headers, "\r\n") + "\r\n\r\n")

	for _, c := range msg.Content {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType(c.Type, map[string]string{"charset": "UTF-8"})},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, fmt.Errorf("create body part: %w", err)
		}
		if err := writeBase64Lines(part, base64.StdEncoding.EncodeToString([]byte(c.Value))); err != nil {
			return nil, err
		}
	}

	for _, a := range msg.Attachments {
		// FormatMediaType applies RFC 2231 encoding to non-ASCII filenames
		// and returns "" for an invalid media type.
		contentType := mime.FormatMediaType(a.Type, map[string]string{"name": a.Filename})
		disposition := mime.FormatMediaType(a.Disposition, map[string]string{"filename": a.Filename})
		if contentType == "" || disposition == "" {
			return nil, fmt.Errorf("attachment %q: invalid type %q or disposition %q", a.Filename, a.Type, a.Disposition)
		}
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {contentType},
			"Content-Disposition":       {disposition},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, fmt.Errorf("create attachment part: %w", err)
		}
		if err := writeBase64Lines(part, a.Content); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close mime writer: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBase64Lines wraps encoded text at 76 columns.
func writeBase64Lines(w interface{ Write([]byte) (int, error) }, encoded string) error {
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return fmt.Errorf("write mime part: %w", err)
		}
		encoded = encoded[n:]
	}
	return nil
}

func formatAddress(a email.Address) string {
	return (&mail.Address{Name: a.Name, Address: a.Email}).String()
}
