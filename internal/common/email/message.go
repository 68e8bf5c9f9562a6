// Package email holds the transactional email message and its delivery
// backends.
package email

import "context"

// Address is a mailbox with an optional display name.
type Address struct {
	Email string
	Name  string
}

// Personalization is one envelope: its recipients, subject and the custom
// arguments the provider echoes back in event webhooks.
type Personalization struct {
	To         []Address
	BCC        []Address
	Subject    string
	CustomArgs map[string]string
}

type Content struct {
	Type  string
	Value string
}

// Attachment content is base64 text.
type Attachment struct {
	Content     string
	Filename    string
	Type        string
	Disposition string
}

// Message is a provider-neutral outgoing email. Each Mailer renders it in
// its own wire format.
type Message struct {
	Personalizations []Personalization
	From             Address
	Content          []Content
	Attachments      []Attachment
}

// Subject returns the first personalization's subject.
func (m *Message) Subject() string {
	if len(m.Personalizations) == 0 {
		return ""
	}
	return m.Personalizations[0].Subject
}

// Result is the provider's answer to a send.
type Result struct {
	Provider   string
	StatusCode int
	Body       string
	Accepted   bool
	MessageID  string
}

// Mailer delivers a Message. Transport failures are errors; provider
// rejections are a Result with Accepted false.
type Mailer interface {
	Send(ctx context.Context, msg *Message) (*Result, error)
}
