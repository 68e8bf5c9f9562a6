package sendoffer

import (
	"fmt"
	"time"

	"notch-chatbot/internal/common/config"
)

const (
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
)

type Config struct {
	Provider  string        `mapstructure:"provider"`
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	FromEmail string        `mapstructure:"from_email"`
	FromName  string        `mapstructure:"from_name"`
	BCC       []string      `mapstructure:"bcc"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:  ProviderSendGrid,
		BaseURL:   config.DefaultSendGridBaseURL,
		FromEmail: config.DefaultFromEmail,
		FromName:  config.DefaultFromName,
		BCC:       append([]string(nil), config.DefaultBCC...),
		Timeout:   30 * time.Second,
	}
}

// FromAppConfig maps the email section of the application config.
func FromAppConfig(cfg config.EmailConfig) *Config {
	c := &Config{
		Provider:  cfg.Provider,
		APIKey:    cfg.SendGrid.APIKey,
		BaseURL:   cfg.SendGrid.BaseURL,
		FromEmail: cfg.SendGrid.FromEmail,
		FromName:  cfg.SendGrid.FromName,
		BCC:       append([]string(nil), cfg.BCC...),
		Timeout:   config.GetDuration(cfg.SendGrid.Timeout),
	}
	if c.Provider == ProviderSES && cfg.SES.FromEmail != "" {
		c.FromEmail = cfg.SES.FromEmail
	}
	return c
}

// Validate checks structural settings only. A missing API key is reported
// per call, not here.
func (c *Config) Validate() error {
	if c.Provider != ProviderSendGrid && c.Provider != ProviderSES {
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from_email is required")
	}
	if c.Provider == ProviderSendGrid && c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}

// credentialsMissing reports whether the provider needs an API key that is absent.
func (c *Config) credentialsMissing() bool {
	return c.Provider == ProviderSendGrid && c.APIKey == ""
}
