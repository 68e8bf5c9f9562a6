package blogposts

import (
	"fmt"
	"time"

	"notch-chatbot/internal/common/config"
)

type Config struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		URL:     config.DefaultBlogURL,
		Timeout: 10 * time.Second,
	}
}

func FromAppConfig(cfg config.BlogConfig) *Config {
	return &Config{
		URL:     cfg.URL,
		Timeout: config.GetDuration(cfg.Timeout),
	}
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
