package agent

import (
	"fmt"
	"time"

	"notch-chatbot/internal/common/config"
)

type Config struct {
	Model         string
	MaxToolRounds int
	Temperature   float32
	Timeout       time.Duration
	SystemPrompt  string
}

func DefaultConfig() *Config {
	return &Config{
		Model:         "gpt-4o",
		MaxToolRounds: 6,
		Temperature:   0.3,
		Timeout:       60 * time.Second,
		SystemPrompt:  SystemPrompt,
	}
}

func FromAppConfig(cfg config.AgentConfig) *Config {
	c := DefaultConfig()
	c.Model = cfg.Model
	c.MaxToolRounds = cfg.MaxToolRounds
	c.Temperature = cfg.Temperature
	c.Timeout = config.GetDuration(cfg.Timeout)
	return c
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxToolRounds < 1 {
		return fmt.Errorf("max_tool_rounds must be at least 1")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
