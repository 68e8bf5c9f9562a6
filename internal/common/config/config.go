// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Email     EmailConfig     `mapstructure:"email"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Session   SessionConfig   `mapstructure:"session"`
	Blog      BlogConfig      `mapstructure:"blog"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// KnowledgeConfig selects where the knowledge base is read from.
type KnowledgeConfig struct {
	Source  string `mapstructure:"source"` // "files" or "postgres"
	DataDir string `mapstructure:"data_dir"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EmailConfig holds settings for proposal delivery.
type EmailConfig struct {
	Provider string         `mapstructure:"provider"` // "sendgrid" or "ses"
	SendGrid SendGridConfig `mapstructure:"sendgrid"`
	SES      SESConfig      `mapstructure:"ses"`
	BCC      []string       `mapstructure:"bcc"`
}

type SendGridConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

type SESConfig struct {
	Region    string `mapstructure:"region"`
	FromEmail string `mapstructure:"from_email"`
}

// AgentConfig holds settings for the LLM tool-calling loop.
type AgentConfig struct {
	APIKey        string  `mapstructure:"api_key"`
	BaseURL       string  `mapstructure:"base_url"`
	Model         string  `mapstructure:"model"`
	MaxToolRounds int     `mapstructure:"max_tool_rounds"`
	Temperature   float32 `mapstructure:"temperature"`
	Timeout       int     `mapstructure:"timeout"` // milliseconds
}

// SessionConfig selects the conversation history backend.
type SessionConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "redis"
	TTL     int    `mapstructure:"ttl"`     // seconds
}

// BlogConfig holds settings for the blog pointer tool.
type BlogConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// MetricsConfig controls the Prometheus endpoint; empty address disables it.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// SessionTTL returns the configured history TTL.
func (s SessionConfig) SessionTTL() time.Duration {
	return time.Duration(s.TTL) * time.Second
}
