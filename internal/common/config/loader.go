// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultSendGridBaseURL = "https://api.sendgrid.com"
	DefaultFromEmail       = "proposals@wearenotch.com"
	DefaultFromName        = "Notch Team"
	DefaultBlogURL         = "https://www.wearenotch.com/resources/blog"
)

// DefaultBCC are the internal recipients copied on every proposal.
var DefaultBCC = []string{
	"darko.spoljaric@wearenotch.com",
	"sanja.buterin@wearenotch.com",
}

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top and
// applies environment overrides. A missing config file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// NOTCH_EMAIL_SENDGRID_API_KEY overrides email.sendgrid.api_key
	v.SetEnvPrefix("notch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working directory.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env", // tests in test/e2e/
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig falls back to the conventional variable names the
// deployment already uses.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.Email.SendGrid.APIKey, "SENDGRID_API_KEY")
	setIfEmpty(&cfg.Email.SendGrid.FromEmail, "SENDGRID_FROM_EMAIL")
	setIfEmpty(&cfg.Agent.APIKey, "OPENAI_API_KEY")
	setIfEmpty(&cfg.Agent.BaseURL, "OPENAI_BASE_URL")
	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")
	setIfEmpty(&cfg.Database.Redis.Address, "REDIS_ADDRESS")
	setIfEmpty(&cfg.Email.SES.Region, "AWS_REGION")
}

func setIfEmpty(dst *string, envKey string) {
	if *dst != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*dst = val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "notch-chatbot"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}

	if cfg.Knowledge.Source == "" {
		cfg.Knowledge.Source = "files"
	}
	if cfg.Knowledge.DataDir == "" {
		cfg.Knowledge.DataDir = "data"
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "sendgrid"
	}
	if cfg.Email.SendGrid.BaseURL == "" {
		cfg.Email.SendGrid.BaseURL = DefaultSendGridBaseURL
	}
	if cfg.Email.SendGrid.FromEmail == "" {
		cfg.Email.SendGrid.FromEmail = DefaultFromEmail
	}
	if cfg.Email.SendGrid.FromName == "" {
		cfg.Email.SendGrid.FromName = DefaultFromName
	}
	if cfg.Email.SendGrid.Timeout == 0 {
		cfg.Email.SendGrid.Timeout = 30000
	}
	if cfg.Email.SES.FromEmail == "" {
		cfg.Email.SES.FromEmail = cfg.Email.SendGrid.FromEmail
	}
	if cfg.Email.BCC == nil {
		cfg.Email.BCC = append([]string(nil), DefaultBCC...)
	}

	if cfg.Agent.Model == "" {
		cfg.Agent.Model = "gpt-4o"
	}
	if cfg.Agent.MaxToolRounds == 0 {
		cfg.Agent.MaxToolRounds = 6
	}
	if cfg.Agent.Timeout == 0 {
		cfg.Agent.Timeout = 60000
	}

	if cfg.Session.Backend == "" {
		cfg.Session.Backend = "memory"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 86400
	}

	if cfg.Blog.URL == "" {
		cfg.Blog.URL = DefaultBlogURL
	}
	if cfg.Blog.Timeout == 0 {
		cfg.Blog.Timeout = 10000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

// validateConfig validates critical configuration fields. A missing SendGrid key
// is allowed: the offer tool reports it to the user instead.
func validateConfig(cfg *Config) error {
	switch cfg.Knowledge.Source {
	case "files":
		if cfg.Knowledge.DataDir == "" {
			return fmt.Errorf("knowledge.data_dir is required")
		}
	case "postgres":
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	default:
		return fmt.Errorf("knowledge.source must be files or postgres, got %q", cfg.Knowledge.Source)
	}

	switch cfg.Email.Provider {
	case "sendgrid":
	case "ses":
		if cfg.Email.SES.Region == "" {
			return fmt.Errorf("email.ses.region is required")
		}
	default:
		return fmt.Errorf("email.provider must be sendgrid or ses, got %q", cfg.Email.Provider)
	}

	switch cfg.Session.Backend {
	case "memory":
	case "redis":
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required")
		}
	default:
		return fmt.Errorf("session.backend must be memory or redis, got %q", cfg.Session.Backend)
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
