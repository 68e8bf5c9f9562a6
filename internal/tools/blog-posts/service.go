package blogposts

import (
	"context"
	"fmt"

	"notch-chatbot/internal/common/config"
	commonhttp "notch-chatbot/internal/common/http"
	"notch-chatbot/internal/common/logger"
)

const (
	msgAvailable   = "Blog posts are available at %s. The blog covers topics in AI, software development, best practices, and case studies."
	msgUnavailable = "Unable to fetch blog posts at this time. Visit %s for latest content. Error: %s"
)

type Service struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewService(deps ServiceDependencies, cfg *Config) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config: cfg,
		client: commonhttp.NewClient(cfg.Timeout),
		logger: log,
	}
}

// Fetch checks the blog page and answers with a pointer to it. Sentences
// always name the public blog address, whatever URL is checked.
func (s *Service) Fetch(ctx context.Context, input *Input) string {
	resp, err := s.client.Get(ctx, s.config.URL)
	if err == nil && !resp.IsSuccess() {
		err = fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.config.URL)
	}
	if err != nil {
		s.logger.Warn("Blog check failed", map[string]interface{}{
			"url":   s.config.URL,
			"error": err.Error(),
		})
		return fmt.Sprintf(msgUnavailable, config.DefaultBlogURL, err.Error())
	}

	s.logger.Debug("Blog check succeeded", map[string]interface{}{
		"query":      input.Query,
		"maxResults": input.MaxResults,
	})
	return fmt.Sprintf(msgAvailable, config.DefaultBlogURL)
}
