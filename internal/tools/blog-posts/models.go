package blogposts

import "notch-chatbot/internal/common/logger"

const ToolName = "fetch_latest_blog_posts"

// Input is accepted for the agent's benefit; the blog check ignores it.
type Input struct {
	Query      string `json:"query,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
