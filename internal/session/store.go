// Package session keeps per-conversation chat history.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one visible turn of a conversation. Tool traffic is not kept.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds conversation history keyed by session id. History of an
// unknown or expired session is empty, not an error.
type Store interface {
	Create(ctx context.Context) (string, error)
	Append(ctx context.Context, id string, msgs ...Message) error
	History(ctx context.Context, id string) ([]Message, error)
	Delete(ctx context.Context, id string) error
}

func NewID() string {
	return uuid.New().String()
}
