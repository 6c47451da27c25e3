package domain

import "time"

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation
type Message struct {
	ID              string        `json:"id"`
	Role            Role          `json:"role"`
	Content         string        `json:"content"`
	Timestamp       time.Time     `json:"timestamp"`
	Recommendations []CatalogItem `json:"recommendations,omitempty"`
}

// Conversation is the ephemeral chat history for one session
type Conversation struct {
	ID          string    `json:"id"`
	Messages    []Message `json:"messages"`
	Suggestions []string  `json:"suggestions,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SearchRequest represents a recommendation search request
type SearchRequest struct {
	Query string `json:"query"`
}

// MessageRequest represents a new user message in a conversation
type MessageRequest struct {
	Content string `json:"content" binding:"required"`
}
