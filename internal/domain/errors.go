package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrItemNotFound is returned when a catalog item does not exist
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrInvalidItem is returned when a catalog item is missing required attributes
	ErrInvalidItem = errors.New("invalid catalog item")

	// ErrDuplicateItem is returned when two catalog items share an identifier
	ErrDuplicateItem = errors.New("duplicate catalog item id")

	// ErrInvalidSynonymTable is returned when a facet synonym table is malformed
	ErrInvalidSynonymTable = errors.New("invalid synonym table")

	// ErrConversationNotFound is returned when a conversation is unknown or expired
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrAssistantFailure is returned when the external recommendation service fails
	ErrAssistantFailure = errors.New("assistant request failed")
)
