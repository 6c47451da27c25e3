package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sareefinder/backend/internal/domain"
)

const (
	greetingMessage = "Hello! I can help you find the perfect saree. " +
		"Tell me what you're looking for, like a color, fabric, or occasion."
	apologyMessage = "I'm sorry, I couldn't fetch recommendations right now. Please try again in a moment."
)

// DefaultSuggestions are the prompt chips offered with a new conversation
var DefaultSuggestions = []string{
	"Red silk saree for a wedding",
	"Something casual in cotton",
	"Festive sarees in purple",
	"Lightweight linen for the office",
}

// Recommender produces recommendations for a query
type Recommender interface {
	Recommend(ctx context.Context, request *domain.SearchRequest) (*domain.MatchResult, error)
}

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	ConversationTTL time.Duration
	MaxMessages     int // Oldest messages beyond this are dropped; 0 keeps 100
}

// ChatService keeps ephemeral conversation history in the cache
type ChatService struct {
	cache       domain.CacheRepository
	recommender Recommender
	ttl         time.Duration
	maxMessages int
	logger      zerolog.Logger

	now   func() time.Time
	newID func() string

	locks *conversationLocks
}

// conversationLocks hands out one mutex per conversation ID.
// Entries are dropped once no caller holds or waits on them.
type conversationLocks struct {
	mu    sync.Mutex
	locks map[string]*conversationLock
}

type conversationLock struct {
	mu   sync.Mutex
	refs int
}

func newConversationLocks() *conversationLocks {
	return &conversationLocks{locks: make(map[string]*conversationLock)}
}

// lock blocks until the conversation is free and returns its unlock function
func (l *conversationLocks) lock(id string) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &conversationLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *conversationLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// NewChatService creates a new chat service
func NewChatService(
	cache domain.CacheRepository,
	recommender Recommender,
	config ChatServiceConfig,
	logger zerolog.Logger,
) *ChatService {
	ttl := config.ConversationTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	maxMessages := config.MaxMessages
	if maxMessages <= 0 {
		maxMessages = 100
	}

	return &ChatService{
		cache:       cache,
		recommender: recommender,
		ttl:         ttl,
		maxMessages: maxMessages,
		logger:      logger.With().Str("component", "chat").Logger(),
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
		locks:       newConversationLocks(),
	}
}

// StartConversation creates a conversation holding the assistant greeting
func (s *ChatService) StartConversation(ctx context.Context) (*domain.Conversation, error) {
	now := s.now()
	conversation := &domain.Conversation{
		ID: s.newID(),
		Messages: []domain.Message{{
			ID:        s.newID(),
			Role:      domain.RoleAssistant,
			Content:   greetingMessage,
			Timestamp: now,
		}},
		Suggestions: append([]string(nil), DefaultSuggestions...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.save(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// GetConversation returns a stored conversation
func (s *ChatService) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.load(ctx, id)
}

// SendMessage appends a user message and the assistant's reply.
// A recommendation failure yields an apologetic reply rather than an error.
// Messages to one conversation are applied in order within this process;
// different conversations proceed independently.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, content string) (*domain.Conversation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message is empty", domain.ErrInvalidRequest)
	}

	unlock := s.locks.lock(conversationID)
	defer unlock()

	conversation, err := s.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	conversation.Messages = append(conversation.Messages, domain.Message{
		ID:        s.newID(),
		Role:      domain.RoleUser,
		Content:   content,
		Timestamp: s.now(),
	})

	reply := domain.Message{ID: s.newID(), Role: domain.RoleAssistant}

	result, err := s.recommender.Recommend(ctx, &domain.SearchRequest{Query: content})
	switch {
	case err == nil:
		reply.Content = result.ResponseText
		reply.Recommendations = result.Recommendations
	case errors.Is(err, domain.ErrInvalidRequest):
		return nil, err
	default:
		s.logger.Error().Err(err).Str("conversation_id", conversationID).Msg("recommendation failed")
		reply.Content = apologyMessage
	}

	reply.Timestamp = s.now()
	conversation.Messages = append(conversation.Messages, reply)
	if excess := len(conversation.Messages) - s.maxMessages; excess > 0 {
		conversation.Messages = conversation.Messages[excess:]
	}
	conversation.UpdatedAt = reply.Timestamp

	// Saved even when the request context is already cancelled
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.save(saveCtx, conversation); err != nil {
		return nil, err
	}

	return conversation, nil
}

func conversationKey(id string) string {
	return "conversation:" + id
}

func (s *ChatService) load(ctx context.Context, id string) (*domain.Conversation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrConversationNotFound
	}

	data, err := s.cache.Get(ctx, conversationKey(id))
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil, fmt.Errorf("%w: %s", domain.ErrConversationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	var conversation domain.Conversation
	if err := json.Unmarshal(data, &conversation); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return &conversation, nil
}

func (s *ChatService) save(ctx context.Context, conversation *domain.Conversation) error {
	data, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	if err := s.cache.Set(ctx, conversationKey(conversation.ID), data, s.ttl); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}
