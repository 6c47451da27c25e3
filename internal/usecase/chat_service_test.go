package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sareefinder/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecommender struct {
	result *domain.MatchResult
	err    error
	query  string
}

func (s *stubRecommender) Recommend(ctx context.Context, request *domain.SearchRequest) (*domain.MatchResult, error) {
	s.query = request.Query
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestChatService(cache domain.CacheRepository, recommender Recommender, config ChatServiceConfig) *ChatService {
	s := NewChatService(cache, recommender, config, zerolog.Nop())

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	var n atomic.Int64
	s.newID = func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	}
	return s
}

func TestChatService_StartConversation(t *testing.T) {
	cache := NewMockCacheRepository()
	s := newTestChatService(cache, &stubRecommender{}, ChatServiceConfig{})

	conversation, err := s.StartConversation(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "id-1", conversation.ID)
	require.Len(t, conversation.Messages, 1)
	assert.Equal(t, domain.RoleAssistant, conversation.Messages[0].Role)
	assert.Equal(t, greetingMessage, conversation.Messages[0].Content)
	assert.Equal(t, DefaultSuggestions, conversation.Suggestions)
	assert.Equal(t, 30*time.Minute, cache.ttls["conversation:id-1"])

	loaded, err := s.GetConversation(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, conversation.Messages[0].Content, loaded.Messages[0].Content)
}

func TestChatService_ConfiguredTTL(t *testing.T) {
	cache := NewMockCacheRepository()
	s := newTestChatService(cache, &stubRecommender{}, ChatServiceConfig{ConversationTTL: 2 * time.Hour})

	conversation, err := s.StartConversation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cache.ttls["conversation:"+conversation.ID])
}

func TestChatService_SendMessage(t *testing.T) {
	recommender := &stubRecommender{result: &domain.MatchResult{
		ResponseText:    "Here you go",
		Recommendations: seedItems()[:2],
	}}
	s := newTestChatService(NewMockCacheRepository(), recommender, ChatServiceConfig{})
	ctx := context.Background()

	conversation, err := s.StartConversation(ctx)
	require.NoError(t, err)

	updated, err := s.SendMessage(ctx, conversation.ID, "  red silk  ")
	require.NoError(t, err)

	assert.Equal(t, "red silk", recommender.query)
	require.Len(t, updated.Messages, 3)
	assert.Equal(t, domain.RoleUser, updated.Messages[1].Role)
	assert.Equal(t, "red silk", updated.Messages[1].Content)
	assert.Equal(t, domain.RoleAssistant, updated.Messages[2].Role)
	assert.Equal(t, "Here you go", updated.Messages[2].Content)
	assert.Len(t, updated.Messages[2].Recommendations, 2)

	stored, err := s.GetConversation(ctx, conversation.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 3)
}

func TestChatService_SendMessage_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("blank message", func(t *testing.T) {
		s := newTestChatService(NewMockCacheRepository(), &stubRecommender{}, ChatServiceConfig{})
		_, err := s.SendMessage(ctx, "id-1", "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("unknown conversation", func(t *testing.T) {
		s := newTestChatService(NewMockCacheRepository(), &stubRecommender{}, ChatServiceConfig{})
		_, err := s.SendMessage(ctx, "nope", "hello")
		assert.ErrorIs(t, err, domain.ErrConversationNotFound)

		_, err = s.GetConversation(ctx, "")
		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	})

	t.Run("recommender failure yields apology", func(t *testing.T) {
		s := newTestChatService(NewMockCacheRepository(), &stubRecommender{err: errors.New("boom")}, ChatServiceConfig{})
		conversation, err := s.StartConversation(ctx)
		require.NoError(t, err)

		updated, err := s.SendMessage(ctx, conversation.ID, "red")
		require.NoError(t, err)
		last := updated.Messages[len(updated.Messages)-1]
		assert.Equal(t, apologyMessage, last.Content)
		assert.Empty(t, last.Recommendations)
	})

	t.Run("invalid query is returned and not stored", func(t *testing.T) {
		recommender := &stubRecommender{err: fmt.Errorf("%w: too long", domain.ErrInvalidRequest)}
		s := newTestChatService(NewMockCacheRepository(), recommender, ChatServiceConfig{})
		conversation, err := s.StartConversation(ctx)
		require.NoError(t, err)

		_, err = s.SendMessage(ctx, conversation.ID, "x")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)

		stored, err := s.GetConversation(ctx, conversation.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Messages, 1)
	})

	t.Run("cache write failure", func(t *testing.T) {
		cache := NewMockCacheRepository()
		s := newTestChatService(cache, &stubRecommender{result: &domain.MatchResult{ResponseText: "ok"}}, ChatServiceConfig{})
		conversation, err := s.StartConversation(ctx)
		require.NoError(t, err)

		cache.setError = errors.New("cache down")
		_, err = s.SendMessage(ctx, conversation.ID, "red")
		assert.Error(t, err)
	})
}

func TestChatService_TrimsHistory(t *testing.T) {
	recommender := &stubRecommender{result: &domain.MatchResult{ResponseText: "ok"}}
	s := newTestChatService(NewMockCacheRepository(), recommender, ChatServiceConfig{MaxMessages: 4})
	ctx := context.Background()

	conversation, err := s.StartConversation(ctx)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		conversation, err = s.SendMessage(ctx, conversation.ID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	require.Len(t, conversation.Messages, 4)
	assert.Equal(t, "message 1", conversation.Messages[0].Content)
	assert.Equal(t, "message 2", conversation.Messages[2].Content)
}

func TestChatService_SavesAfterCancellation(t *testing.T) {
	cache := NewMockCacheRepository()
	s := newTestChatService(cache, &stubRecommender{result: &domain.MatchResult{ResponseText: "ok"}}, ChatServiceConfig{})

	conversation, err := s.StartConversation(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.SendMessage(ctx, conversation.ID, "red")
	require.NoError(t, err)

	stored, err := s.GetConversation(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 3)
}

// gatedRecommender blocks queries equal to gate until release is closed
type gatedRecommender struct {
	gate    string
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedRecommender(gate string) *gatedRecommender {
	return &gatedRecommender{
		gate:    gate,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedRecommender) Recommend(ctx context.Context, request *domain.SearchRequest) (*domain.MatchResult, error) {
	if request.Query == g.gate {
		g.once.Do(func() { close(g.started) })
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &domain.MatchResult{ResponseText: "reply to " + request.Query}, nil
}

func TestChatService_ConversationsProgressIndependently(t *testing.T) {
	recommender := newGatedRecommender("slow")
	s := newTestChatService(NewMockCacheRepository(), recommender, ChatServiceConfig{})
	ctx := context.Background()

	first, err := s.StartConversation(ctx)
	require.NoError(t, err)
	second, err := s.StartConversation(ctx)
	require.NoError(t, err)

	slowDone := make(chan error, 1)
	go func() {
		_, err := s.SendMessage(ctx, first.ID, "slow")
		slowDone <- err
	}()

	select {
	case <-recommender.started:
	case <-time.After(2 * time.Second):
		t.Fatal("slow recommendation never started")
	}

	fastDone := make(chan error, 1)
	go func() {
		_, err := s.SendMessage(ctx, second.ID, "fast")
		fastDone <- err
	}()

	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		close(recommender.release)
		t.Fatal("second conversation waited on the first conversation's recommendation")
	}

	close(recommender.release)
	require.NoError(t, <-slowDone)

	stored, err := s.GetConversation(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 3)
	assert.Equal(t, 0, s.locks.size())
}

func TestChatService_SameConversationIsSerialized(t *testing.T) {
	recommender := newGatedRecommender("slow")
	s := newTestChatService(NewMockCacheRepository(), recommender, ChatServiceConfig{})
	ctx := context.Background()

	conversation, err := s.StartConversation(ctx)
	require.NoError(t, err)

	slowDone := make(chan error, 1)
	go func() {
		_, err := s.SendMessage(ctx, conversation.ID, "slow")
		slowDone <- err
	}()
	<-recommender.started

	fastDone := make(chan error, 1)
	go func() {
		_, err := s.SendMessage(ctx, conversation.ID, "fast")
		fastDone <- err
	}()

	select {
	case <-fastDone:
		t.Fatal("second message overtook the first in the same conversation")
	case <-time.After(50 * time.Millisecond):
	}

	close(recommender.release)
	require.NoError(t, <-slowDone)
	require.NoError(t, <-fastDone)

	stored, err := s.GetConversation(ctx, conversation.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 5)
	assert.Equal(t, "slow", stored.Messages[1].Content)
	assert.Equal(t, "fast", stored.Messages[3].Content)
	assert.Equal(t, 0, s.locks.size())
}
