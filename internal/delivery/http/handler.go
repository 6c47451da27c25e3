package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sareefinder/backend/internal/domain"
)

// RecommendationService answers free-text recommendation queries
type RecommendationService interface {
	Recommend(ctx context.Context, request *domain.SearchRequest) (*domain.MatchResult, error)
}

// ChatService manages conversations
type ChatService interface {
	StartConversation(ctx context.Context) (*domain.Conversation, error)
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)
	SendMessage(ctx context.Context, conversationID, content string) (*domain.Conversation, error)
}

// Handler holds dependencies for HTTP handlers.
// Any dependency may be nil; its endpoints then answer 501.
type Handler struct {
	recommendations RecommendationService
	chat            ChatService
	catalog         domain.CatalogRepository
	logger          zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	recommendations RecommendationService,
	chat ChatService,
	catalog domain.CatalogRepository,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		recommendations: recommendations,
		chat:            chat,
		catalog:         catalog,
		logger:          logger.With().Str("component", "http").Logger(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": "sareefinder-backend",
		"version": "1.0.0",
	}
	if h.catalog != nil {
		response["catalogItems"] = len(h.catalog.Items())
	}
	c.JSON(http.StatusOK, response)
}

// SearchRecommendations handles recommendation search requests
func (h *Handler) SearchRecommendations(c *gin.Context) {
	if h.recommendations == nil {
		notConfigured(c, "recommendation service")
		return
	}

	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.recommendations.Recommend(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListCatalog returns every catalog item in catalog order
func (h *Handler) ListCatalog(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}

	items := h.catalog.Items()
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// CatalogFacets returns the distinct filter values present in the catalog
func (h *Handler) CatalogFacets(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}
	c.JSON(http.StatusOK, h.catalog.FacetValues())
}

// GetCatalogItem returns a single catalog item
func (h *Handler) GetCatalogItem(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog")
		return
	}

	item, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// StartConversation opens a new conversation
func (h *Handler) StartConversation(c *gin.Context) {
	if h.chat == nil {
		notConfigured(c, "chat service")
		return
	}

	conversation, err := h.chat.StartConversation(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conversation)
}

// GetConversation returns a conversation with its history
func (h *Handler) GetConversation(c *gin.Context) {
	if h.chat == nil {
		notConfigured(c, "chat service")
		return
	}

	conversation, err := h.chat.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// SendMessage posts a user message and returns the updated conversation
func (h *Handler) SendMessage(c *gin.Context) {
	if h.chat == nil {
		notConfigured(c, "chat service")
		return
	}

	var request domain.MessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	conversation, err := h.chat.SendMessage(c.Request.Context(), c.Param("id"), request.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversation)
}

func notConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": what + " not configured"})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrConversationNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		status, message = http.StatusTooManyRequests, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, "request timed out"
	case errors.Is(err, context.Canceled):
		status, message = 499, "request cancelled"
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, gin.H{"error": message})
}
