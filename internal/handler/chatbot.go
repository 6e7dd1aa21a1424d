package handler

import (
	"context"
	"net/http"

	"recommender/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ChatService is the chatbot behaviour the handler exposes
type ChatService interface {
	HandleMessage(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
	Suggestions(query string) model.SuggestionsResponse
	UserProducts(ctx context.Context, userID *int64) (*model.UserProductsResponse, error)
}

// ChatbotHandler handles chatbot HTTP requests
type ChatbotHandler struct {
	chat ChatService
	log  logrus.FieldLogger
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(chat ChatService, log logrus.FieldLogger) *ChatbotHandler {
	return &ChatbotHandler{chat: chat, log: log}
}

// Message handles POST /api/chatbot/message
func (h *ChatbotHandler) Message(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.chat.HandleMessage(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "chat_message")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Suggestions handles GET /api/chatbot/suggestions
func (h *ChatbotHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Suggestions(c.Query("q")))
}

// UserProducts handles GET /api/chatbot/user/products
func (h *ChatbotHandler) UserProducts(c *gin.Context) {
	var query model.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.chat.UserProducts(c.Request.Context(), query.UserID)
	if err != nil {
		respondError(c, h.log, err, "chat_user_products")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Health handles GET /api/chatbot/health
func (h *ChatbotHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Chatbot API is running"})
}
