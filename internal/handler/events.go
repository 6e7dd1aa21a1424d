package handler

import (
	"context"
	"net/http"
	"strconv"

	"recommender/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// EventService is the event behaviour the handler exposes
type EventService interface {
	Recommend(ctx context.Context, userID *int64) (*model.EventRecommendationsResponse, error)
	Popular(ctx context.Context) (*model.PopularEventsResponse, error)
	Search(ctx context.Context, filter model.EventFilter) (*model.EventSearchResponse, error)
	Types(ctx context.Context) (*model.EventTypesResponse, error)
	Details(ctx context.Context, id int64) (*model.EventDetailsResponse, error)
}

// EventHandler handles event HTTP requests
type EventHandler struct {
	events EventService
	log    logrus.FieldLogger
}

// NewEventHandler creates a new event handler
func NewEventHandler(events EventService, log logrus.FieldLogger) *EventHandler {
	return &EventHandler{events: events, log: log}
}

// Recommendations handles GET /api/events/recommendations
func (h *EventHandler) Recommendations(c *gin.Context) {
	var query model.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.events.Recommend(c.Request.Context(), query.UserID)
	if err != nil {
		respondError(c, h.log, err, "event_recommendations")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Popular handles GET /api/events/popular
func (h *EventHandler) Popular(c *gin.Context) {
	response, err := h.events.Popular(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "popular_events")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Search handles GET /api/events/search
func (h *EventHandler) Search(c *gin.Context) {
	var query model.EventSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.events.Search(c.Request.Context(), model.EventFilter{
		Query:    query.Query,
		Type:     query.Type,
		MaxPrice: query.MaxPrice,
	})
	if err != nil {
		respondError(c, h.log, err, "search_events")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Types handles GET /api/events/types
func (h *EventHandler) Types(c *gin.Context) {
	response, err := h.events.Types(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "event_types")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Details handles GET /api/events/:id
func (h *EventHandler) Details(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	response, err := h.events.Details(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, h.log, err, "event_details")
		return
	}

	c.JSON(http.StatusOK, response)
}
