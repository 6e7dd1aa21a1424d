package handler

import (
	"context"
	"net/http"

	"recommender/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogService is the category and product search behaviour the handler exposes
type CatalogService interface {
	SearchCategories(ctx context.Context, query string, userID *int64) (*model.CategorySearchResponse, error)
	SearchProducts(ctx context.Context, query string, categoryID *int64) (*model.ProductSearchResponse, error)
	UserCategories(ctx context.Context, userID *int64) (*model.UserCategoriesResponse, error)
}

// CatalogHandler handles category and product search requests
type CatalogHandler struct {
	catalog CatalogService
	log     logrus.FieldLogger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogService, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// SearchCategories handles GET /api/search/categories
func (h *CatalogHandler) SearchCategories(c *gin.Context) {
	var query model.CategorySearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.catalog.SearchCategories(c.Request.Context(), query.Query, query.UserID)
	if err != nil {
		respondError(c, h.log, err, "search_categories")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchProducts handles GET /api/search/products
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	var query model.ProductSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.catalog.SearchProducts(c.Request.Context(), query.Query, query.CategoryID)
	if err != nil {
		respondError(c, h.log, err, "search_products")
		return
	}

	c.JSON(http.StatusOK, response)
}

// UserRecommendations handles GET /api/user/recommendations
func (h *CatalogHandler) UserRecommendations(c *gin.Context) {
	var query model.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.catalog.UserCategories(c.Request.Context(), query.UserID)
	if err != nil {
		respondError(c, h.log, err, "user_recommendations")
		return
	}

	c.JSON(http.StatusOK, response)
}
