package service

import (
	"context"

	"recommender/internal/logger"
	"recommender/internal/metrics"
	"recommender/internal/model"
	"recommender/internal/repository"
	"recommender/internal/utils"

	"github.com/sirupsen/logrus"
)

// CatalogStore is what category and product search read
type CatalogStore interface {
	repository.UserStore
	repository.CategoryStore
	ProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error)
	SearchProducts(ctx context.Context, text string) ([]model.Product, error)
	TopProducts(ctx context.Context, limit int) ([]model.Product, error)
}

// CatalogService searches categories and products
type CatalogService struct {
	store CatalogStore
	log   logrus.FieldLogger
}

// NewCatalogService creates a catalog service
func NewCatalogService(store CatalogStore, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

// SearchCategories lists all categories for an empty query, the profile's
// categories when the query names a profile, and text matches otherwise.
func (s *CatalogService) SearchCategories(ctx context.Context, query string, userID *int64) (*model.CategorySearchResponse, error) {
	log := logger.FromContext(ctx, s.log)
	query = utils.NormalizeText(query)

	if userID != nil {
		user, err := s.store.GetUserByID(ctx, *userID)
		if err != nil {
			return nil, storeError(err)
		}
		if user != nil {
			log.WithField("user_genre", UserGenre(user, "")).Debug("category search for known user")
		}
	}

	if query == "" {
		categories, err := s.store.AllCategories(ctx)
		if err != nil {
			return nil, storeError(err)
		}
		return &model.CategorySearchResponse{
			Categories: categories,
			SearchType: model.SearchTypeAll,
		}, nil
	}

	if profile, ok := ResolveQuery(query); ok {
		categories, err := s.store.CategoriesByNames(ctx, profile.Categories)
		if err != nil {
			return nil, storeError(err)
		}
		metrics.RecommendationsServed.WithLabelValues("search_categories").Observe(float64(len(categories)))
		return &model.CategorySearchResponse{
			Categories:          categories,
			SearchType:          model.SearchTypeRecommendation,
			Profile:             profile.Label,
			RecommendationBased: true,
		}, nil
	}

	categories, err := s.store.SearchCategories(ctx, query)
	if err != nil {
		return nil, storeError(err)
	}
	if len(categories) == 0 {
		if categories, err = s.store.CategoriesByProductText(ctx, query); err != nil {
			return nil, storeError(err)
		}
	}

	return &model.CategorySearchResponse{
		Categories: categories,
		SearchType: model.SearchTypeNormal,
	}, nil
}

// SearchProducts filters by category id first, then by text, else lists the best rated products.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, categoryID *int64) (*model.ProductSearchResponse, error) {
	query = utils.NormalizeText(query)

	var (
		products []model.Product
		err      error
	)
	switch {
	case categoryID != nil:
		products, err = s.store.ProductsByCategoryID(ctx, *categoryID)
	case query != "":
		products, err = s.store.SearchProducts(ctx, query)
	default:
		products, err = s.store.TopProducts(ctx, LimitDefaultProducts)
	}
	if err != nil {
		return nil, storeError(err)
	}

	return &model.ProductSearchResponse{Products: products}, nil
}

// UserCategories recommends the categories of the user's profile
func (s *CatalogService) UserCategories(ctx context.Context, userID *int64) (*model.UserCategoriesResponse, error) {
	if userID == nil {
		return nil, ErrUserIDRequired
	}

	user, err := s.store.GetUserByID(ctx, *userID)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := ResolveUser(user)

	var categories []model.Category
	if len(profile.Categories) > 0 {
		if categories, err = s.store.CategoriesByNames(ctx, profile.Categories); err != nil {
			return nil, storeError(err)
		}
	}
	if len(categories) == 0 {
		if categories, err = s.store.FirstCategories(ctx, LimitFallbackCategories); err != nil {
			return nil, storeError(err)
		}
	}
	metrics.RecommendationsServed.WithLabelValues("user_categories").Observe(float64(len(categories)))

	return &model.UserCategoriesResponse{
		Categories: categories,
		Profile:    profile.Label,
		UserGenre:  UserGenre(user, ProfileVisiteur),
		UserLevel:  user.Level,
	}, nil
}
