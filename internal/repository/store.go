package repository

import (
	"context"
	"time"

	"recommender/internal/model"
)

// UserStore looks up users
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// ProductStore reads the product catalog
type ProductStore interface {
	ProductsByPriceRange(ctx context.Context, window model.PriceWindow, limit int) ([]model.Product, error)
	ProductsByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)
	ProductsByCategories(ctx context.Context, categories []string, limit int) ([]model.Product, error)
	ProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error)
	SearchProducts(ctx context.Context, text string) ([]model.Product, error)
	TopProducts(ctx context.Context, limit int) ([]model.Product, error)
}

// CategoryStore reads product categories
type CategoryStore interface {
	AllCategories(ctx context.Context) ([]model.Category, error)
	FirstCategories(ctx context.Context, limit int) ([]model.Category, error)
	CategoriesByNames(ctx context.Context, names []string) ([]model.Category, error)
	SearchCategories(ctx context.Context, text string) ([]model.Category, error)
	CategoriesByProductText(ctx context.Context, text string) ([]model.Category, error)
}

// EventStore reads the event agenda
type EventStore interface {
	UpcomingEvents(ctx context.Context, from time.Time, filter model.EventFilter) ([]model.Event, error)
	PopularEvents(ctx context.Context, from time.Time, limit int) ([]model.Event, error)
	SimilarEvents(ctx context.Context, eventType string, excludeID int64, from time.Time, limit int) ([]model.Event, error)
	EventByID(ctx context.Context, id int64) (*model.Event, error)
	EventTypes(ctx context.Context) ([]string, error)
}

// Store is the full read surface used by the services
type Store interface {
	UserStore
	ProductStore
	CategoryStore
	EventStore
	Ping(ctx context.Context) error
}

var (
	_ Store = (*PostgresRepository)(nil)
	_ Store = (*BreakerStore)(nil)
	_ Store = (*CachedStore)(nil)
)
