package service

import (
	"context"
	"strings"
	"time"

	"recommender/internal/model"
)

// fakeStore is an in-memory catalog that records the arguments it was queried with
type fakeStore struct {
	users      map[int64]*model.User
	products   []model.Product
	categories []model.Category
	events     []model.Event

	err         error
	categoryErr error

	lastWindow     *model.PriceWindow
	lastCategories []string
	lastFilter     model.EventFilter
	lastFrom       time.Time
	lastLimit      int
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func (f *fakeStore) ProductsByPriceRange(ctx context.Context, window model.PriceWindow, limit int) ([]model.Product, error) {
	f.lastWindow = &window
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Product
	for _, p := range f.products {
		if p.Price <= window.Max && (window.Min == nil || p.Price >= *window.Min) {
			out = append(out, p)
		}
	}
	return limitProducts(out, limit), nil
}

func (f *fakeStore) ProductsByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	var out []model.Product
	for _, p := range f.products {
		if p.CategoryName == category {
			out = append(out, p)
		}
	}
	return limitProducts(out, limit), nil
}

func (f *fakeStore) ProductsByCategories(ctx context.Context, categories []string, limit int) ([]model.Product, error) {
	f.lastCategories = categories
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Product
	for _, p := range f.products {
		if containsString(categories, p.CategoryName) {
			out = append(out, p)
		}
	}
	return limitProducts(out, limit), nil
}

func (f *fakeStore) ProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, f.err
}

func (f *fakeStore) SearchProducts(ctx context.Context, text string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), text) {
			out = append(out, p)
		}
	}
	return out, f.err
}

func (f *fakeStore) TopProducts(ctx context.Context, limit int) ([]model.Product, error) {
	f.lastLimit = limit
	return limitProducts(f.products, limit), f.err
}

func (f *fakeStore) AllCategories(ctx context.Context) ([]model.Category, error) {
	return f.categories, f.err
}

func (f *fakeStore) FirstCategories(ctx context.Context, limit int) ([]model.Category, error) {
	f.lastLimit = limit
	if len(f.categories) > limit {
		return f.categories[:limit], f.err
	}
	return f.categories, f.err
}

func (f *fakeStore) CategoriesByNames(ctx context.Context, names []string) ([]model.Category, error) {
	f.lastCategories = names
	var out []model.Category
	for _, c := range f.categories {
		if containsString(names, c.Name) {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeStore) SearchCategories(ctx context.Context, text string) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		if strings.Contains(strings.ToLower(c.Name), text) {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeStore) CategoriesByProductText(ctx context.Context, text string) ([]model.Category, error) {
	seen := map[int64]bool{}
	var out []model.Category
	for _, p := range f.products {
		if !strings.Contains(strings.ToLower(p.Name), text) || seen[p.CategoryID] {
			continue
		}
		for _, c := range f.categories {
			if c.ID == p.CategoryID {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}
	return out, f.err
}

func (f *fakeStore) UpcomingEvents(ctx context.Context, from time.Time, filter model.EventFilter) ([]model.Event, error) {
	f.lastFrom = from
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Event
	for _, e := range f.events {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.MaxPrice != nil && e.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) PopularEvents(ctx context.Context, from time.Time, limit int) ([]model.Event, error) {
	f.lastFrom = from
	f.lastLimit = limit
	if len(f.events) > limit {
		return f.events[:limit], f.err
	}
	return f.events, f.err
}

func (f *fakeStore) SimilarEvents(ctx context.Context, eventType string, excludeID int64, from time.Time, limit int) ([]model.Event, error) {
	f.lastLimit = limit
	var out []model.Event
	for _, e := range f.events {
		if e.Type == eventType && e.ID != excludeID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, f.err
}

func (f *fakeStore) EventByID(ctx context.Context, id int64) (*model.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.events {
		if f.events[i].ID == id {
			event := f.events[i]
			return &event, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) EventTypes(ctx context.Context) ([]string, error) {
	var out []string
	for _, e := range f.events {
		if !containsString(out, e.Type) {
			out = append(out, e.Type)
		}
	}
	return out, f.err
}

func limitProducts(products []model.Product, limit int) []model.Product {
	if len(products) > limit {
		return products[:limit]
	}
	return products
}
