package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"recommender/internal/config"
	"recommender/internal/metrics"
	"recommender/internal/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned when the database cannot be reached or the breaker is open
var ErrUnavailable = errors.New("store unavailable")

// BreakerStore guards a Store with a circuit breaker. Connection failures trip
// the breaker; while it is open every call fails fast with ErrUnavailable.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
	log  logrus.FieldLogger
}

// NewBreakerStore wraps next with a breaker named name
func NewBreakerStore(name string, next Store, cfg config.BreakerConfig, log logrus.FieldLogger) *BreakerStore {
	metrics.StoreBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Only connection-level failures count against the breaker
		IsSuccessful: func(err error) bool {
			return err == nil || !isConnectionError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("store circuit breaker state changed")
			metrics.StoreBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &BreakerStore{next: next, cb: cb, log: log}
}

// State reports the current breaker state
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func execute[T any](s *BreakerStore, fn func() (T, error)) (T, error) {
	var zero T

	result, err := s.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) || isConnectionError(err) {
			return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// SQLSTATE class 08 is connection exception, 57P0x is server shutdown
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return pqErr.Code.Class() == "08" || code == "57P01" || code == "57P02" || code == "57P03"
	}
	return false
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (s *BreakerStore) Ping(ctx context.Context) error {
	_, err := execute(s, func() (struct{}, error) {
		return struct{}{}, s.next.Ping(ctx)
	})
	return err
}

func (s *BreakerStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return execute(s, func() (*model.User, error) { return s.next.GetUserByID(ctx, id) })
}

func (s *BreakerStore) ProductsByPriceRange(ctx context.Context, window model.PriceWindow, limit int) ([]model.Product, error) {
	return execute(s, func() ([]model.Product, error) { return s.next.ProductsByPriceRange(ctx, window, limit) })
}

func (s *BreakerStore) ProductsByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	return execute(s, func() ([]model.Product, error) { return s.next.ProductsByCategory(ctx, category, limit) })
}

func (s *BreakerStore) ProductsByCategories(ctx context.Context, categories []string, limit int) ([]model.Product, error) {
	return execute(s, func() ([]model.Product, error) { return s.next.ProductsByCategories(ctx, categories, limit) })
}

func (s *BreakerStore) ProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return execute(s, func() ([]model.Product, error) { return s.next.ProductsByCategoryID(ctx, categoryID) })
}

func (s *BreakerStore) SearchProducts(ctx context.Context, text string) ([]model.Product, error) {
	return execute(s, func() ([]model.Product, error) { return s.next.SearchProducts(ctx, text) })
}

func (s *BreakerStore) TopProducts(ctx context.Context, limit int) ([]model.Product, error) {
	return execute(s, func() ([]model.Product, error) { return s.next.TopProducts(ctx, limit) })
}

func (s *BreakerStore) AllCategories(ctx context.Context) ([]model.Category, error) {
	return execute(s, func() ([]model.Category, error) { return s.next.AllCategories(ctx) })
}

func (s *BreakerStore) FirstCategories(ctx context.Context, limit int) ([]model.Category, error) {
	return execute(s, func() ([]model.Category, error) { return s.next.FirstCategories(ctx, limit) })
}

func (s *BreakerStore) CategoriesByNames(ctx context.Context, names []string) ([]model.Category, error) {
	return execute(s, func() ([]model.Category, error) { return s.next.CategoriesByNames(ctx, names) })
}

func (s *BreakerStore) SearchCategories(ctx context.Context, text string) ([]model.Category, error) {
	return execute(s, func() ([]model.Category, error) { return s.next.SearchCategories(ctx, text) })
}

func (s *BreakerStore) CategoriesByProductText(ctx context.Context, text string) ([]model.Category, error) {
	return execute(s, func() ([]model.Category, error) { return s.next.CategoriesByProductText(ctx, text) })
}

func (s *BreakerStore) UpcomingEvents(ctx context.Context, from time.Time, filter model.EventFilter) ([]model.Event, error) {
	return execute(s, func() ([]model.Event, error) { return s.next.UpcomingEvents(ctx, from, filter) })
}

func (s *BreakerStore) PopularEvents(ctx context.Context, from time.Time, limit int) ([]model.Event, error) {
	return execute(s, func() ([]model.Event, error) { return s.next.PopularEvents(ctx, from, limit) })
}

func (s *BreakerStore) SimilarEvents(ctx context.Context, eventType string, excludeID int64, from time.Time, limit int) ([]model.Event, error) {
	return execute(s, func() ([]model.Event, error) {
		return s.next.SimilarEvents(ctx, eventType, excludeID, from, limit)
	})
}

func (s *BreakerStore) EventByID(ctx context.Context, id int64) (*model.Event, error) {
	return execute(s, func() (*model.Event, error) { return s.next.EventByID(ctx, id) })
}

func (s *BreakerStore) EventTypes(ctx context.Context) ([]string, error) {
	return execute(s, func() ([]string, error) { return s.next.EventTypes(ctx) })
}
