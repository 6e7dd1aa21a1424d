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

// EventReader is what the event endpoints read
type EventReader interface {
	repository.UserStore
	repository.EventStore
}

// EventService recommends, lists and searches upcoming events
type EventService struct {
	store  EventReader
	ranker *Ranker
	log    logrus.FieldLogger
}

// NewEventService creates an event service
func NewEventService(store EventReader, ranker *Ranker, log logrus.FieldLogger) *EventService {
	return &EventService{store: store, ranker: ranker, log: log}
}

// Recommend scores every upcoming event for the user's profile and keeps the best ones.
// An absent or unknown user is treated as a visitor.
func (s *EventService) Recommend(ctx context.Context, userID *int64) (*model.EventRecommendationsResponse, error) {
	profile := DefaultProfile()

	if userID != nil {
		user, err := s.store.GetUserByID(ctx, *userID)
		if err != nil {
			return nil, storeError(err)
		}
		if user != nil {
			profile = ResolveUser(user)
		}
	}

	events, err := s.store.UpcomingEvents(ctx, s.ranker.now(), model.EventFilter{})
	if err != nil {
		return nil, storeError(err)
	}

	ranked := s.ranker.Rank(s.ranker.ScoreEvents(events, profile), LimitEventRecommendations)
	metrics.RecommendationsServed.WithLabelValues("event_recommendations").Observe(float64(len(ranked)))

	logger.FromContext(ctx, s.log).WithFields(logger.Fields{
		"profile":    profile.Label,
		"candidates": len(events),
		"returned":   len(ranked),
	}).Debug("event recommendations ranked")

	return &model.EventRecommendationsResponse{
		Events:              ranked,
		UserProfile:         profile.Label,
		RecommendationBased: true,
		TotalEvents:         len(events),
	}, nil
}

// Popular lists the best rated upcoming events with the most places left
func (s *EventService) Popular(ctx context.Context) (*model.PopularEventsResponse, error) {
	events, err := s.store.PopularEvents(ctx, s.ranker.now(), LimitPopularEvents)
	if err != nil {
		return nil, storeError(err)
	}
	metrics.RecommendationsServed.WithLabelValues("popular_events").Observe(float64(len(events)))

	return &model.PopularEventsResponse{Events: events}, nil
}

// Search filters upcoming events by text, type and maximum price
func (s *EventService) Search(ctx context.Context, filter model.EventFilter) (*model.EventSearchResponse, error) {
	filter.Query = utils.NormalizeText(filter.Query)

	events, err := s.store.UpcomingEvents(ctx, s.ranker.now(), filter)
	if err != nil {
		return nil, storeError(err)
	}

	return &model.EventSearchResponse{
		Events:       events,
		SearchQuery:  filter.Query,
		TotalResults: len(events),
	}, nil
}

// Types lists the distinct event types
func (s *EventService) Types(ctx context.Context) (*model.EventTypesResponse, error) {
	types, err := s.store.EventTypes(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return &model.EventTypesResponse{Types: types}, nil
}

// Details returns one event with a few upcoming events of the same type
func (s *EventService) Details(ctx context.Context, id int64) (*model.EventDetailsResponse, error) {
	event, err := s.store.EventByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	similar, err := s.store.SimilarEvents(ctx, event.Type, event.ID, s.ranker.now(), LimitSimilarEvents)
	if err != nil {
		return nil, storeError(err)
	}

	return &model.EventDetailsResponse{
		Event:         *event,
		SimilarEvents: similar,
	}, nil
}
