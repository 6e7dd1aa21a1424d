package service

import (
	"context"
	"testing"

	"recommender/internal/logger"
	"recommender/internal/model"
	"recommender/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventStore() *fakeStore {
	return &fakeStore{
		users: map[int64]*model.User{
			1: {ID: 1, Genre: strPtr("femme"), Level: 60, Points: 200},
			2: {ID: 2, Genre: strPtr("homme"), Level: 10},
		},
		events: []model.Event{
			{ID: 1, Title: "Match de foot", Type: "SPORT", Price: 30, Rating: 4.6, Date: daysFromNow(3)},
			{ID: 2, Title: "Pièce classique", Type: "THEATRE", Price: 40, Rating: 4.5, Date: daysFromNow(6)},
			{ID: 3, Title: "Festival rock", Type: "CONCERT", Price: 35, Rating: 4.8, Date: daysFromNow(20)},
			{ID: 4, Title: "Dégustation", Type: "GASTRONOMIE", Price: 90, Rating: 4.0, Date: daysFromNow(40)},
			{ID: 5, Title: "Salsa", Type: "DANSE", Price: 20, Rating: 4.3, Date: daysFromNow(1)},
			{ID: 6, Title: "Autre pièce", Type: "THEATRE", Price: 25, Rating: 4.1, Date: daysFromNow(9)},
		},
	}
}

func newTestEventService(store EventReader) *EventService {
	return NewEventService(store, NewRanker(fixedClock), logger.Discard())
}

func eventIDs(events []model.ScoredEvent) []int64 {
	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestEventService_Recommend(t *testing.T) {
	ctx := context.Background()
	femme := int64(1)
	jeune := int64(2)
	unknown := int64(404)

	tests := []struct {
		name        string
		userID      *int64
		wantProfile string
		wantIDs     []int64
	}{
		// femme: THEATRE 3+2+0.5+2=7.5, DANSE 3+1+0.3+2=6.3, THEATRE(6) 3+2+0.1+1=6.1, CONCERT 3+2+0.8=5.8
		{name: "femme", userID: &femme, wantProfile: ProfileFemme, wantIDs: []int64{2, 5, 6, 3}},
		// jeune: SPORT 3+2+0.6+2=7.6, CONCERT 3+2+0.8=5.8, THEATRE 0+2+0.5+2=4.5, DANSE 0+2+0.3+2=4.3
		{name: "low level user", userID: &jeune, wantProfile: ProfileJeune, wantIDs: []int64{1, 3, 2, 5}},
		// visiteur: THEATRE 7.5, THEATRE(6) 6.1, CONCERT 5.8, SPORT 0+2+0.6+2=4.6
		{name: "anonymous", userID: nil, wantProfile: ProfileVisiteur, wantIDs: []int64{2, 6, 3, 1}},
		{name: "unknown user", userID: &unknown, wantProfile: ProfileVisiteur, wantIDs: []int64{2, 6, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := eventStore()
			resp, err := newTestEventService(store).Recommend(ctx, tt.userID)
			require.NoError(t, err)

			assert.Equal(t, tt.wantProfile, resp.UserProfile)
			assert.True(t, resp.RecommendationBased)
			assert.Equal(t, 6, resp.TotalEvents)
			assert.Equal(t, tt.wantIDs, eventIDs(resp.Events))
			assert.Equal(t, fixedNow, store.lastFrom)
		})
	}
}

func TestEventService_RecommendReasons(t *testing.T) {
	femme := int64(1)
	resp, err := newTestEventService(eventStore()).Recommend(context.Background(), &femme)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Events)

	top := resp.Events[0]
	assert.InDelta(t, 7.5, top.Score, 1e-9)
	assert.Equal(t, "matches preferences • well rated", top.Reason)
}

func TestEventService_Popular(t *testing.T) {
	store := eventStore()
	resp, err := newTestEventService(store).Popular(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Events, 6)
	assert.False(t, resp.RecommendationBased)
	assert.Equal(t, LimitPopularEvents, store.lastLimit)
}

func TestEventService_Search(t *testing.T) {
	store := eventStore()
	maxPrice := 30.0

	resp, err := newTestEventService(store).Search(context.Background(), model.EventFilter{
		Query:    "  PIÈCE ",
		Type:     "THEATRE",
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "pièce", resp.SearchQuery)
	assert.Equal(t, "pièce", store.lastFilter.Query)
	assert.Equal(t, 1, resp.TotalResults)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, int64(6), resp.Events[0].ID)
}

func TestEventService_Types(t *testing.T) {
	resp, err := newTestEventService(eventStore()).Types(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SPORT", "THEATRE", "CONCERT", "GASTRONOMIE", "DANSE"}, resp.Types)
}

func TestEventService_Details(t *testing.T) {
	ctx := context.Background()

	t.Run("found with similar", func(t *testing.T) {
		store := eventStore()
		resp, err := newTestEventService(store).Details(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Pièce classique", resp.Event.Title)
		require.Len(t, resp.SimilarEvents, 1)
		assert.Equal(t, int64(6), resp.SimilarEvents[0].ID)
		assert.Equal(t, LimitSimilarEvents, store.lastLimit)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := newTestEventService(eventStore()).Details(ctx, 99)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("store unavailable", func(t *testing.T) {
		store := eventStore()
		store.err = repository.ErrUnavailable
		_, err := newTestEventService(store).Details(ctx, 2)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}
