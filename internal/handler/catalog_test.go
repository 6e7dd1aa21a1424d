package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"recommender/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCategoriesHandler(t *testing.T) {
	router, st := newTestRouter(nil)

	w, body := perform(t, router, http.MethodGet, "/api/search/categories?q=cadeau%20femme&user_id=4", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cadeau femme", st.catalog.lastQuery)
	require.NotNil(t, st.catalog.lastID)
	assert.Equal(t, int64(4), *st.catalog.lastID)
	assert.Equal(t, "normal", body["search_type"])
	assert.Len(t, body["categories"], 1)
}

func TestSearchProductsHandler(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantID     *int64
	}{
		{name: "text only", target: "/api/search/products?q=jean", wantStatus: http.StatusOK},
		{name: "by category", target: "/api/search/products?category_id=8", wantStatus: http.StatusOK, wantID: int64Ptr(8)},
		{name: "invalid category", target: "/api/search/products?category_id=abc", wantStatus: http.StatusBadRequest},
		{name: "negative category", target: "/api/search/products?category_id=-2", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, st := newTestRouter(nil)

			w, _ := perform(t, router, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantID, st.catalog.lastID)
			}
		})
	}
}

func TestSearchProductsHidesStoreFailure(t *testing.T) {
	router, st := newTestRouter(nil)
	st.catalog.err = fmt.Errorf("failed to fetch products by search: %w",
		errors.New(`pq: column "nom" does not exist`))

	w, body := perform(t, router, http.MethodGet, "/api/search/products?q=jean", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erreur interne", body["error"])
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.NotContains(t, w.Body.String(), "failed to fetch")
}

func TestUserRecommendationsHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		router, _ := newTestRouter(nil)

		w, body := perform(t, router, http.MethodGet, "/api/user/recommendations?user_id=1", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "homme_jeune", body["profile"])
		assert.Equal(t, "homme", body["user_genre"])
		assert.EqualValues(t, 40, body["user_level"])
	})

	t.Run("unknown user", func(t *testing.T) {
		router, st := newTestRouter(nil)
		st.catalog.err = service.ErrUserNotFound

		w, body := perform(t, router, http.MethodGet, "/api/user/recommendations?user_id=1", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", body["error"])
	})
}

func int64Ptr(v int64) *int64 {
	return &v
}
