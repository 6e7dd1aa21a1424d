package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recommender/internal/logger"
	"recommender/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChat struct {
	lastRequest model.ChatRequest
	lastUserID  *int64
	response    *model.ChatResponse
	products    *model.UserProductsResponse
	err         error
}

func (s *stubChat) HandleMessage(_ context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	s.lastRequest = req
	return s.response, s.err
}

func (s *stubChat) Suggestions(query string) model.SuggestionsResponse {
	return model.SuggestionsResponse{Suggestions: []string{"echo " + query}, Type: "general"}
}

func (s *stubChat) UserProducts(_ context.Context, userID *int64) (*model.UserProductsResponse, error) {
	s.lastUserID = userID
	return s.products, s.err
}

type stubCatalog struct {
	lastQuery string
	lastID    *int64
	err       error
}

func (s *stubCatalog) SearchCategories(_ context.Context, query string, userID *int64) (*model.CategorySearchResponse, error) {
	s.lastQuery, s.lastID = query, userID
	if s.err != nil {
		return nil, s.err
	}
	return &model.CategorySearchResponse{Categories: []model.Category{{ID: 1, Name: "Beauté"}}, SearchType: "normal"}, nil
}

func (s *stubCatalog) SearchProducts(_ context.Context, query string, categoryID *int64) (*model.ProductSearchResponse, error) {
	s.lastQuery, s.lastID = query, categoryID
	if s.err != nil {
		return nil, s.err
	}
	return &model.ProductSearchResponse{Products: []model.Product{}}, nil
}

func (s *stubCatalog) UserCategories(_ context.Context, userID *int64) (*model.UserCategoriesResponse, error) {
	s.lastID = userID
	if s.err != nil {
		return nil, s.err
	}
	return &model.UserCategoriesResponse{Profile: "homme_jeune", UserGenre: "homme", UserLevel: 40}, nil
}

type stubEvents struct {
	lastUserID *int64
	lastFilter model.EventFilter
	lastID     int64
	err        error
}

func (s *stubEvents) Recommend(_ context.Context, userID *int64) (*model.EventRecommendationsResponse, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return &model.EventRecommendationsResponse{UserProfile: "visiteur", RecommendationBased: true}, nil
}

func (s *stubEvents) Popular(context.Context) (*model.PopularEventsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.PopularEventsResponse{Events: []model.Event{}}, nil
}

func (s *stubEvents) Search(_ context.Context, filter model.EventFilter) (*model.EventSearchResponse, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return &model.EventSearchResponse{Events: []model.Event{}, SearchQuery: filter.Query}, nil
}

func (s *stubEvents) Types(context.Context) (*model.EventTypesResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.EventTypesResponse{Types: []string{"concert", "sport"}}, nil
}

func (s *stubEvents) Details(_ context.Context, id int64) (*model.EventDetailsResponse, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return &model.EventDetailsResponse{Event: model.Event{ID: id, Title: "Festival"}, SimilarEvents: []model.Event{}}, nil
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubBreaker struct {
	state gobreaker.State
}

func (s stubBreaker) State() gobreaker.State {
	return s.state
}

type stubs struct {
	chat    *stubChat
	catalog *stubCatalog
	events  *stubEvents
}

func newTestRouter(store Pinger) (*gin.Engine, *stubs) {
	st := &stubs{chat: &stubChat{}, catalog: &stubCatalog{}, events: &stubEvents{}}
	router := NewRouter(RouterConfig{
		Chat:           st.chat,
		Catalog:        st.catalog,
		Events:         st.events,
		Store:          store,
		Build:          BuildInfo{Version: "1.2.3", BuildTime: "today", GitCommit: "abc"},
		AllowedOrigins: "*",
		Log:            logger.Discard(),
	})
	return router, st
}

func perform(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}
