package model

// Category search types
const (
	SearchTypeAll            = "all"
	SearchTypeRecommendation = "recommendation"
	SearchTypeNormal         = "normal"
)

// UserQuery carries the optional user id of anonymous-friendly endpoints
type UserQuery struct {
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
}

// CategorySearchQuery represents GET /api/search/categories parameters
type CategorySearchQuery struct {
	Query  string `form:"q"`
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
}

// ProductSearchQuery represents GET /api/search/products parameters
type ProductSearchQuery struct {
	Query      string `form:"q"`
	CategoryID *int64 `form:"category_id" binding:"omitempty,min=1"`
}

// EventSearchQuery represents GET /api/events/search parameters
type EventSearchQuery struct {
	Query    string   `form:"q"`
	Type     string   `form:"type"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,gt=0"`
}

// CategorySearchResponse represents the category search result
type CategorySearchResponse struct {
	Categories          []Category `json:"categories"`
	SearchType          string     `json:"search_type"`
	Profile             string     `json:"profile,omitempty"`
	RecommendationBased bool       `json:"recommendation_based"`
}

// ProductSearchResponse represents the product search result
type ProductSearchResponse struct {
	Products []Product `json:"products"`
}

// UserCategoriesResponse represents categories recommended to a user
type UserCategoriesResponse struct {
	Categories []Category `json:"categories"`
	Profile    string     `json:"profile"`
	UserGenre  string     `json:"user_genre"`
	UserLevel  int        `json:"user_level"`
}

// EventRecommendationsResponse represents ranked events for a profile
type EventRecommendationsResponse struct {
	Events              []ScoredEvent `json:"events"`
	UserProfile         string        `json:"user_profile"`
	RecommendationBased bool          `json:"recommendation_based"`
	TotalEvents         int           `json:"total_events"`
}

// PopularEventsResponse represents the popular events listing
type PopularEventsResponse struct {
	Events              []Event `json:"events"`
	RecommendationBased bool    `json:"recommendation_based"`
}

// EventSearchResponse represents the event search result
type EventSearchResponse struct {
	Events       []Event `json:"events"`
	SearchQuery  string  `json:"search_query"`
	TotalResults int     `json:"total_results"`
}

// EventTypesResponse lists distinct event types
type EventTypesResponse struct {
	Types []string `json:"types"`
}

// EventDetailsResponse represents one event with similar ones
type EventDetailsResponse struct {
	Event         Event   `json:"event"`
	SimilarEvents []Event `json:"similar_events"`
}
