package model

// ChatRequest represents a chatbot message
type ChatRequest struct {
	Message string `json:"message"`
	UserID  *int64 `json:"user_id,omitempty"`
}

// ChatResponse represents the chatbot answer
type ChatResponse struct {
	Response    string   `json:"response"`
	Category    *string  `json:"category"`
	Suggestions []string `json:"suggestions"`
}

// SuggestionsResponse represents follow-up prompts for an optional query
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
	Type        string   `json:"type"`
}

// UserProductsResponse represents products picked for a user profile
type UserProductsResponse struct {
	Products []Product `json:"products"`
	Reason   string    `json:"recommendation_reason"`
}
