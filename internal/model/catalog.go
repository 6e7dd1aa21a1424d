package model

import "time"

// Product represents a catalog product joined with its category name
type Product struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"nom" db:"nom"`
	Description  *string `json:"description,omitempty" db:"description"`
	Price        float64 `json:"prix" db:"prix"`
	CategoryID   int64   `json:"category_id" db:"category_id"`
	CategoryName string  `json:"category_nom" db:"category_nom"`
	Rating       float64 `json:"rating" db:"rating"`
	Available    bool    `json:"disponible" db:"disponible"`
}

// Category represents a product category
type Category struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"nom" db:"nom"`
	Description *string `json:"description,omitempty" db:"description"`
}

// Event represents a bookable event
type Event struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"titre" db:"titre"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Location        *string   `json:"lieu,omitempty" db:"lieu"`
	Type            string    `json:"type" db:"type"`
	Price           float64   `json:"prix" db:"prix"`
	Rating          float64   `json:"rating" db:"rating"`
	Date            time.Time `json:"date" db:"date"`
	AvailablePlaces int       `json:"places_disponibles" db:"places_disponibles"`
}

// User holds the attributes the recommenders read from a platform user
type User struct {
	ID     int64   `json:"id" db:"id"`
	Genre  *string `json:"genre,omitempty" db:"genre"`
	Level  int     `json:"niveau" db:"niveau"`
	Points int     `json:"points" db:"points"`
}

// ScoredEvent is an event annotated with its relevance for one request
type ScoredEvent struct {
	Event
	Score  float64 `json:"recommendation_score"`
	Reason string  `json:"recommendation_reason"`
}

// PriceWindow bounds a product price query. A nil Min means no lower bound.
type PriceWindow struct {
	Min *float64
	Max float64
}

// EventFilter narrows an upcoming-events query
type EventFilter struct {
	Query    string
	Type     string
	MaxPrice *float64
}
