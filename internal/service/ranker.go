package service

import (
	"sort"
	"strings"
	"time"

	"recommender/internal/model"
	"recommender/internal/utils"
)

// Recommendation reason constants
const (
	ReasonMatchesPreferences = "matches preferences"
	ReasonHighlyRated        = "highly rated"
	ReasonWellRated          = "well rated"
	ReasonUpcomingSoon       = "upcoming soon"
	ReasonThisWeek           = "this week"
	ReasonGoodPrice          = "good price"
	ReasonPopularItem        = "popular item"

	reasonSeparator = " • "
	maxReasons      = 2
)

// Result-size caps per endpoint
const (
	LimitEventRecommendations = 4
	LimitPopularEvents        = 6
	LimitUserProducts         = 6
	LimitCategoryProducts     = 3
	LimitBudgetProducts       = 5
	LimitSuggestions          = 8
	LimitSimilarEvents        = 3
	LimitDefaultProducts      = 20
	LimitFallbackCategories   = 6
)

// Budget window constants
const (
	budgetWindowFrom  = 50
	budgetWindowRatio = 0.7
)

const neutralRating = 4.0

// Ranker scores events against a profile and orders scored items
type Ranker struct {
	now func() time.Time
}

// NewRanker creates a ranker. A nil clock uses time.Now.
func NewRanker(now func() time.Time) *Ranker {
	if now == nil {
		now = time.Now
	}
	return &Ranker{now: now}
}

// ScoreEvent computes the additive relevance score and the reason text of an event.
func (r *Ranker) ScoreEvent(event model.Event, profile Profile) (float64, string) {
	prefs := EventPreferencesFor(profile)
	days := daysUntil(r.now(), event.Date)

	score := 0.0

	if containsString(prefs.Types, event.Type) {
		score += 3
	}

	if prefs.BudgetRange != nil {
		switch {
		case event.Price >= prefs.BudgetRange.Min && event.Price <= prefs.BudgetRange.Max:
			score += 2
		case event.Price < prefs.BudgetRange.Min:
			score += 1
		}
	}

	score += event.Rating - neutralRating

	switch {
	case days <= 7:
		score += 2
	case days <= 14:
		score += 1
	}

	return score, r.reason(event, prefs, days)
}

func (r *Ranker) reason(event model.Event, prefs EventPreferences, days int) string {
	reasons := make([]string, 0, 4)

	if containsString(utils.Limit(prefs.Types, 2), event.Type) {
		reasons = append(reasons, ReasonMatchesPreferences)
	}

	if event.Rating >= 4.7 {
		reasons = append(reasons, ReasonHighlyRated)
	} else if event.Rating >= 4.5 {
		reasons = append(reasons, ReasonWellRated)
	}

	if days <= 3 {
		reasons = append(reasons, ReasonUpcomingSoon)
	} else if days <= 7 {
		reasons = append(reasons, ReasonThisWeek)
	}

	if event.Price <= 30 {
		reasons = append(reasons, ReasonGoodPrice)
	}

	if len(reasons) == 0 {
		return ReasonPopularItem
	}
	return strings.Join(utils.Limit(reasons, maxReasons), reasonSeparator)
}

// ScoreEvents scores every event for the profile, keeping input order.
func (r *Ranker) ScoreEvents(events []model.Event, profile Profile) []model.ScoredEvent {
	scored := make([]model.ScoredEvent, 0, len(events))
	for _, event := range events {
		score, reason := r.ScoreEvent(event, profile)
		scored = append(scored, model.ScoredEvent{
			Event:  event,
			Score:  score,
			Reason: reason,
		})
	}
	return scored
}

// Rank sorts by score descending, keeping input order on ties, and truncates to limit.
func (r *Ranker) Rank(items []model.ScoredEvent, limit int) []model.ScoredEvent {
	ranked := make([]model.ScoredEvent, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return utils.Limit(ranked, limit)
}

// BudgetWindow returns the price window searched for a stated budget.
func BudgetWindow(budget float64) model.PriceWindow {
	if budget < budgetWindowFrom {
		return model.PriceWindow{Max: budget}
	}
	lower := budget * budgetWindowRatio
	return model.PriceWindow{Min: &lower, Max: budget}
}

// daysUntil counts whole calendar days from now's date to the event date.
func daysUntil(now, date time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
