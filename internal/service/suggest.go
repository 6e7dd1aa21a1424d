package service

import (
	"strings"

	"recommender/internal/utils"
)

// Suggestion list types
const (
	SuggestionsGeneral    = "general"
	SuggestionsContextual = "contextual"
)

var baseSuggestions = []string{
	"Je cherche des produits pour",
	"Quels sont les meilleurs",
	"Avez-vous des promotions sur",
	"Montrez-moi des",
	"Je veux acheter",
	"Budget maximum",
	"Produits populaires en",
	"Nouveaux articles dans",
	"Cadeaux pour",
	"Articles de luxe",
}

var (
	productWords = []string{"produit", "article", "acheter"}
	budgetWords  = []string{"prix", "budget", "cher"}
	giftWords    = []string{"cadeau", "offrir"}
)

var (
	queryProductPrompts = []string{"Produits populaires cette semaine", "Nouveautés à découvrir", "Meilleures ventes du moment"}
	queryBudgetPrompts  = []string{"Articles moins de 50 DT", "Produits premium au-dessus de 200 DT", "Meilleurs rapports qualité-prix"}
	queryGiftPrompts    = []string{"Cadeaux pour homme", "Cadeaux pour femme", "Cadeaux pour enfants", "Cadeaux originaux"}

	messageBudgetPrompts  = []string{"Budget maximum 50 DT", "Articles moins de 100 DT", "Produits premium 200+ DT"}
	messageProductPrompts = []string{"Produits populaires", "Nouveautés", "Meilleures ventes"}
	messageGiftPrompts    = []string{"Cadeaux pour homme", "Cadeaux pour femme", "Cadeaux enfants"}
)

const messageDefaultPrompts = 5

// Suggester produces follow-up prompts for the chatbot
type Suggester struct{}

// NewSuggester creates a suggester
func NewSuggester() *Suggester {
	return &Suggester{}
}

// ForQuery filters the base prompts by query and appends the matching contextual blocks.
func (s *Suggester) ForQuery(query string) ([]string, string) {
	query = utils.NormalizeText(query)
	if query == "" {
		return utils.Limit(clone(baseSuggestions), LimitSuggestions), SuggestionsGeneral
	}

	suggestions := make([]string, 0, LimitSuggestions)
	for _, suggestion := range baseSuggestions {
		if strings.Contains(strings.ToLower(suggestion), query) {
			suggestions = append(suggestions, suggestion)
		}
	}

	if _, ok := utils.ContainsAny(query, productWords); ok {
		suggestions = append(suggestions, queryProductPrompts...)
	}
	if _, ok := utils.ContainsAny(query, budgetWords); ok {
		suggestions = append(suggestions, queryBudgetPrompts...)
	}
	if _, ok := utils.ContainsAny(query, giftWords); ok {
		suggestions = append(suggestions, queryGiftPrompts...)
	}

	return utils.Limit(suggestions, LimitSuggestions), SuggestionsContextual
}

// ForMessage picks exactly one prompt block: budget, then product, then gift, then the defaults.
func (s *Suggester) ForMessage(message string) []string {
	message = utils.NormalizeText(message)

	if _, ok := utils.ContainsAny(message, budgetWords); ok {
		return clone(messageBudgetPrompts)
	}
	if _, ok := utils.ContainsAny(message, productWords); ok {
		return clone(messageProductPrompts)
	}
	if _, ok := utils.ContainsAny(message, giftWords); ok {
		return clone(messageGiftPrompts)
	}
	return clone(baseSuggestions[:messageDefaultPrompts])
}

func clone(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
