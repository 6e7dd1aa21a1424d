package service

import (
	"math/rand/v2"
	"regexp"
	"strconv"

	"recommender/internal/utils"
)

// Intent category identifiers, in matching order
const (
	IntentGreetings  = "greetings"
	IntentHelp       = "help"
	IntentProducts   = "products"
	IntentBudget     = "budget"
	IntentCategories = "categories"
	IntentPromotions = "promotions"
	IntentThanks     = "thanks"
)

// FallbackResponse is sent when no intent category matches
const FallbackResponse = "Je ne suis pas sûr de comprendre. Pouvez-vous reformuler ? Je peux vous aider avec : produits, budget, catégories, promotions..."

// IntentCategory is a conversational topic with its patterns and canned responses
type IntentCategory struct {
	ID        string
	Patterns  []*regexp.Regexp
	Responses []string
}

// CategoryKeywords maps a product category to the words that reveal it
type CategoryKeywords struct {
	Category string
	Keywords []string
}

func patterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile("(?i)" + expr)
	}
	return compiled
}

// intentCategories is evaluated in slice order; the first category with a hit wins.
var intentCategories = []IntentCategory{
	{
		ID:       IntentGreetings,
		Patterns: patterns(`bonjour`, `salut`, `hello`, `coucou`, `hey`, `bonsoir`, `bonne nuit`),
		Responses: []string{
			"Bonjour ! Je suis votre assistant MollySou. Comment puis-je vous aider aujourd'hui ?",
			"Salut ! Ravie de vous voir. Que cherchez-vous ?",
			"Hello ! Je suis là pour vous aider à trouver les meilleurs produits.",
		},
	},
	{
		ID:       IntentHelp,
		Patterns: patterns(`aide`, `help`, `assistance`, `support`, `comment.*utiliser`, `que puis.*faire`),
		Responses: []string{
			"Je peux vous aider à :\n• Trouver des produits par catégorie\n• Rechercher des articles dans votre budget\n• Vous suggérer des promotions\n• Répondre à vos questions sur MollySou",
			"Voici ce que je peux faire pour vous :\n- Recherche de produits\n- Suggestions personnalisées\n- Informations sur les promotions\n- Aide à la navigation",
		},
	},
	{
		ID:       IntentProducts,
		Patterns: patterns(`produit`, `article`, `item`, `achat`, `acheter`, `quel.*produit`, `meilleur.*produit`, `recommand`),
		Responses: []string{
			"Je peux vous aider à trouver des produits ! Dites-moi ce que vous cherchez ou votre budget.",
			"Parlons produits ! Quelle catégorie vous intéresse ? Vêtements, Électronique, Beauté...",
		},
	},
	{
		ID:       IntentBudget,
		Patterns: patterns(`budget`, `prix`, `cher`, `pas cher`, `abordable`, `moins de (\d+)`, `jusqu.*à (\d+)`, `maximum (\d+)`),
		Responses: []string{
			"Excellent ! Je peux vous trouver des produits dans votre budget.",
			"Parfait ! Laissez-moi vous suggérer des articles selon votre budget.",
		},
	},
	{
		ID: IntentCategories,
		Patterns: patterns(`catégorie`, `type`, `sortes`, `variétés`, `vêtements`, `électronique`, `beauté`,
			`restauration`, `santé`, `décoration`, `enfants`, `divertissement`),
		Responses: []string{
			"Nous avons 8 catégories principales : Vêtements, Électronique, Beauté, Restauration, Santé, Décoration, Enfants, Divertissement.",
			"Voici nos catégories : Vêtements 👕, Électronique 📱, Beauté 💄, Restauration 🍽️, Santé 🏥, Décoration 🏠, Enfants 👶, Divertissement 🎮",
		},
	},
	{
		ID:       IntentPromotions,
		Patterns: patterns(`promotion`, `réduction`, `solde`, `offre`, `rabais`, `bon plan`, `prix réduit`, `discount`),
		Responses: []string{
			"En fonction de votre niveau, vous bénéficiez de réductions exclusives !",
			"Votre rang vous donne droit à des promotions spéciales. Voulez-vous savoir votre réduction actuelle ?",
		},
	},
	{
		ID:       IntentThanks,
		Patterns: patterns(`merci`, `thanks`, `gracías`, `apprécie`, `super`, `génial`, `parfait`),
		Responses: []string{
			"Avec plaisir ! N'hésitez pas si vous avez d'autres questions.",
			"Je suis ravi d'avoir pu vous aider ! 😊",
			"Toujours là pour vous aider !",
		},
	},
}

// categoryKeywords is evaluated in slice order, keywords in list order.
var categoryKeywords = []CategoryKeywords{
	{Category: "Vêtements", Keywords: []string{"vêtements", "vetement", "habit", "tshirt", "robe", "jean"}},
	{Category: "Électronique", Keywords: []string{"électronique", "electronique", "smartphone", "tablette", "casque"}},
	{Category: "Beauté", Keywords: []string{"beauté", "beaute", "cosmétique", "maquillage", "parfum"}},
	{Category: "Restauration", Keywords: []string{"restauration", "restaurant", "repas", "cuisine"}},
	{Category: "Santé", Keywords: []string{"santé", "sante", "médecin", "massage", "vitamine"}},
	{Category: "Décoration", Keywords: []string{"décoration", "decoration", "meuble", "canapé", "lampe"}},
	{Category: "Enfants", Keywords: []string{"enfant", "bébé", "bebe", "jouet", "poussette"}},
	{Category: "Divertissement", Keywords: []string{"divertissement", "jeu", "cinéma", "escape game"}},
}

var budgetPattern = regexp.MustCompile(`(?i)(\d+)\s*(dt|dinars|euros?|€|\$)?`)

// IntentMatcher classifies chat messages with the static intent tables
type IntentMatcher struct {
	intn func(n int) int
}

// NewIntentMatcher creates a matcher. A nil intn uses math/rand/v2.
func NewIntentMatcher(intn func(n int) int) *IntentMatcher {
	if intn == nil {
		intn = rand.IntN
	}
	return &IntentMatcher{intn: intn}
}

// Classify returns the first intent category with a matching pattern.
func (m *IntentMatcher) Classify(text string) (*IntentCategory, bool) {
	text = utils.NormalizeText(text)
	if text == "" {
		return nil, false
	}

	for i := range intentCategories {
		category := &intentCategories[i]
		for _, pattern := range category.Patterns {
			if pattern.MatchString(text) {
				return category, true
			}
		}
	}
	return nil, false
}

// PickResponse chooses one of the category responses, or the fallback text for nil.
func (m *IntentMatcher) PickResponse(category *IntentCategory) string {
	if category == nil || len(category.Responses) == 0 {
		return FallbackResponse
	}
	return category.Responses[m.intn(len(category.Responses))]
}

// ExtractBudget returns the first number in text, optionally followed by a currency.
func (m *IntentMatcher) ExtractBudget(text string) (int, bool) {
	match := budgetPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	budget, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return budget, true
}

// DetectCategory returns the first product category whose keywords occur in text.
func (m *IntentMatcher) DetectCategory(text string) (string, bool) {
	text = utils.NormalizeText(text)
	for _, entry := range categoryKeywords {
		if _, ok := utils.ContainsAny(text, entry.Keywords); ok {
			return entry.Category, true
		}
	}
	return "", false
}
