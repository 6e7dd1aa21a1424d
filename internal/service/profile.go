package service

import (
	"strings"

	"recommender/internal/model"
	"recommender/internal/utils"
)

// Profile labels
const (
	ProfileHomme    = "homme"
	ProfileFemme    = "femme"
	ProfileJeune    = "jeune"
	ProfileBebe     = "bebe"
	ProfileFamille  = "famille"
	ProfileVisiteur = "visiteur"
)

// Thresholds used when promoting a user to a more specific profile
const (
	youngLevelBelow   = 30
	familyLevelFrom   = 100
	familyPointsAbove = 1000
	minQueryRunes     = 2
)

// PriceRange is an inclusive event budget range
type PriceRange struct {
	Min float64
	Max float64
}

// EventPreferences describes which events suit a profile
type EventPreferences struct {
	Types       []string
	BudgetRange *PriceRange
	Keywords    []string
}

// Profile is a user segment with its category and event preferences
type Profile struct {
	Label      string
	Categories []string
	Events     *EventPreferences
	Keywords   []string
}

// profiles is ordered for query detection: homme, femme, jeune, bebe, visiteur, famille.
var profiles = []Profile{
	{
		Label:      ProfileHomme,
		Categories: []string{"Vêtements", "Électronique", "Divertissement", "Restauration"},
		Events: &EventPreferences{
			Types:       []string{"SPORT", "CONCERT", "ESPORT", "AUTO", "JEUX"},
			BudgetRange: &PriceRange{Min: 20, Max: 100},
			Keywords:    []string{"sport", "football", "concert", "rock", "gaming", "voiture"},
		},
		Keywords: []string{"homme", "masculin", "mâle", "male", "men", "man", "garçon", "gars"},
	},
	{
		Label:      ProfileFemme,
		Categories: []string{"Vêtements", "Beauté", "Décoration", "Restauration", "Santé"},
		Events: &EventPreferences{
			Types:       []string{"THEATRE", "CONCERT", "DANSE", "CULTURE", "HUMOUR"},
			BudgetRange: &PriceRange{Min: 25, Max: 80},
			Keywords:    []string{"théâtre", "musical", "danse", "art", "comédie", "culture"},
		},
		Keywords: []string{"femme", "féminin", "féminine", "feminin", "feminine", "women", "woman", "fille", "dame"},
	},
	{
		Label:      ProfileJeune,
		Categories: []string{"Électronique", "Divertissement", "Vêtements", "Restauration"},
		Events: &EventPreferences{
			Types:       []string{"CONCERT", "ESPORT", "SPORT", "HUMOUR", "SPECTACLE"},
			BudgetRange: &PriceRange{Min: 15, Max: 50},
			Keywords:    []string{"concert", "gaming", "sport", "humour", "festival"},
		},
		Keywords: []string{"jeune", "jeunes", "youth", "teen", "adolescent", "ado", "student", "étudiant"},
	},
	{
		Label:      ProfileBebe,
		Categories: []string{"Enfants", "Santé"},
		Keywords:   []string{"bébé", "bebe", "baby", "bébés", "bebes", "babies", "nourrisson", "enfant"},
	},
	{
		Label:      ProfileVisiteur,
		Categories: []string{"Vêtements", "Électronique", "Restauration", "Divertissement", "Beauté"},
		Events: &EventPreferences{
			Types:       []string{"CULTURE", "SPECTACLE", "CONCERT", "THEATRE", "GASTRONOMIE"},
			BudgetRange: &PriceRange{Min: 20, Max: 70},
			Keywords:    []string{"culture", "spectacle", "concert", "théâtre", "gastronomie"},
		},
		Keywords: []string{"visiteur", "visiteurs", "visitor", "touriste", "tourist", "nouveau", "new"},
	},
	{
		Label:      ProfileFamille,
		Categories: []string{"Enfants", "Décoration", "Restauration", "Divertissement", "Santé"},
		Events: &EventPreferences{
			Types:       []string{"CULTURE", "SPECTACLE", "THEATRE", "GASTRONOMIE", "DANSE"},
			BudgetRange: &PriceRange{Min: 15, Max: 60},
			Keywords:    []string{"famille", "culture", "spectacle", "gastronomie", "danse"},
		},
		Keywords: []string{"famille", "family", "parent", "parents", "maman", "papa", "mother", "father"},
	},
}

// LookupProfile returns the profile with the given label.
func LookupProfile(label string) (Profile, bool) {
	for _, p := range profiles {
		if p.Label == label {
			return p, true
		}
	}
	return Profile{}, false
}

func mustProfile(label string) Profile {
	p, ok := LookupProfile(label)
	if !ok {
		panic("unknown profile " + label)
	}
	return p
}

// DefaultProfile is used whenever nothing else matches
func DefaultProfile() Profile {
	return mustProfile(ProfileVisiteur)
}

// EventPreferencesFor returns the profile's event preferences, falling back to visiteur's.
func EventPreferencesFor(p Profile) EventPreferences {
	if p.Events != nil {
		return *p.Events
	}
	return *DefaultProfile().Events
}

// UserGenre returns the lower-cased genre of u, or fallback when unset.
func UserGenre(u *model.User, fallback string) string {
	if u == nil || u.Genre == nil || strings.TrimSpace(*u.Genre) == "" {
		return fallback
	}
	return strings.ToLower(strings.TrimSpace(*u.Genre))
}

func isGendered(genre string) bool {
	return genre == ProfileHomme || genre == ProfileFemme
}

// ResolveUser derives the profile of a known user. It always yields a profile.
func ResolveUser(u *model.User) Profile {
	if u == nil {
		return DefaultProfile()
	}

	genre := UserGenre(u, ProfileVisiteur)
	switch {
	case u.Level < youngLevelBelow:
		return mustProfile(ProfileJeune)
	case isGendered(genre) && u.Level >= familyLevelFrom && u.Points > familyPointsAbove:
		return mustProfile(ProfileFamille)
	case isGendered(genre):
		return mustProfile(genre)
	default:
		return DefaultProfile()
	}
}

// ResolveQuery detects a profile from keyword hints in a search query.
// Queries shorter than two characters never yield a profile.
func ResolveQuery(query string) (Profile, bool) {
	query = utils.NormalizeText(query)
	if utils.RuneLen(query) < minQueryRunes {
		return Profile{}, false
	}

	for _, p := range profiles {
		if _, ok := utils.ContainsAny(query, p.Keywords); ok {
			return p, true
		}
	}
	return Profile{}, false
}

// ProductCategoriesFor picks the product categories the chatbot recommends to u.
func ProductCategoriesFor(u *model.User) []string {
	var categories []string
	switch UserGenre(u, ProfileHomme) {
	case ProfileFemme:
		categories = []string{"Vêtements", "Beauté", "Décoration"}
	default:
		categories = []string{"Vêtements", "Électronique", "Divertissement"}
	}

	if u != nil && u.Level >= familyLevelFrom {
		categories = append(categories, "Restauration")
	}
	return categories
}
