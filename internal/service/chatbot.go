package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recommender/internal/logger"
	"recommender/internal/metrics"
	"recommender/internal/model"
	"recommender/internal/repository"
	"recommender/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	budgetIntro        = "\n\nAvec un budget de %d DT, voici ce que je vous recommande :"
	budgetOutro        = "\n\nVoulez-vous voir plus de détails sur l'un de ces produits ?"
	budgetNoProducts   = "\nAucun produit trouvé dans ce budget. Essayez d'augmenter votre budget ou cherchez dans d'autres catégories."
	budgetUnavailable  = "\nDésolé, service temporairement indisponible."
	budgetStoreFailure = "\nDésolé, je ne peux pas accéder aux recommandations pour le moment."
	categoryIntro      = "\n\nVoici les meilleurs produits en %s :\n"
	userProductsReason = "Basé sur votre profil %s et niveau %d"

	unmatchedIntent = "none"
)

// ChatStore is what the chatbot reads from the catalog
type ChatStore interface {
	repository.UserStore
	ProductsByPriceRange(ctx context.Context, window model.PriceWindow, limit int) ([]model.Product, error)
	ProductsByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)
	ProductsByCategories(ctx context.Context, categories []string, limit int) ([]model.Product, error)
}

// ChatService answers chatbot messages and recommends products to users
type ChatService struct {
	store     ChatStore
	matcher   *IntentMatcher
	suggester *Suggester
	log       logrus.FieldLogger
}

// NewChatService creates a chat service
func NewChatService(store ChatStore, matcher *IntentMatcher, suggester *Suggester, log logrus.FieldLogger) *ChatService {
	return &ChatService{
		store:     store,
		matcher:   matcher,
		suggester: suggester,
		log:       log,
	}
}

// HandleMessage classifies the message and appends budget and category product blocks.
// Store failures degrade into fixed apology text instead of failing the request.
func (s *ChatService) HandleMessage(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	message := utils.NormalizeText(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	log := logger.FromContext(ctx, s.log)

	category, matched := s.matcher.Classify(message)

	var builder strings.Builder
	builder.WriteString(s.matcher.PickResponse(category))

	var categoryID *string
	if matched {
		id := category.ID
		categoryID = &id
		metrics.IntentMatches.WithLabelValues(id).Inc()
	} else {
		metrics.IntentMatches.WithLabelValues(unmatchedIntent).Inc()
	}

	if budget, ok := s.matcher.ExtractBudget(message); ok {
		fmt.Fprintf(&builder, budgetIntro, budget)
		builder.WriteString(s.budgetBlock(ctx, log, budget))
	}

	if productCategory, ok := s.matcher.DetectCategory(message); ok {
		builder.WriteString(s.categoryBlock(ctx, log, productCategory))
	}

	fields := logger.Fields{"intent": categoryIDLabel(categoryID)}
	if req.UserID != nil {
		fields["user_id"] = *req.UserID
	}
	log.WithFields(fields).Debug("chat message handled")

	return &model.ChatResponse{
		Response:    builder.String(),
		Category:    categoryID,
		Suggestions: s.suggester.ForMessage(message),
	}, nil
}

func (s *ChatService) budgetBlock(ctx context.Context, log logrus.FieldLogger, budget int) string {
	products, err := s.store.ProductsByPriceRange(ctx, BudgetWindow(float64(budget)), LimitBudgetProducts)
	if err != nil {
		log.WithError(err).WithField("budget", budget).Error("budget recommendations failed")
		if errors.Is(err, repository.ErrUnavailable) {
			return budgetUnavailable
		}
		return budgetStoreFailure
	}
	metrics.RecommendationsServed.WithLabelValues("chat_budget").Observe(float64(len(products)))

	if len(products) == 0 {
		return budgetNoProducts
	}

	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf("• %s - %.2f DT (%s)", p.Name, p.Price, p.CategoryName)
	}
	return "\n" + strings.Join(lines, "\n") + budgetOutro
}

// categoryBlock lists the best products of the detected category; failures yield nothing.
func (s *ChatService) categoryBlock(ctx context.Context, log logrus.FieldLogger, category string) string {
	products, err := s.store.ProductsByCategory(ctx, category, LimitCategoryProducts)
	if err != nil {
		log.WithError(err).WithField("category", category).Warn("category products failed")
		return ""
	}
	if len(products) == 0 {
		return ""
	}

	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf("• %s - %.2f DT ⭐%.1f", p.Name, p.Price, p.Rating)
	}
	return fmt.Sprintf(categoryIntro, category) + strings.Join(lines, "\n")
}

// Suggestions returns follow-up prompts for an optional query
func (s *ChatService) Suggestions(query string) model.SuggestionsResponse {
	suggestions, kind := s.suggester.ForQuery(query)
	return model.SuggestionsResponse{Suggestions: suggestions, Type: kind}
}

// UserProducts picks the best rated products in the categories suited to the user
func (s *ChatService) UserProducts(ctx context.Context, userID *int64) (*model.UserProductsResponse, error) {
	if userID == nil {
		return nil, ErrUserIDRequired
	}

	user, err := s.store.GetUserByID(ctx, *userID)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	products, err := s.store.ProductsByCategories(ctx, ProductCategoriesFor(user), LimitUserProducts)
	if err != nil {
		return nil, storeError(err)
	}
	metrics.RecommendationsServed.WithLabelValues("chat_user_products").Observe(float64(len(products)))

	return &model.UserProductsResponse{
		Products: products,
		Reason:   fmt.Sprintf(userProductsReason, UserGenre(user, ProfileHomme), user.Level),
	}, nil
}

func categoryIDLabel(id *string) string {
	if id == nil {
		return unmatchedIntent
	}
	return *id
}
