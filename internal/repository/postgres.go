package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recommender/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	productColumns = `p.id, p.nom, p.description, p.prix, p.category_id, c.nom AS category_nom, p.rating, p.disponible`
	productFrom    = `FROM products p JOIN categories c ON p.category_id = c.id`
	categoryCols   = `id, nom, description`
	eventColumns   = `id, titre, description, lieu, type, prix, rating, date, places_disponibles`
	dateLayout     = "2006-01-02"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection pool
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// GetUserByID retrieves a user, or nil when the id is unknown
func (r *PostgresRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT id, genre, niveau, points FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ProductsByPriceRange returns available products inside the window, best rated first
func (r *PostgresRepository) ProductsByPriceRange(ctx context.Context, window model.PriceWindow, limit int) ([]model.Product, error) {
	whereClauses := []string{"p.disponible = TRUE"}
	args := []interface{}{}
	argIndex := 1

	if window.Min != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.prix >= $%d", argIndex))
		args = append(args, *window.Min)
		argIndex++
	}
	whereClauses = append(whereClauses, fmt.Sprintf("p.prix <= $%d", argIndex))
	args = append(args, window.Max)
	argIndex++

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY p.rating DESC LIMIT $%d`,
		productColumns, productFrom, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, limit)

	return r.selectProducts(ctx, "price range", query, args...)
}

// ProductsByCategory returns available products of one category, best rated first
func (r *PostgresRepository) ProductsByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE c.nom = $1 AND p.disponible = TRUE ORDER BY p.rating DESC LIMIT $2`,
		productColumns, productFrom)
	return r.selectProducts(ctx, "category", query, category, limit)
}

// ProductsByCategories returns available products in any of the categories, best rated first
func (r *PostgresRepository) ProductsByCategories(ctx context.Context, categories []string, limit int) ([]model.Product, error) {
	if len(categories) == 0 {
		return []model.Product{}, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s %s WHERE c.nom IN (?) AND p.disponible = TRUE ORDER BY p.rating DESC LIMIT ?`,
		productColumns, productFrom), categories, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build categories query: %w", err)
	}
	return r.selectProducts(ctx, "categories", r.db.Rebind(query), args...)
}

// ProductsByCategoryID returns available products of a category id, best rated first
func (r *PostgresRepository) ProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.category_id = $1 AND p.disponible = TRUE ORDER BY p.rating DESC`,
		productColumns, productFrom)
	return r.selectProducts(ctx, "category id", query, categoryID)
}

// SearchProducts returns available products whose name or description contains text
func (r *PostgresRepository) SearchProducts(ctx context.Context, text string) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE (p.nom ILIKE $1 OR p.description ILIKE $1) AND p.disponible = TRUE ORDER BY p.rating DESC`,
		productColumns, productFrom)
	return r.selectProducts(ctx, "search", query, likePattern(text))
}

// TopProducts returns the best rated available products
func (r *PostgresRepository) TopProducts(ctx context.Context, limit int) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.disponible = TRUE ORDER BY p.rating DESC LIMIT $1`,
		productColumns, productFrom)
	return r.selectProducts(ctx, "top", query, limit)
}

func (r *PostgresRepository) selectProducts(ctx context.Context, kind, query string, args ...interface{}) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch products by %s: %w", kind, err)
	}
	return products, nil
}

// AllCategories returns every category ordered by name
func (r *PostgresRepository) AllCategories(ctx context.Context) ([]model.Category, error) {
	return r.selectCategories(ctx, "all", `SELECT `+categoryCols+` FROM categories ORDER BY nom`)
}

// FirstCategories returns the first categories by name
func (r *PostgresRepository) FirstCategories(ctx context.Context, limit int) ([]model.Category, error) {
	return r.selectCategories(ctx, "first", `SELECT `+categoryCols+` FROM categories ORDER BY nom LIMIT $1`, limit)
}

// CategoriesByNames returns the named categories ordered by name
func (r *PostgresRepository) CategoriesByNames(ctx context.Context, names []string) ([]model.Category, error) {
	if len(names) == 0 {
		return []model.Category{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+categoryCols+` FROM categories WHERE nom IN (?) ORDER BY nom`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to build names query: %w", err)
	}
	return r.selectCategories(ctx, "names", r.db.Rebind(query), args...)
}

// SearchCategories returns categories whose name or description contains text
func (r *PostgresRepository) SearchCategories(ctx context.Context, text string) ([]model.Category, error) {
	return r.selectCategories(ctx, "search",
		`SELECT `+categoryCols+` FROM categories WHERE nom ILIKE $1 OR description ILIKE $1 ORDER BY nom`,
		likePattern(text))
}

// CategoriesByProductText returns categories owning a product whose name or description contains text
func (r *PostgresRepository) CategoriesByProductText(ctx context.Context, text string) ([]model.Category, error) {
	return r.selectCategories(ctx, "product text", `
		SELECT c.id, c.nom, c.description
		FROM categories c
		JOIN products p ON c.id = p.category_id
		WHERE p.nom ILIKE $1 OR p.description ILIKE $1
		GROUP BY c.id, c.nom, c.description
		ORDER BY c.nom`, likePattern(text))
}

func (r *PostgresRepository) selectCategories(ctx context.Context, kind, query string, args ...interface{}) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch categories by %s: %w", kind, err)
	}
	return categories, nil
}

// UpcomingEvents returns events on or after from, best rated then soonest first
func (r *PostgresRepository) UpcomingEvents(ctx context.Context, from time.Time, filter model.EventFilter) ([]model.Event, error) {
	whereClauses := []string{"date >= $1"}
	args := []interface{}{from.Format(dateLayout)}
	argIndex := 2

	if filter.Query != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(titre ILIKE $%d OR description ILIKE $%d OR lieu ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, likePattern(filter.Query))
		argIndex++
	}
	if filter.Type != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argIndex))
		args = append(args, filter.Type)
		argIndex++
	}
	if filter.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("prix <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
	}

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s ORDER BY rating DESC, date ASC`,
		eventColumns, strings.Join(whereClauses, " AND "))
	return r.selectEvents(ctx, "upcoming", query, args...)
}

// PopularEvents returns upcoming events, best rated then most places left first
func (r *PostgresRepository) PopularEvents(ctx context.Context, from time.Time, limit int) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date >= $1 ORDER BY rating DESC, places_disponibles DESC LIMIT $2`
	return r.selectEvents(ctx, "popularity", query, from.Format(dateLayout), limit)
}

// SimilarEvents returns other upcoming events of the same type, best rated first
func (r *PostgresRepository) SimilarEvents(ctx context.Context, eventType string, excludeID int64, from time.Time, limit int) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE type = $1 AND id != $2 AND date >= $3 ORDER BY rating DESC LIMIT $4`
	return r.selectEvents(ctx, "similarity", query, eventType, excludeID, from.Format(dateLayout), limit)
}

// EventByID retrieves an event, or nil when the id is unknown
func (r *PostgresRepository) EventByID(ctx context.Context, id int64) (*model.Event, error) {
	var event model.Event
	err := r.db.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// EventTypes returns the distinct event types in alphabetical order
func (r *PostgresRepository) EventTypes(ctx context.Context) ([]string, error) {
	types := []string{}
	if err := r.db.SelectContext(ctx, &types, `SELECT DISTINCT type FROM events ORDER BY type`); err != nil {
		return nil, fmt.Errorf("failed to fetch event types: %w", err)
	}
	return types, nil
}

func (r *PostgresRepository) selectEvents(ctx context.Context, kind, query string, args ...interface{}) ([]model.Event, error) {
	events := []model.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch events by %s: %w", kind, err)
	}
	return events, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps text for a substring ILIKE match, escaping wildcards.
func likePattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
