package books

import (
	"context"

	"github.com/dmitrijs2005/paperback/internal/models"
)

// AddParams carries the caller-supplied fields of a new listing. ID and
// posted date are assigned by the repository.
type AddParams struct {
	Title      string
	Author     string
	Price      string
	Condition  models.Condition
	ImageURL   string
	SellerName string
	Location   string
	Category   string
}

// Repository describes catalog operations over the book collection.
type Repository interface {
	// List returns all books, newest first, with normalized price fields.
	List(ctx context.Context) ([]models.Book, error)

	// Add assigns an id and posted date, prepends the book (newest-first is
	// the contract callers rely on), and maintains the bounded
	// recently-added index.
	Add(ctx context.Context, params AddParams) (*models.Book, error)

	// GetByID returns the book or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Book, error)

	// ByCategory filters by exact category; the sentinel "All" returns
	// everything.
	ByCategory(ctx context.Context, category string) ([]models.Book, error)

	// Suggested returns up to five other books sharing a whole word of
	// title or author with the given book. A heuristic filter, not a ranked
	// search: results keep collection order.
	Suggested(ctx context.Context, currentID string) ([]models.Book, error)

	// Search fuzzy-matches the query against title and author.
	Search(ctx context.Context, query string) ([]models.Book, error)

	// RecentlyAdded returns the bounded newest-first side index.
	RecentlyAdded(ctx context.Context) ([]models.Book, error)
}
