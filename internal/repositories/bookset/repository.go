// Package bookset implements the cart and wishlist: an ordered set of book
// snapshots keyed by book id, persisted as one collection. Both lists have
// identical semantics, so one repository type serves both collection names.
package bookset

import (
	"context"

	"github.com/dmitrijs2005/paperback/internal/collection"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/models"
)

type Repository interface {
	// Add appends the book snapshot unless an item with the same id is
	// already present (membership is a set by book id; no quantities).
	Add(ctx context.Context, book models.Book) error

	// Remove filters the id out. Removing an absent id is not an error.
	Remove(ctx context.Context, bookID string) error

	// List returns the raw stored sequence.
	List(ctx context.Context) ([]models.Book, error)

	// Clear writes an empty sequence.
	Clear(ctx context.Context) error
}

type KVRepository struct {
	items *collection.Collection[models.Book]
}

// NewCart returns the repository over the cart collection.
func NewCart(store kvstore.Store) *KVRepository {
	return &KVRepository{items: collection.New[models.Book](store, collection.Cart)}
}

// NewWishlist returns the repository over the wishlist collection.
func NewWishlist(store kvstore.Store) *KVRepository {
	return &KVRepository{items: collection.New[models.Book](store, collection.Wishlist)}
}

func (r *KVRepository) Add(ctx context.Context, book models.Book) error {
	return r.items.Update(ctx, func(items []models.Book) ([]models.Book, error) {
		for _, it := range items {
			if it.ID == book.ID {
				return items, nil
			}
		}
		return append(items, book), nil
	})
}

func (r *KVRepository) Remove(ctx context.Context, bookID string) error {
	return r.items.Update(ctx, func(items []models.Book) ([]models.Book, error) {
		out := items[:0]
		for _, it := range items {
			if it.ID != bookID {
				out = append(out, it)
			}
		}
		return out, nil
	})
}

func (r *KVRepository) List(ctx context.Context) ([]models.Book, error) {
	return r.items.Load(ctx)
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.items.Save(ctx, []models.Book{})
}
