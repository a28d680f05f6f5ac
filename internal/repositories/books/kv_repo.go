// Package books implements the catalog repository over the book collection.
package books

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/paperback/internal/collection"
	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/models"
	"github.com/dmitrijs2005/paperback/internal/price"
	"github.com/dmitrijs2005/paperback/internal/textmatch"
)

// recentLimit bounds the recently-added side index.
const recentLimit = 10

// suggestedLimit caps the similar-books suggestion.
const suggestedLimit = 5

// CategoryAll is the sentinel category matching every book.
const CategoryAll = "All"

type KVRepository struct {
	books  *collection.Collection[models.Book]
	recent *collection.Collection[models.Book]
	nowFn  func() time.Time
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{
		books:  collection.New[models.Book](store, collection.Books),
		recent: collection.New[models.Book](store, collection.RecentBooks),
		nowFn:  time.Now,
	}
}

// normalize canonicalizes both price fields, deriving the original price as
// price x 1.5 when the listing never carried one.
func normalize(b models.Book) models.Book {
	b.Price = models.Price(price.Normalize(string(b.Price)))
	if b.OriginalPrice == "" {
		b.OriginalPrice = models.Price(price.Normalize(price.Amount(string(b.Price)) * 1.5))
	} else {
		b.OriginalPrice = models.Price(price.Normalize(string(b.OriginalPrice)))
	}
	return b
}

func (r *KVRepository) List(ctx context.Context) ([]models.Book, error) {
	items, err := r.books.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Book, len(items))
	for i, b := range items {
		out[i] = normalize(b)
	}
	return out, nil
}

func (r *KVRepository) Add(ctx context.Context, params AddParams) (*models.Book, error) {
	book := models.Book{
		ID:         uuid.NewString(),
		Title:      params.Title,
		Author:     params.Author,
		Price:      models.Price(params.Price),
		Condition:  params.Condition,
		ImageURL:   params.ImageURL,
		SellerName: params.SellerName,
		Location:   params.Location,
		PostedDate: r.nowFn(),
		Category:   params.Category,
	}

	if err := r.books.Update(ctx, func(items []models.Book) ([]models.Book, error) {
		return append([]models.Book{book}, items...), nil
	}); err != nil {
		return nil, fmt.Errorf("adding book: %w", err)
	}

	if err := r.recent.Update(ctx, func(items []models.Book) ([]models.Book, error) {
		items = append([]models.Book{book}, items...)
		if len(items) > recentLimit {
			items = items[:recentLimit]
		}
		return items, nil
	}); err != nil {
		return nil, fmt.Errorf("updating recent index: %w", err)
	}

	normalized := normalize(book)
	return &normalized, nil
}

func (r *KVRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	items, err := r.books.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range items {
		if b.ID == id {
			found := normalize(b)
			return &found, nil
		}
	}
	return nil, fmt.Errorf("book %s: %w", id, common.ErrNotFound)
}

func (r *KVRepository) ByCategory(ctx context.Context, category string) ([]models.Book, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == CategoryAll {
		return items, nil
	}
	out := make([]models.Book, 0, len(items))
	for _, b := range items {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *KVRepository) Suggested(ctx context.Context, currentID string) ([]models.Book, error) {
	current, err := r.GetByID(ctx, currentID)
	if err != nil {
		return nil, err
	}
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	key := current.Title + " " + current.Author
	out := make([]models.Book, 0, suggestedLimit)
	for _, b := range items {
		if b.ID == currentID {
			continue
		}
		if textmatch.SharesWord(key, b.Title+" "+b.Author) {
			out = append(out, b)
			if len(out) == suggestedLimit {
				break
			}
		}
	}
	return out, nil
}

func (r *KVRepository) Search(ctx context.Context, query string) ([]models.Book, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Book, 0, len(items))
	for _, b := range items {
		if textmatch.Fuzzy(query, b.Title) || textmatch.Fuzzy(query, b.Author) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *KVRepository) RecentlyAdded(ctx context.Context) ([]models.Book, error) {
	items, err := r.recent.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Book, len(items))
	for i, b := range items {
		out[i] = normalize(b)
	}
	return out, nil
}
