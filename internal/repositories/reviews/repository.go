// Package reviews stores book reviews. All reviews live in one collection
// and are filtered by book id on read.
package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/paperback/internal/collection"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/models"
)

type AddParams struct {
	UserID   string
	UserName string
	Rating   int
	Comment  string
}

type Repository interface {
	Add(ctx context.Context, bookID string, params AddParams) (*models.Review, error)
	ForBook(ctx context.Context, bookID string) ([]models.Review, error)
}

type KVRepository struct {
	reviews *collection.Collection[models.Review]
	nowFn   func() time.Time
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{
		reviews: collection.New[models.Review](store, collection.Reviews),
		nowFn:   time.Now,
	}
}

func (r *KVRepository) Add(ctx context.Context, bookID string, params AddParams) (*models.Review, error) {
	review := models.Review{
		ID:        uuid.NewString(),
		BookID:    bookID,
		UserID:    params.UserID,
		UserName:  params.UserName,
		Rating:    params.Rating,
		Comment:   params.Comment,
		CreatedAt: r.nowFn(),
	}
	if err := r.reviews.Update(ctx, func(items []models.Review) ([]models.Review, error) {
		return append(items, review), nil
	}); err != nil {
		return nil, fmt.Errorf("adding review: %w", err)
	}
	return &review, nil
}

func (r *KVRepository) ForBook(ctx context.Context, bookID string) ([]models.Review, error) {
	items, err := r.reviews.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Review, 0, len(items))
	for _, rv := range items {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	return out, nil
}
