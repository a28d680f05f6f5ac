// Package addresses stores the current user's delivery addresses.
package addresses

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/paperback/internal/collection"
	"github.com/dmitrijs2005/paperback/internal/identity"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/models"
)

type SaveParams struct {
	FullName string
	Street   string
	City     string
	State    string
	Pincode  string
	Phone    string
}

type Repository interface {
	// Save assigns id, timestamp and current-user ownership and appends.
	Save(ctx context.Context, params SaveParams) (*models.Address, error)

	// List returns the current user's addresses, newest first.
	List(ctx context.Context) ([]models.Address, error)
}

type KVRepository struct {
	addresses *collection.Collection[models.Address]
	ident     identity.Provider
	nowFn     func() time.Time
}

func NewKVRepository(store kvstore.Store, ident identity.Provider) *KVRepository {
	return &KVRepository{
		addresses: collection.New[models.Address](store, collection.Addresses),
		ident:     ident,
		nowFn:     time.Now,
	}
}

func (r *KVRepository) Save(ctx context.Context, params SaveParams) (*models.Address, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	addr := models.Address{
		ID:        uuid.NewString(),
		UserID:    userID,
		FullName:  params.FullName,
		Street:    params.Street,
		City:      params.City,
		State:     params.State,
		Pincode:   params.Pincode,
		Phone:     params.Phone,
		CreatedAt: r.nowFn(),
	}
	if err := r.addresses.Update(ctx, func(items []models.Address) ([]models.Address, error) {
		return append(items, addr), nil
	}); err != nil {
		return nil, fmt.Errorf("saving address: %w", err)
	}
	return &addr, nil
}

func (r *KVRepository) List(ctx context.Context) ([]models.Address, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.addresses.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Address, 0, len(items))
	for _, a := range items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
