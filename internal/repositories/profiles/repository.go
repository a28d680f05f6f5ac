// Package profiles stores user profiles with upsert semantics: one profile
// per identity, replaced as a whole on save.
package profiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/paperback/internal/collection"
	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/identity"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/models"
)

type Repository interface {
	// Get returns the current user's profile or common.ErrNotFound.
	Get(ctx context.Context) (*models.UserProfile, error)

	// Save upserts the current user's profile. The stored ID always comes
	// from the identity provider, never the caller.
	Save(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)
}

type KVRepository struct {
	profiles *collection.Collection[models.UserProfile]
	ident    identity.Provider
}

func NewKVRepository(store kvstore.Store, ident identity.Provider) *KVRepository {
	return &KVRepository{
		profiles: collection.New[models.UserProfile](store, collection.Profiles),
		ident:    ident,
	}
}

func (r *KVRepository) Get(ctx context.Context) (*models.UserProfile, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		if p.ID == userID {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("profile %s: %w", userID, common.ErrNotFound)
}

func (r *KVRepository) Save(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	profile.ID = userID

	if err := r.profiles.Update(ctx, func(items []models.UserProfile) ([]models.UserProfile, error) {
		for i := range items {
			if items[i].ID == userID {
				items[i] = profile
				return items, nil
			}
		}
		return append(items, profile), nil
	}); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	return &profile, nil
}
