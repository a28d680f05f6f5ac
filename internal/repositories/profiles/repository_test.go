package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/identity"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/models"
)

func TestGet_NoProfile(t *testing.T) {
	repo := NewKVRepository(kvstore.NewMemoryStore(), identity.Static("u1"))
	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSave_Upserts(t *testing.T) {
	repo := NewKVRepository(kvstore.NewMemoryStore(), identity.Static("u1"))
	ctx := context.Background()

	saved, err := repo.Save(ctx, models.UserProfile{Name: "Reader", Email: "reader@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.ID, "the stored id comes from the identity provider")

	saved, err = repo.Save(ctx, models.UserProfile{ID: "spoofed", Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.ID)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Empty(t, got.Email, "save replaces the profile as a whole")
}

func TestProfiles_PerIdentity(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()

	first := NewKVRepository(store, identity.Static("u1"))
	second := NewKVRepository(store, identity.Static("u2"))

	_, err := first.Save(ctx, models.UserProfile{Name: "First"})
	require.NoError(t, err)
	_, err = second.Save(ctx, models.UserProfile{Name: "Second"})
	require.NoError(t, err)

	got, err := first.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
}
