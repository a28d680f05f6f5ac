package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paperback/internal/kvstore"
)

func TestAddAndForBook(t *testing.T) {
	repo := NewKVRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	at := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	repo.nowFn = func() time.Time { return at }

	rv, err := repo.Add(ctx, "b1", AddParams{UserID: "u1", UserName: "Reader", Rating: 4, Comment: "worn but readable"})
	require.NoError(t, err)
	assert.NotEmpty(t, rv.ID)
	assert.Equal(t, at, rv.CreatedAt)

	_, err = repo.Add(ctx, "b2", AddParams{UserID: "u1", UserName: "Reader", Rating: 2})
	require.NoError(t, err)

	got, err := repo.ForBook(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 1, "reviews are filtered by book id")
	assert.Equal(t, "worn but readable", got[0].Comment)
}

func TestForBook_NoReviews(t *testing.T) {
	repo := NewKVRepository(kvstore.NewMemoryStore())

	got, err := repo.ForBook(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
