package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type failingStore struct {
	getErr error
	setErr error
}

func (s *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return "", false, nil
}

func (s *failingStore) Set(ctx context.Context, key, value string) error { return s.setErr }
func (s *failingStore) Remove(ctx context.Context, key string) error     { return nil }

func TestLoad_MissingKey(t *testing.T) {
	c := New[record](kvstore.NewMemoryStore(), "@things")

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestLoad_CorruptPayload(t *testing.T) {
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "@things", "{not json"))

	c := New[record](store, "@things")
	items, err := c.Load(context.Background())
	require.NoError(t, err, "a broken payload must not raise")
	assert.Empty(t, items)
}

func TestLoad_StoreFailure(t *testing.T) {
	c := New[record](&failingStore{getErr: common.ErrStorage}, "@things")
	_, err := c.Load(context.Background())
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	c := New[record](store, "@things")
	ctx := context.Background()

	in := []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	require.NoError(t, c.Save(ctx, in))

	out, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSave_ReplacesEntirely(t *testing.T) {
	store := kvstore.NewMemoryStore()
	c := New[record](store, "@things")
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, []record{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, c.Save(ctx, []record{{ID: "3"}}))

	out, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "3"}}, out)
}

func TestUpdate_MutatesUnderPolicy(t *testing.T) {
	store := kvstore.NewMemoryStore()
	c := New[record](store, "@things")
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, func(items []record) ([]record, error) {
		return append(items, record{ID: "1"}), nil
	}))
	require.NoError(t, c.Update(ctx, func(items []record) ([]record, error) {
		return append(items, record{ID: "2"}), nil
	}))

	out, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestUpdate_MutateErrorSkipsSave(t *testing.T) {
	store := kvstore.NewMemoryStore()
	c := New[record](store, "@things")
	ctx := context.Background()
	require.NoError(t, c.Save(ctx, []record{{ID: "1"}}))

	wantErr := errors.New("rejected")
	err := c.Update(ctx, func(items []record) ([]record, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	out, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "1"}}, out, "failed mutation must not overwrite the collection")
}

func TestUpdate_SetFailurePropagates(t *testing.T) {
	c := New[record](&failingStore{setErr: common.ErrStorage}, "@things")
	err := c.Update(context.Background(), func(items []record) ([]record, error) {
		return items, nil
	})
	assert.ErrorIs(t, err, common.ErrStorage)
}
