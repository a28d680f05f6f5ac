package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paperback/internal/common"
)

func TestStatic(t *testing.T) {
	userID, err := Static("u1").CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = Static("").CurrentUserID(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestFunc(t *testing.T) {
	p := Func(func(ctx context.Context) (string, error) { return "u2", nil })

	userID, err := p.CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u2", userID)
}
