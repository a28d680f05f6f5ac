package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/logging"
)

// clock is a manually advanced time source starting at the real current
// time (token signatures embed real expiry instants, so a past-dated clock
// would mint tokens that are already invalid). Tokens minted at the same
// instant for the same user are identical, so tests tick between issuances.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newService(t *testing.T) (*IdentityService, *clock) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := NewIdentityService(kvstore.NewMemoryStore(), IdentityConfig{TokenSecret: []byte("test-secret")}, log)
	c := &clock{now: time.Now()}
	svc.nowFn = c.Now
	return svc, c
}

func registerReader(t *testing.T, svc *IdentityService) *AuthResult {
	t.Helper()
	res, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Reader One",
		Email:    "reader@example.com",
		Username: "reader",
		Password: "s3cret",
	})
	require.NoError(t, err)
	return res
}

func TestRegister(t *testing.T) {
	svc, _ := newService(t)
	res := registerReader(t, svc)

	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, "reader", res.User.Username)
	assert.False(t, res.User.IsVerified)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, c := newService(t)
	registerReader(t, svc)
	c.Advance(time.Minute)

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "reader@example.com",
		Username: "someone-else",
		Password: "pw",
	})
	require.ErrorIs(t, err, common.ErrEmailAlreadyExists)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, c := newService(t)
	registerReader(t, svc)
	c.Advance(time.Minute)

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "other@example.com",
		Username: "reader",
		Password: "pw",
	})
	require.ErrorIs(t, err, common.ErrUsernameAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, c := newService(t)
	registerReader(t, svc)
	c.Advance(time.Minute)

	res, err := svc.Login(context.Background(), Credentials{Username: "reader", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "reader", res.User.Username)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	svc, _ := newService(t)
	registerReader(t, svc)
	ctx := context.Background()

	_, wrongPassword := svc.Login(ctx, Credentials{Username: "reader", Password: "nope"})
	_, unknownUser := svc.Login(ctx, Credentials{Username: "ghost", Password: "s3cret"})

	require.ErrorIs(t, wrongPassword, common.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestSessionUser_ExpiresAfterTTL(t *testing.T) {
	svc, c := newService(t)
	res := registerReader(t, svc)
	ctx := context.Background()

	userID, err := svc.SessionUser(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	c.Advance(61 * time.Minute)
	_, err = svc.SessionUser(ctx, res.Token)
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestSessionUser_RejectsForgedTokens(t *testing.T) {
	svc, c := newService(t)
	res := registerReader(t, svc)
	ctx := context.Background()

	_, err := svc.SessionUser(ctx, "not-a-token")
	require.ErrorIs(t, err, common.ErrUnauthenticated)

	// A refresh token is a validly signed bundle but backs no session row.
	_, err = svc.SessionUser(ctx, res.RefreshToken)
	require.ErrorIs(t, err, common.ErrUnauthenticated)

	// A token signed under a different secret never reaches the row scan.
	other := NewIdentityService(kvstore.NewMemoryStore(), IdentityConfig{TokenSecret: []byte("other-secret")}, svc.log)
	other.nowFn = c.Now
	stolen, err := other.Register(ctx, RegisterParams{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "s3cret",
	})
	require.NoError(t, err)
	_, err = svc.SessionUser(ctx, stolen.Token)
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, c := newService(t)
	res := registerReader(t, svc)
	ctx := context.Background()

	c.Advance(30 * time.Minute)
	rotated, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, res.User.ID, rotated.User.ID)

	// The presented token was revoked by the exchange.
	c.Advance(time.Minute)
	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)

	// The rotated token still works.
	c.Advance(time.Minute)
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	svc, c := newService(t)
	res := registerReader(t, svc)

	c.Advance(8 * 24 * time.Hour)
	_, err := svc.Refresh(context.Background(), res.RefreshToken)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
}

func TestRevokeRefreshToken(t *testing.T) {
	svc, c := newService(t)
	res := registerReader(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.RevokeRefreshToken(ctx, res.RefreshToken))

	c.Advance(time.Minute)
	_, err := svc.Refresh(ctx, res.RefreshToken)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)

	err = svc.RevokeRefreshToken(ctx, "no-such-token")
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
}

func TestLogout_InvalidatesSessionsNotRefreshTokens(t *testing.T) {
	svc, c := newService(t)
	res := registerReader(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx))

	_, err := svc.SessionUser(ctx, res.Token)
	require.ErrorIs(t, err, common.ErrUnauthenticated)

	// Refresh tokens are a separate collection and survive logout.
	c.Advance(time.Minute)
	_, err = svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
}

func TestVerifyEmail(t *testing.T) {
	svc, c := newService(t)
	res := registerReader(t, svc)
	ctx := context.Background()

	token, err := svc.RequestEmailVerification(ctx, "reader@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	c.Advance(time.Minute)
	require.NoError(t, svc.VerifyEmail(ctx, token.Token))

	// Single use: a second redemption misses.
	err = svc.VerifyEmail(ctx, token.Token)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)

	// The account is now verified.
	userID, err := svc.SessionUser(ctx, res.Token)
	require.NoError(t, err)
	accounts, err := svc.accounts.Load(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, userID, accounts[0].ID)
	assert.True(t, accounts[0].IsVerified)
}

func TestVerifyEmail_Expired(t *testing.T) {
	svc, c := newService(t)
	registerReader(t, svc)
	ctx := context.Background()

	token, err := svc.RequestEmailVerification(ctx, "reader@example.com")
	require.NoError(t, err)

	c.Advance(25 * time.Hour)
	err = svc.VerifyEmail(ctx, token.Token)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredToken)
}

func TestProvider_MostRecentValidSession(t *testing.T) {
	svc, c := newService(t)
	first := registerReader(t, svc)
	ctx := context.Background()

	c.Advance(time.Minute)
	second, err := svc.Register(ctx, RegisterParams{
		Name:     "Reader Two",
		Email:    "two@example.com",
		Username: "reader2",
		Password: "pw",
	})
	require.NoError(t, err)

	userID, err := svc.Provider().CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.User.ID, userID)
	assert.NotEqual(t, first.User.ID, userID)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Provider().CurrentUserID(ctx)
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}
