// Package services contains the application services built on top of the
// repositories. This file implements the identity service: registration,
// login, session/refresh token issuance, email verification, and logout.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/paperback/internal/auth"
	"github.com/dmitrijs2005/paperback/internal/collection"
	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/cryptox"
	"github.com/dmitrijs2005/paperback/internal/identity"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/logging"
	"github.com/dmitrijs2005/paperback/internal/models"
)

// Default token lifetimes. Sessions are short-lived; refresh tokens justify
// issuing new sessions for a week.
const (
	DefaultSessionTTL      = time.Hour
	DefaultRefreshTTL      = 7 * 24 * time.Hour
	DefaultVerificationTTL = 24 * time.Hour
)

// RegisterParams carries a registration form.
type RegisterParams struct {
	Name     string
	Email    string
	Username string
	Password string
	Contact  string
}

// Credentials carries a login form.
type Credentials struct {
	Username string
	Password string
}

// AuthResult bundles the public profile with a fresh session token and
// refresh token.
type AuthResult struct {
	User         models.PublicProfile
	Token        string
	RefreshToken string
}

// IdentityConfig tunes the identity service.
type IdentityConfig struct {
	TokenSecret     []byte
	SessionTTL      time.Duration
	RefreshTTL      time.Duration
	VerificationTTL time.Duration
}

// IdentityService manages the accounts, sessions, refresh-token, and
// verification-token collections. It never touches the catalog or commerce
// collections.
type IdentityService struct {
	accounts *collection.Collection[models.Account]
	sessions *collection.Collection[models.Session]
	refresh  *collection.Collection[models.RefreshToken]
	verify   *collection.Collection[models.VerificationToken]

	secret          []byte
	sessionTTL      time.Duration
	refreshTTL      time.Duration
	verificationTTL time.Duration

	log   logging.Logger
	nowFn func() time.Time
}

func NewIdentityService(store kvstore.Store, cfg IdentityConfig, log logging.Logger) *IdentityService {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.VerificationTTL == 0 {
		cfg.VerificationTTL = DefaultVerificationTTL
	}
	return &IdentityService{
		accounts:        collection.New[models.Account](store, collection.Accounts),
		sessions:        collection.New[models.Session](store, collection.Sessions),
		refresh:         collection.New[models.RefreshToken](store, collection.RefreshTokens),
		verify:          collection.New[models.VerificationToken](store, collection.VerificationTokens),
		secret:          cfg.TokenSecret,
		sessionTTL:      cfg.SessionTTL,
		refreshTTL:      cfg.RefreshTTL,
		verificationTTL: cfg.VerificationTTL,
		log:             log,
		nowFn:           time.Now,
	}
}

// Register creates an account. Email and username must each be unique across
// the account collection; the two failures stay distinguishable for user
// messaging. On success a session and refresh token are issued and the
// public profile is returned — never the hash or salt.
func (s *IdentityService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	existing, err := s.accounts.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "register: loading accounts", "err", err)
		return nil, err
	}
	for _, a := range existing {
		if a.Email == params.Email {
			return nil, fmt.Errorf("register %q: %w", params.Email, common.ErrEmailAlreadyExists)
		}
		if a.Username == params.Username {
			return nil, fmt.Errorf("register %q: %w", params.Username, common.ErrUsernameAlreadyExists)
		}
	}

	now := s.nowFn()
	salt := cryptox.NewSalt()
	account := models.Account{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		Username:     params.Username,
		PasswordHash: cryptox.HashPassword([]byte(params.Password), salt),
		Salt:         salt,
		Contact:      params.Contact,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsVerified:   false,
		Role:         models.RoleUser,
	}

	if err := s.accounts.Update(ctx, func(items []models.Account) ([]models.Account, error) {
		// Re-check inside the write cycle: the pre-check above ran on a
		// separate snapshot.
		for _, a := range items {
			if a.Email == account.Email {
				return nil, fmt.Errorf("register %q: %w", account.Email, common.ErrEmailAlreadyExists)
			}
			if a.Username == account.Username {
				return nil, fmt.Errorf("register %q: %w", account.Username, common.ErrUsernameAlreadyExists)
			}
		}
		return append(items, account), nil
	}); err != nil {
		return nil, err
	}

	token, refreshToken, err := s.issueTokens(ctx, account.ID)
	if err != nil {
		s.log.Error(ctx, "register: issuing tokens", "userId", account.ID, "err", err)
		return nil, err
	}
	return &AuthResult{User: account.Public(), Token: token, RefreshToken: refreshToken}, nil
}

// Login verifies the credentials and issues a new session and refresh token.
// Unknown username and wrong password fail with the same error so accounts
// cannot be enumerated. Existing sessions stay valid: multiple concurrent
// sessions per account are allowed.
func (s *IdentityService) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "login: loading accounts", "err", err)
		return nil, err
	}

	var account *models.Account
	for i := range accounts {
		if accounts[i].Username == creds.Username {
			account = &accounts[i]
			break
		}
	}
	if account == nil || !cryptox.VerifyPassword(account.PasswordHash, []byte(creds.Password), account.Salt) {
		return nil, common.ErrInvalidCredentials
	}

	token, refreshToken, err := s.issueTokens(ctx, account.ID)
	if err != nil {
		s.log.Error(ctx, "login: issuing tokens", "userId", account.ID, "err", err)
		return nil, err
	}
	return &AuthResult{User: account.Public(), Token: token, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid refresh token for a new session/refresh pair.
// The presented token must exist, be unrevoked, and unexpired; it is revoked
// as part of the exchange (rotation).
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	now := s.nowFn()

	var userID string
	if err := s.refresh.Update(ctx, func(items []models.RefreshToken) ([]models.RefreshToken, error) {
		for i := range items {
			if items[i].Token != refreshToken {
				continue
			}
			if items[i].IsRevoked || !now.Before(items[i].ExpiresAt) {
				return nil, common.ErrInvalidOrExpiredToken
			}
			items[i].IsRevoked = true
			userID = items[i].UserID
			return items, nil
		}
		return nil, common.ErrInvalidOrExpiredToken
	}); err != nil {
		return nil, err
	}

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return nil, err
	}
	var account *models.Account
	for i := range accounts {
		if accounts[i].ID == userID {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", userID, common.ErrNotFound)
	}

	token, newRefresh, err := s.issueTokens(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "refresh: issuing tokens", "userId", userID, "err", err)
		return nil, err
	}
	return &AuthResult{User: account.Public(), Token: token, RefreshToken: newRefresh}, nil
}

// RevokeRefreshToken marks the stored refresh token revoked. Unknown tokens
// fail with ErrInvalidOrExpiredToken.
func (s *IdentityService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.refresh.Update(ctx, func(items []models.RefreshToken) ([]models.RefreshToken, error) {
		for i := range items {
			if items[i].Token == refreshToken {
				items[i].IsRevoked = true
				return items, nil
			}
		}
		return nil, common.ErrInvalidOrExpiredToken
	})
}

// RequestEmailVerification issues a single-use verification token for the
// address. There is no mail transport in this layer; the token is returned
// to the caller, which in the app hands it to the notification UI.
func (s *IdentityService) RequestEmailVerification(ctx context.Context, email string) (*models.VerificationToken, error) {
	raw, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	now := s.nowFn()
	token := models.VerificationToken{
		ID:        uuid.NewString(),
		Email:     email,
		Token:     raw,
		Kind:      models.VerificationKindEmail,
		CreatedAt: now,
		ExpiresAt: now.Add(s.verificationTTL),
	}
	if err := s.verify.Update(ctx, func(items []models.VerificationToken) ([]models.VerificationToken, error) {
		return append(items, token), nil
	}); err != nil {
		s.log.Error(ctx, "issuing verification token", "err", err)
		return nil, err
	}
	return &token, nil
}

// VerifyEmail consumes a non-expired EMAIL_VERIFICATION token: every account
// with the token's email is marked verified and the token is deleted. A miss
// of any kind fails with ErrInvalidOrExpiredToken.
func (s *IdentityService) VerifyEmail(ctx context.Context, token string) error {
	now := s.nowFn()

	var email string
	if err := s.verify.Update(ctx, func(items []models.VerificationToken) ([]models.VerificationToken, error) {
		for i, t := range items {
			if t.Token == token && t.Kind == models.VerificationKindEmail && now.Before(t.ExpiresAt) {
				email = t.Email
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, common.ErrInvalidOrExpiredToken
	}); err != nil {
		return err
	}

	return s.accounts.Update(ctx, func(items []models.Account) ([]models.Account, error) {
		for i := range items {
			if items[i].Email == email {
				items[i].IsVerified = true
				items[i].UpdatedAt = now
			}
		}
		return items, nil
	})
}

// Logout expires every session as of now. Rows are kept, not deleted, so a
// validity check after logout evaluates to invalid.
func (s *IdentityService) Logout(ctx context.Context) error {
	now := s.nowFn()
	return s.sessions.Update(ctx, func(items []models.Session) ([]models.Session, error) {
		for i := range items {
			items[i].ExpiresAt = now
		}
		return items, nil
	})
}

// SessionUser resolves a session token to its user id. The token signature
// and embedded expiry are checked first; the stored row stays authoritative,
// its validity recomputed from the timestamps on every call.
func (s *IdentityService) SessionUser(ctx context.Context, token string) (string, error) {
	userID, err := auth.GetUserIDFromToken(token, s.secret)
	if err != nil {
		return "", common.ErrUnauthenticated
	}
	sessions, err := s.sessions.Load(ctx)
	if err != nil {
		return "", err
	}
	now := s.nowFn()
	for _, sess := range sessions {
		if sess.Token == token && sess.UserID == userID && now.Before(sess.ExpiresAt) {
			return sess.UserID, nil
		}
	}
	return "", common.ErrUnauthenticated
}

// Provider exposes the identity service as the commerce layer's current
// identity: the user of the most recently created still-valid session.
func (s *IdentityService) Provider() identity.Provider {
	return identity.Func(func(ctx context.Context) (string, error) {
		sessions, err := s.sessions.Load(ctx)
		if err != nil {
			return "", err
		}
		now := s.nowFn()
		var latest *models.Session
		for i := range sessions {
			if !now.Before(sessions[i].ExpiresAt) {
				continue
			}
			if latest == nil || sessions[i].CreatedAt.After(latest.CreatedAt) {
				latest = &sessions[i]
			}
		}
		if latest == nil {
			return "", common.ErrUnauthenticated
		}
		return latest.UserID, nil
	})
}

// issueTokens mints a session token and a refresh token for userID and
// persists the backing rows.
func (s *IdentityService) issueTokens(ctx context.Context, userID string) (string, string, error) {
	now := s.nowFn()

	token, err := auth.GenerateToken(userID, s.secret, now, s.sessionTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := auth.GenerateToken(userID, s.secret, now, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Update(ctx, func(items []models.Session) ([]models.Session, error) {
		return append(items, session), nil
	}); err != nil {
		return "", "", err
	}

	refresh := models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     refreshToken,
		CreatedAt: now,
		ExpiresAt: now.Add(s.refreshTTL),
		IsRevoked: false,
	}
	if err := s.refresh.Update(ctx, func(items []models.RefreshToken) ([]models.RefreshToken, error) {
		return append(items, refresh), nil
	}); err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}
