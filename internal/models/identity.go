package models

import "time"

// Role classifies an account.
const RoleUser = "USER"

// Account is the authenticatable identity. Email and username are each
// unique across the collection. PasswordHash is an argon2id digest of the
// password with the per-account Salt; the raw password is never stored.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"passwordHash"`
	Salt         []byte    `json:"salt"`
	Contact      string    `json:"contact"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	IsVerified   bool      `json:"isVerified"`
	Role         string    `json:"role"`
}

// PublicProfile is the account view handed back to callers. It never carries
// the hash or salt.
type PublicProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Contact    string `json:"contact"`
	IsVerified bool   `json:"isVerified"`
	Role       string `json:"role"`
}

// Public projects an Account onto its caller-visible view.
func (a Account) Public() PublicProfile {
	return PublicProfile{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Username:   a.Username,
		Contact:    a.Contact,
		IsVerified: a.IsVerified,
		Role:       a.Role,
	}
}

// Session is a short-lived local credential. Valid while now < ExpiresAt;
// validity is always recomputed from the stored timestamp, never cached.
// Logout sets ExpiresAt to now instead of deleting the row.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RefreshToken is the longer-lived credential that justifies issuing a new
// Session. Valid while now < ExpiresAt and not revoked.
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `json:"isRevoked"`
}

// VerificationTokenKind discriminates verification token uses.
type VerificationTokenKind string

const VerificationKindEmail VerificationTokenKind = "EMAIL_VERIFICATION"

// VerificationToken is a single-use token mailed (notionally) to an address
// to prove ownership. Consumed on successful verification.
type VerificationToken struct {
	ID        string                `json:"id"`
	Email     string                `json:"email"`
	Token     string                `json:"token"`
	Kind      VerificationTokenKind `json:"type"`
	CreatedAt time.Time             `json:"createdAt"`
	ExpiresAt time.Time             `json:"expiresAt"`
}
