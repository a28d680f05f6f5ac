// Package identity resolves the "current identity" every ownership check in
// the commerce repositories depends on. The first release hard-coded a
// placeholder user id; here the provider is an explicit dependency so tests
// and callers can swap identities.
package identity

import (
	"context"

	"github.com/dmitrijs2005/paperback/internal/common"
)

// Provider yields the account considered logged in. Implementations return
// common.ErrUnauthenticated when there is none.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// Static always answers with a fixed user id. Used by tests and by flows
// that run before the identity service is wired.
type Static string

func (s Static) CurrentUserID(ctx context.Context) (string, error) {
	if s == "" {
		return "", common.ErrUnauthenticated
	}
	return string(s), nil
}

// Func adapts a closure to the Provider interface.
type Func func(ctx context.Context) (string, error)

func (f Func) CurrentUserID(ctx context.Context) (string, error) {
	return f(ctx)
}
