// Package cli implements the Paperback REPL: a thin interactive surface over
// the repositories and the identity service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/paperback/internal/config"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/logging"
	"github.com/dmitrijs2005/paperback/internal/models"
	"github.com/dmitrijs2005/paperback/internal/repositories/addresses"
	"github.com/dmitrijs2005/paperback/internal/repositories/books"
	"github.com/dmitrijs2005/paperback/internal/repositories/bookset"
	"github.com/dmitrijs2005/paperback/internal/repositories/orders"
	"github.com/dmitrijs2005/paperback/internal/repositories/profiles"
	"github.com/dmitrijs2005/paperback/internal/repositories/reviews"
	"github.com/dmitrijs2005/paperback/internal/services"
)

type App struct {
	config *config.Config
	log    logging.Logger

	identity  *services.IdentityService
	books     books.Repository
	reviews   reviews.Repository
	cart      bookset.Repository
	wishlist  bookset.Repository
	addresses addresses.Repository
	orders    orders.Repository
	profiles  profiles.Repository

	user   *models.PublicProfile
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, err := openStore(c)
	if err != nil {
		return nil, err
	}

	svc := services.NewIdentityService(store, services.IdentityConfig{
		TokenSecret: []byte(c.TokenSecret),
		SessionTTL:  c.SessionTTL,
		RefreshTTL:  c.RefreshTTL,
	}, log)

	ident := svc.Provider()
	cart := bookset.NewCart(store)

	return &App{
		config:    c,
		log:       log,
		identity:  svc,
		books:     books.NewKVRepository(store),
		reviews:   reviews.NewKVRepository(store),
		cart:      cart,
		wishlist:  bookset.NewWishlist(store),
		addresses: addresses.NewKVRepository(store, ident),
		orders:    orders.NewKVRepository(store, cart, ident, log),
		profiles:  profiles.NewKVRepository(store, ident),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// openStore picks the persistence backend: Redis when configured, the
// file-backed store otherwise.
func openStore(c *config.Config) (kvstore.Store, error) {
	if c.RedisAddr != "" {
		return kvstore.NewRedisStore(c.RedisAddr, c.RedisPassword), nil
	}
	return kvstore.NewFileStore(c.DataDir)
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) printErr(err error) {
	printlnFn(fmt.Sprintf("error: %v", err))
}
