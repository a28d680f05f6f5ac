// Package orders implements order creation and status tracking. Creating an
// order also clears the cart; the two writes are sequential, not atomic, and
// the gap between them is surfaced as a distinct, recoverable error.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/paperback/internal/collection"
	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/identity"
	"github.com/dmitrijs2005/paperback/internal/kvstore"
	"github.com/dmitrijs2005/paperback/internal/logging"
	"github.com/dmitrijs2005/paperback/internal/models"
	"github.com/dmitrijs2005/paperback/internal/repositories/bookset"
)

type CreateParams struct {
	BookID        string
	PaymentMethod models.PaymentMethod
	Address       models.Address
	UpiID         string
}

type Repository interface {
	// Create assigns ownership and timestamps, appends the order, then
	// clears the cart. If the cart clear fails after the order write
	// succeeded, the persisted order is returned together with an error
	// matching common.ErrCartNotCleared.
	Create(ctx context.Context, params CreateParams) (*models.Order, error)

	// GetByID returns the current user's order or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Order, error)

	// ListForUser returns the current user's orders in stored order.
	ListForUser(ctx context.Context) ([]models.Order, error)

	// UpdateStatus replaces the status and updatedAt of an owned order.
	// A missing id and someone else's order both fail with
	// common.ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

type KVRepository struct {
	orders *collection.Collection[models.Order]
	cart   bookset.Repository
	ident  identity.Provider
	log    logging.Logger
	nowFn  func() time.Time
}

func NewKVRepository(store kvstore.Store, cart bookset.Repository, ident identity.Provider, log logging.Logger) *KVRepository {
	return &KVRepository{
		orders: collection.New[models.Order](store, collection.Orders),
		cart:   cart,
		ident:  ident,
		log:    log,
		nowFn:  time.Now,
	}
}

func (r *KVRepository) Create(ctx context.Context, params CreateParams) (*models.Order, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	now := r.nowFn()
	order := models.Order{
		ID:            uuid.NewString(),
		BookID:        params.BookID,
		UserID:        userID,
		PaymentMethod: params.PaymentMethod,
		Address:       params.Address,
		Status:        models.OrderPending,
		UpiID:         params.UpiID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := r.orders.Update(ctx, func(items []models.Order) ([]models.Order, error) {
		return append(items, order), nil
	}); err != nil {
		r.log.Error(ctx, "order write failed", "err", err)
		return nil, fmt.Errorf("creating order: %w", err)
	}

	// Second, sequential step. No rollback exists: on failure the order
	// stays persisted and the caller gets the recoverable inconsistency.
	if err := r.cart.Clear(ctx); err != nil {
		r.log.Warn(ctx, "order persisted but cart clear failed", "orderId", order.ID, "err", err)
		return &order, fmt.Errorf("%w: order %s: %v", common.ErrCartNotCleared, order.ID, err)
	}

	return &order, nil
}

func (r *KVRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.orders.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range items {
		if o.ID == id && o.UserID == userID {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, common.ErrNotFound)
}

func (r *KVRepository) ListForUser(ctx context.Context) ([]models.Order, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.orders.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(items))
	for _, o := range items {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *KVRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	userID, err := r.ident.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Order
	err = r.orders.Update(ctx, func(items []models.Order) ([]models.Order, error) {
		for i := range items {
			if items[i].ID == id && items[i].UserID == userID {
				items[i].Status = status
				items[i].UpdatedAt = r.nowFn()
				o := items[i]
				updated = &o
				return items, nil
			}
		}
		return nil, fmt.Errorf("order %s: %w", id, common.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
