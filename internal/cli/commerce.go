package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/models"
	"github.com/dmitrijs2005/paperback/internal/repositories/addresses"
	"github.com/dmitrijs2005/paperback/internal/repositories/bookset"
	"github.com/dmitrijs2005/paperback/internal/repositories/orders"
)

// Cart handles "cart", "cart add" and "cart rm".
func (a *App) Cart(ctx context.Context, args []string) error {
	return a.itemList(ctx, a.cart, "cart", args)
}

// Wishlist handles "wishlist", "wishlist add" and "wishlist rm".
func (a *App) Wishlist(ctx context.Context, args []string) error {
	return a.itemList(ctx, a.wishlist, "wishlist", args)
}

func (a *App) itemList(ctx context.Context, repo bookset.Repository, name string, args []string) error {
	if len(args) == 0 {
		items, err := repo.List(ctx)
		if err != nil {
			a.printErr(err)
			return err
		}
		a.printBooks(items)
		return nil
	}

	var id string
	if len(args) > 1 {
		id = args[1]
	} else {
		var err error
		id, err = GetSimpleText(a.reader, "Book id", os.Stdout)
		if err != nil {
			a.printErr(err)
			return err
		}
	}

	switch args[0] {
	case "add":
		book, err := a.books.GetByID(ctx, id)
		if err != nil {
			a.printErr(err)
			return err
		}
		if err := repo.Add(ctx, *book); err != nil {
			a.printErr(err)
			return err
		}
		printlnFn("Added to", name)
	case "rm":
		if err := repo.Remove(ctx, id); err != nil {
			a.printErr(err)
			return err
		}
		printlnFn("Removed from", name)
	default:
		printlnFn("Usage:", name, "[add|rm]")
	}
	return nil
}

// Checkout places an order for one book from the cart and clears the cart.
func (a *App) Checkout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}

	items, err := a.cart.List(ctx)
	if err != nil {
		a.printErr(err)
		return err
	}
	if len(items) == 0 {
		printlnFn("Cart is empty")
		return nil
	}
	book := items[0]

	addr, err := a.readAddress(ctx)
	if err != nil {
		return err
	}

	method, err := GetSimpleText(a.reader, "Payment method (cod/upi/card/netbanking)", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	var upiID string
	if models.PaymentMethod(method) == models.PaymentUPI {
		upiID, err = GetSimpleText(a.reader, "UPI id", os.Stdout)
		if err != nil {
			a.printErr(err)
			return err
		}
	}

	order, err := a.orders.Create(ctx, orders.CreateParams{
		BookID:        book.ID,
		PaymentMethod: models.PaymentMethod(method),
		Address:       *addr,
		UpiID:         upiID,
	})
	if err != nil {
		if errors.Is(err, common.ErrCartNotCleared) {
			// The order went through; only the cart cleanup is pending.
			printlnFn("Order", order.ID, "placed, but the cart could not be cleared; try again later")
			return nil
		}
		a.printErr(err)
		return err
	}

	printlnFn("Order placed:", order.ID)
	return nil
}

func (a *App) readAddress(ctx context.Context) (*models.Address, error) {
	fullName, err := GetSimpleText(a.reader, "Full name", os.Stdout)
	if err != nil {
		a.printErr(err)
		return nil, err
	}
	street, err := GetSimpleText(a.reader, "Street", os.Stdout)
	if err != nil {
		a.printErr(err)
		return nil, err
	}
	city, err := GetSimpleText(a.reader, "City", os.Stdout)
	if err != nil {
		a.printErr(err)
		return nil, err
	}
	state, err := GetSimpleText(a.reader, "State", os.Stdout)
	if err != nil {
		a.printErr(err)
		return nil, err
	}
	pincode, err := GetSimpleText(a.reader, "Pincode", os.Stdout)
	if err != nil {
		a.printErr(err)
		return nil, err
	}
	phone, err := GetSimpleText(a.reader, "Phone", os.Stdout)
	if err != nil {
		a.printErr(err)
		return nil, err
	}

	addr, err := a.addresses.Save(ctx, addresses.SaveParams{
		FullName: fullName,
		Street:   street,
		City:     city,
		State:    state,
		Pincode:  pincode,
		Phone:    phone,
	})
	if err != nil {
		a.printErr(err)
		return nil, err
	}
	return addr, nil
}

func (a *App) Orders(ctx context.Context) error {
	items, err := a.orders.ListForUser(ctx)
	if err != nil {
		a.printErr(err)
		return err
	}
	if len(items) == 0 {
		printlnFn("No orders yet")
		return nil
	}
	for _, o := range items {
		printlnFn(fmt.Sprintf("%s  book=%s  %s  %s", o.ID, o.BookID, o.PaymentMethod, o.Status))
	}
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}

	profile, err := a.profiles.Get(ctx)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		a.printErr(err)
		return err
	}
	if profile != nil {
		printlnFn(fmt.Sprintf("%s <%s> %s", profile.Name, profile.Email, profile.Phone))
	}

	update, err := GetSimpleText(a.reader, "Update profile? (y/n)", os.Stdout)
	if err != nil || update != "y" {
		return nil
	}

	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := GetSimpleText(a.reader, "Phone", os.Stdout)
	if err != nil {
		return err
	}
	address, err := GetSimpleText(a.reader, "Address", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.profiles.Save(ctx, models.UserProfile{
		Name:    name,
		Email:   a.user.Email,
		Phone:   phone,
		Address: address,
	}); err != nil {
		a.printErr(err)
		return err
	}
	printlnFn("Profile saved")
	return nil
}
