package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/paperback/internal/models"
	"github.com/dmitrijs2005/paperback/internal/repositories/books"
	"github.com/dmitrijs2005/paperback/internal/repositories/reviews"
)

func (a *App) Sell(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	author, err := GetSimpleText(a.reader, "Author", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	priceStr, err := GetSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	condition, err := GetSimpleText(a.reader, "Condition (Like New / Good / Fair)", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	location, err := GetSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	category, err := GetSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}

	book, err := a.books.Add(ctx, books.AddParams{
		Title:      title,
		Author:     author,
		Price:      priceStr,
		Condition:  models.Condition(condition),
		SellerName: a.user.Name,
		Location:   location,
		Category:   category,
	})
	if err != nil {
		a.printErr(err)
		return err
	}

	printlnFn("Listed", book.Title, "for", book.Price)
	return nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.books.List(ctx)
	if err != nil {
		a.printErr(err)
		return err
	}
	a.printBooks(items)
	return nil
}

func (a *App) Search(ctx context.Context) error {
	query, err := GetSimpleText(a.reader, "Search title or author", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	items, err := a.books.Search(ctx, query)
	if err != nil {
		a.printErr(err)
		return err
	}
	a.printBooks(items)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Book id", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	book, err := a.books.GetByID(ctx, id)
	if err != nil {
		a.printErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("%s by %s: %s (was %s), %s, %s", book.Title, book.Author, book.Price, book.OriginalPrice, book.Condition, book.Location))

	bookReviews, err := a.reviews.ForBook(ctx, book.ID)
	if err != nil {
		a.printErr(err)
		return err
	}
	for _, r := range bookReviews {
		printlnFn(fmt.Sprintf("  [%d/5] %s: %s", r.Rating, r.UserName, r.Comment))
	}

	suggested, err := a.books.Suggested(ctx, book.ID)
	if err == nil && len(suggested) > 0 {
		printlnFn("Similar books:")
		a.printBooks(suggested)
	}
	return nil
}

func (a *App) Review(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}

	id, err := GetSimpleText(a.reader, "Book id", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	book, err := a.books.GetByID(ctx, id)
	if err != nil {
		a.printErr(err)
		return err
	}
	ratingStr, err := GetSimpleText(a.reader, "Rating (1-5)", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	rating, err := strconv.Atoi(ratingStr)
	if err != nil || rating < 1 || rating > 5 {
		printlnFn("Rating must be a number from 1 to 5")
		return nil
	}
	comment, err := GetSimpleText(a.reader, "Comment", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}

	if _, err := a.reviews.Add(ctx, book.ID, reviews.AddParams{
		UserID:   a.user.ID,
		UserName: a.user.Name,
		Rating:   rating,
		Comment:  comment,
	}); err != nil {
		a.printErr(err)
		return err
	}

	printlnFn("Review saved for", book.Title)
	return nil
}

func (a *App) printBooks(items []models.Book) {
	if len(items) == 0 {
		printlnFn("No books found")
		return
	}
	for _, b := range items {
		printlnFn(fmt.Sprintf("%s  %-30s %-20s %s", b.ID, b.Title, b.Author, b.Price))
	}
}
