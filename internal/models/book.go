// Package models defines the records persisted by the marketplace client.
// Field tags match the JSON written by the first release; changing a record
// shape is a breaking change for existing installs.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Price carries a price as it was stored. The first release wrote prices as
// JSON numbers; later records are strings, sometimes already in canonical
// form. Both shapes must decode or old installs lose their listings.
// Normalization to the canonical display form happens on read in the catalog
// repository, not here.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*p = ""
	case string:
		*p = Price(value)
	case float64:
		*p = Price(strconv.FormatFloat(value, 'f', -1, 64))
	default:
		return fmt.Errorf("invalid price %s", string(b))
	}
	return nil
}

// Condition describes a used book's physical state.
type Condition string

const (
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
)

// Book is a listed item. Immutable once created: there is no update
// operation, only creation and lookup.
//
// Price fields are stored as they were entered and normalized on read, so
// both raw numbers ("250") and canonical strings ("₹250.00") occur in old
// data.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Price         Price     `json:"price"`
	OriginalPrice Price     `json:"originalPrice,omitempty"`
	Condition     Condition `json:"condition"`
	ImageURL      string    `json:"imageUrl"`
	SellerName    string    `json:"sellerName"`
	Location      string    `json:"location"`
	PostedDate    time.Time `json:"postedDate"`
	Category      string    `json:"category"`
}

// Review rates a book 1–5. Many-to-one with Book via BookID; nothing
// enforces that the book still exists.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
