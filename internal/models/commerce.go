package models

import "time"

// Address is a delivery address owned by a user.
type Address struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentMethod is how an order is paid for.
type PaymentMethod string

const (
	PaymentCOD        PaymentMethod = "cod"
	PaymentUPI        PaymentMethod = "upi"
	PaymentCard       PaymentMethod = "card"
	PaymentNetbanking PaymentMethod = "netbanking"
)

// OrderStatus is an order's lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order records a purchase. The address is embedded by value at creation
// time: later edits to the address book do not affect past orders.
type Order struct {
	ID            string        `json:"id"`
	BookID        string        `json:"bookId"`
	UserID        string        `json:"userId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Address       Address       `json:"address"`
	Status        OrderStatus   `json:"status"`
	UpiID         string        `json:"upiId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// UserProfile is the single editable profile per identity, upserted as a
// whole.
type UserProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Avatar  string `json:"avatar"`
}
