package domain

import (
	"regexp"
	"time"
)

// Payment is the chosen payment method. The zero value means unset.
type Payment string

const (
	PaymentUnset Payment = ""
	PaymentCard  Payment = "card"
	PaymentCash  Payment = "cash"
)

// Valid reports whether p is a selectable method.
func (p Payment) Valid() bool {
	return p == PaymentCard || p == PaymentCash
}

// OrderField names an order draft field a form may set.
type OrderField string

const (
	FieldPayment OrderField = "payment"
	FieldEmail   OrderField = "email"
	FieldPhone   OrderField = "phone"
	FieldAddress OrderField = "address"
)

// Contact reports whether the field belongs to the email/phone group.
func (f OrderField) Contact() bool {
	return f == FieldEmail || f == FieldPhone
}

var (
	EmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	PhonePattern = regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$|^8\d{10}$`)
)

// Order is the checkout payload. Total and Items are filled by the system at
// submit time, never from form input.
type Order struct {
	Payment Payment  `json:"payment"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Total   int64    `json:"total"`
	Items   []string `json:"items"`
}

// PlacedOrder is an accepted order as the backend stores it.
type PlacedOrder struct {
	ID string
	Order
	CreatedAt time.Time
}

// OrderResult is the backend answer to POST /order. A non-empty Error marks a
// business failure regardless of the HTTP status.
type OrderResult struct {
	ID    StringList `json:"id,omitempty"`
	Total int64      `json:"total"`
	Error string     `json:"error,omitempty"`
}

// FormErrors maps an order field to a human-readable message.
type FormErrors map[OrderField]string
