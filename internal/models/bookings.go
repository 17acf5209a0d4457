package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Purchaser is the contact block sent as the booking "address".
type Purchaser struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,contact_email"`
	Phone     string `json:"phone" validate:"required,phone10"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p Purchaser) Trimmed() Purchaser {
	return Purchaser{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Phone:     strings.TrimSpace(p.Phone),
	}
}

func (p Purchaser) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type BookingItem struct {
	ID       string `json:"_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type BookingRequest struct {
	UserID   string          `json:"userId,omitempty"`
	EventID  string          `json:"eventId" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=1"`
	Items    []BookingItem   `json:"items" validate:"required,min=1,dive"`
	Amount   decimal.Decimal `json:"amount"`
	Address  Purchaser       `json:"address"`
}

// NewBookingRequest builds the request for quantity tickets of event.
func NewBookingRequest(userID string, event Event, quantity int, purchaser Purchaser) BookingRequest {
	return BookingRequest{
		UserID:   userID,
		EventID:  event.ID,
		Quantity: quantity,
		Items:    []BookingItem{{ID: event.ID, Quantity: quantity}},
		Amount:   event.Total(quantity),
		Address:  purchaser,
	}
}

// BookingOrder is issued by the backend for a pending payment.
// Amount is in the smallest currency unit expected by the payment provider.
type BookingOrder struct {
	OrderID  string          `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// status to track booking state (e.g., "pending", "paid")
const (
	BookingPending = "pending"
	BookingPaid    = "paid"
)

// Booking is the dev backend's record of a created order.
type Booking struct {
	ID        string          `json:"_id"`
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"userId"`
	EventID   string          `json:"eventId"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Address   Purchaser       `json:"address"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}
