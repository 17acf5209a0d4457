package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type CoverImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
}

type Location struct {
	City      string  `json:"city"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type Event struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"` // major currency unit, e.g. rupees
	TotalTickets int             `json:"totalTickets" validate:"gte=0"`
	TicketsSold  int             `json:"ticketsSold" validate:"gte=0"`
	CoverImage   CoverImage      `json:"coverImage"`
	Location     Location        `json:"location"`
	DateTime     time.Time       `json:"dateTime"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// AvailableTickets is totalTickets - ticketsSold, never negative.
func (e Event) AvailableTickets() int {
	n := e.TotalTickets - e.TicketsSold
	if n < 0 {
		return 0
	}
	return n
}

func (e Event) IsFree() bool {
	return e.Price.IsZero()
}

// Total returns price × quantity.
func (e Event) Total(quantity int) decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(quantity)))
}
