package models

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPurchaser() Purchaser {
	return Purchaser{FirstName: "Asha", LastName: "Rao", Email: "user@example.com", Phone: "9876543210"}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("user@example"))
	assert.False(t, IsValidEmail("userexample.com"))
	assert.False(t, IsValidEmail("us er@example.com"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("9876543210"))
	assert.False(t, IsValidPhone("98765"))
	assert.False(t, IsValidPhone("98765432100"))
	assert.False(t, IsValidPhone("98765abcde"))
}

func TestCustomValidationsRegistered(t *testing.T) {
	assert.NoError(t, Validate.Var("user@example.com", "contact_email"))
	assert.Error(t, Validate.Var("user@example", "contact_email"))
	assert.NoError(t, Validate.Var("9876543210", "phone10"))
	assert.Error(t, Validate.Var("98765", "phone10"))
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	ok := func(validator.FieldLevel) bool { return true }
	assert.Panics(t, func() { mustRegister(validator.New(), "", ok) })
	assert.NotPanics(t, func() { mustRegister(validator.New(), "always", ok) })
}

func TestValidatePurchaser(t *testing.T) {
	require.NoError(t, Validate.Struct(validPurchaser()))

	tests := []struct {
		name    string
		mutate  func(p *Purchaser)
		field   string
		message string
	}{
		{"missing first name", func(p *Purchaser) { p.FirstName = "" }, "firstName", "First name is required."},
		{"missing last name", func(p *Purchaser) { p.LastName = "" }, "lastName", "Last name is required."},
		{"missing email", func(p *Purchaser) { p.Email = "" }, "email", "Email is required."},
		{"bad email", func(p *Purchaser) { p.Email = "user@example" }, "email", "Valid email is required."},
		{"short phone", func(p *Purchaser) { p.Phone = "98765" }, "phone", "Valid 10-digit phone number required."},
		{"long phone", func(p *Purchaser) { p.Phone = "98765432100" }, "phone", "Valid 10-digit phone number required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPurchaser()
			tt.mutate(&p)

			field, msg, ok := Explain(Validate.Struct(p))
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestExplainIgnoresForeignErrors(t *testing.T) {
	_, _, ok := Explain(assert.AnError)
	assert.False(t, ok)
}

func TestPurchaserTrimmed(t *testing.T) {
	p := Purchaser{FirstName: " Asha ", LastName: "Rao\t", Email: " user@example.com", Phone: "9876543210 "}
	assert.Equal(t, validPurchaser(), p.Trimmed())
	assert.Equal(t, "Asha Rao", p.Trimmed().FullName())
}

func TestEventAvailability(t *testing.T) {
	e := Event{ID: "e1", Price: decimal.NewFromInt(100), TotalTickets: 50, TicketsSold: 48}
	assert.Equal(t, 2, e.AvailableTickets())
	assert.True(t, e.Total(2).Equal(decimal.NewFromInt(200)))

	e.TicketsSold = 60
	assert.Equal(t, 0, e.AvailableTickets())
}

func TestEventDecodesNumericPrice(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"e1","name":"Neon","price":249.5,"totalTickets":10,"ticketsSold":3}`), &e))
	assert.Equal(t, "249.5", e.Price.String())
	assert.Equal(t, 7, e.AvailableTickets())

	raw, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":249.5`)
}

func TestNewBookingRequest(t *testing.T) {
	e := Event{ID: "e1", Price: decimal.NewFromInt(100), TotalTickets: 50, TicketsSold: 48}
	req := NewBookingRequest("u1", e, 2, validPurchaser())

	assert.Equal(t, "e1", req.EventID)
	assert.Equal(t, []BookingItem{{ID: "e1", Quantity: 2}}, req.Items)
	assert.True(t, req.Amount.Equal(decimal.NewFromInt(200)))
	assert.NoError(t, Validate.Struct(req))
}

func TestMemoryRepoReserveTickets(t *testing.T) {
	ctx := context.Background()
	repo := MemoryNewRepo()
	e, err := repo.CreateEvent(ctx, &Event{Name: "Neon", TotalTickets: 3})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)

	updated, err := repo.ReserveTickets(ctx, e.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.AvailableTickets())

	_, err = repo.ReserveTickets(ctx, e.ID, 2)
	assert.ErrorIs(t, err, ErrSoldOut)

	missing, err := repo.ReserveTickets(ctx, "nope", 1)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRepoUsers(t *testing.T) {
	ctx := context.Background()
	repo := MemoryNewRepo()
	a, err := repo.CreateUser(ctx, &Account{User: User{Email: "User@Example.com"}})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, &Account{User: User{Email: "user@example.com"}})
	assert.ErrorIs(t, err, ErrEmailTaken)

	found, err := repo.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, a.ID, found.ID)

	require.NoError(t, repo.IncrementBookings(ctx, a.ID))
	found, _ = repo.GetUser(ctx, a.ID)
	assert.Equal(t, 1, found.Bookings)
}

func TestMemoryRepoNotificationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := MemoryNewRepo()
	_, _ = repo.AddNotification(ctx, &Notification{Title: "first"})
	_, _ = repo.AddNotification(ctx, &Notification{Title: "second"})

	list, err := repo.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
}
