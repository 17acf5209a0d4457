package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/shopspring/decimal"
)

var ErrQuantityMismatch = errors.New("items do not match the requested quantity")

// minorUnits converts rupees to paise, the unit the checkout expects.
var minorUnits = decimal.NewFromInt(100)

type BookingService struct {
	events        models.EventRepo
	bookings      models.BookingRepo
	users         models.UserRepo
	notifications models.NotificationRepo
	currency      string
}

func NewBookingService(events models.EventRepo, bookings models.BookingRepo, users models.UserRepo, notifications models.NotificationRepo, currency string) *BookingService {
	return &BookingService{
		events:        events,
		bookings:      bookings,
		users:         users,
		notifications: notifications,
		currency:      currency,
	}
}

// CreateTicketBooking reserves the tickets and opens a pending order. The
// amount is recomputed from the stored price; the client's figure is ignored.
func (bs *BookingService) CreateTicketBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.BookingOrder, error) {
	if req.EventID == "" && len(req.Items) > 0 {
		req.EventID = req.Items[0].ID
	}
	if req.Quantity == 0 && len(req.Items) > 0 {
		req.Quantity = req.Items[0].Quantity
	}
	if err := models.Validate.Struct(req); err != nil {
		return nil, err
	}
	if len(req.Items) != 1 || req.Items[0].ID != req.EventID || req.Items[0].Quantity != req.Quantity {
		return nil, ErrQuantityMismatch
	}

	event, err := bs.events.ReserveTickets(ctx, req.EventID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	order := &models.BookingOrder{
		OrderID:  "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		Amount:   event.Total(req.Quantity).Mul(minorUnits).Round(0),
		Currency: bs.currency,
	}
	_, err = bs.bookings.CreateBooking(ctx, &models.Booking{
		OrderID:  order.OrderID,
		UserID:   userID,
		EventID:  event.ID,
		Quantity: req.Quantity,
		Amount:   order.Amount,
		Currency: order.Currency,
		Address:  req.Address,
		Status:   models.BookingPending,
	})
	if err != nil {
		return nil, bs.release(ctx, event.ID, req.Quantity, fmt.Errorf("failed to store booking: %w", err))
	}
	if err := bs.users.IncrementBookings(ctx, userID); err != nil {
		return nil, bs.release(ctx, event.ID, req.Quantity, err)
	}
	_, err = bs.notifications.AddNotification(ctx, &models.Notification{
		Title:   "Booking created",
		Message: fmt.Sprintf("%d ticket(s) for %s are awaiting payment.", req.Quantity, event.Name),
	})
	if err != nil {
		return nil, bs.release(ctx, event.ID, req.Quantity, err)
	}
	return order, nil
}

// release hands a failed order's tickets back and returns cause, joined with
// the release error if that fails too.
func (bs *BookingService) release(ctx context.Context, eventID string, quantity int, cause error) error {
	if err := bs.events.ReleaseTickets(ctx, eventID, quantity); err != nil {
		return errors.Join(cause, fmt.Errorf("release tickets: %w", err))
	}
	return cause
}

func (bs *BookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return bs.bookings.ListBookingsByUser(ctx, userID)
}
