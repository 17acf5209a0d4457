// Package booking drives one ticket purchase from loading the event to the
// payment result.
//
// A Flow moves through
//
//	idle → loading_event → form_entry → validating → submitting_booking →
//	awaiting_payment → completed | failed
//
// Validation failures, booking errors and a missing session all return the
// flow to form_entry so the user can correct and resubmit. Each Submit makes
// at most one booking-creation call.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/nav"
	"github.com/joshua-takyi/grooviti/internal/payment"
	"github.com/joshua-takyi/grooviti/internal/screen"
	"github.com/joshua-takyi/grooviti/internal/session"
	"github.com/shopspring/decimal"
)

type State string

const (
	Idle              State = "idle"
	LoadingEvent      State = "loading_event"
	FormEntry         State = "form_entry"
	Validating        State = "validating"
	SubmittingBooking State = "submitting_booking"
	AwaitingPayment   State = "awaiting_payment"
	Completed         State = "completed"
	Failed            State = "failed"
)

var (
	ErrLoginRequired = errors.New("booking: login required")
	ErrEventNotFound = errors.New("booking: event not found")
	ErrBusy          = errors.New("booking: a request is already in flight")
	ErrInvalidState  = errors.New("booking: not accepting input in this state")
)

// ValidationError names the form field that blocked submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type EventGetter interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
}

type OrderCreator interface {
	CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.BookingOrder, error)
}

type SessionReader interface {
	Snapshot() session.State
}

type Launcher interface {
	Launch(ctx context.Context, req payment.Request) payment.Result
}

type Deps struct {
	Events   EventGetter
	Orders   OrderCreator
	Session  SessionReader
	Payments Launcher
	Logger   *slog.Logger
}

// Outcome reports where Submit left the flow and where the UI should go next.
// Route is nav.None when the user stays on the booking form.
type Outcome struct {
	State   State
	Route   nav.Route
	Message string
	Order   *models.BookingOrder
	Payment *payment.Result
}

type View struct {
	State     State
	Event     *models.Event
	Available int
	Quantity  int
	Total     decimal.Decimal
	Purchaser models.Purchaser
	Order     *models.BookingOrder
	Message   string
}

type Flow struct {
	deps Deps
	life screen.Lifetime

	mu        sync.Mutex
	state     State
	event     *models.Event
	quantity  int
	purchaser models.Purchaser
	order     *models.BookingOrder
	message   string
	busy      bool
}

func New(deps Deps) *Flow {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Flow{deps: deps, state: Idle}
}

// Load fetches the event and opens the form with one ticket selected.
func (f *Flow) Load(ctx context.Context, eventID string) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	f.state = LoadingEvent
	f.event, f.order, f.message = nil, nil, ""
	ticket := f.life.Begin()
	f.mu.Unlock()

	ev, err := f.deps.Events.GetEvent(ctx, eventID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !ticket.Live() {
		return screen.ErrStale
	}
	switch {
	case err != nil && errors.Is(err, api.ErrNotFound):
		f.state, f.message = Failed, "Event not found"
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	case err != nil:
		f.state, f.message = Failed, api.Message(err)
		f.deps.Logger.Warn("failed to load event for booking", "event_id", eventID, "error", err)
		return err
	case ev == nil:
		f.state, f.message = Failed, "Event not found"
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}

	cp := *ev
	f.event = &cp
	f.quantity = 1
	f.state = FormEntry
	return nil
}

// Increment adds one ticket, up to what is available.
func (f *Flow) Increment() int {
	return f.step(1)
}

// Decrement removes one ticket, never going below one.
func (f *Flow) Decrement() int {
	return f.step(-1)
}

func (f *Flow) step(delta int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormEntry || f.event == nil {
		return f.quantity
	}
	f.quantity = clamp(f.quantity+delta, 1, f.event.AvailableTickets())
	return f.quantity
}

func clamp(q, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if q < lo {
		return lo
	}
	if q > hi {
		return hi
	}
	return q
}

// SetQuantity records a typed quantity as is. Out-of-range values are
// reported by Submit.
func (f *Flow) SetQuantity(q int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormEntry {
		return ErrInvalidState
	}
	f.quantity = q
	return nil
}

func (f *Flow) SetPurchaser(p models.Purchaser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormEntry {
		return ErrInvalidState
	}
	f.purchaser = p
	return nil
}

// Total is price × quantity for the current selection.
func (f *Flow) Total() decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total()
}

func (f *Flow) total() decimal.Decimal {
	if f.event == nil {
		return decimal.Zero
	}
	return f.event.Total(f.quantity)
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		State:     f.state,
		Quantity:  f.quantity,
		Total:     f.total(),
		Purchaser: f.purchaser,
		Message:   f.message,
	}
	if f.event != nil {
		ev := *f.event
		v.Event = &ev
		v.Available = ev.AvailableTickets()
	}
	if f.order != nil {
		o := *f.order
		v.Order = &o
	}
	return v
}

// Close ends the screen. Responses still in flight are discarded.
func (f *Flow) Close() {
	f.life.Close()
}

// Submit validates the form, creates the booking and hands the order to the
// payment step. The returned error is nil only when the flow completed.
func (f *Flow) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return Outcome{State: f.State()}, ErrBusy
	}
	if f.state != FormEntry {
		st := f.state
		f.mu.Unlock()
		return Outcome{State: st}, ErrInvalidState
	}

	f.state = Validating
	purchaser := f.purchaser.Trimmed()
	if verr := f.validate(purchaser); verr != nil {
		f.state, f.message = FormEntry, verr.Message
		f.mu.Unlock()
		return Outcome{State: FormEntry, Message: verr.Message}, verr
	}

	sess := f.deps.Session.Snapshot()
	if !sess.Authenticated() {
		f.state, f.message = FormEntry, "Please log in to continue"
		f.mu.Unlock()
		return Outcome{State: FormEntry, Route: nav.Login, Message: "Please log in to continue"}, ErrLoginRequired
	}
	userID := ""
	if sess.User != nil {
		userID = sess.User.ID
	}

	ev := *f.event
	req := models.NewBookingRequest(userID, ev, f.quantity, purchaser)
	f.purchaser = purchaser
	f.state, f.message = SubmittingBooking, ""
	f.busy = true
	ticket := f.life.Begin()
	f.mu.Unlock()

	f.deps.Logger.Info("creating booking", "event_id", ev.ID, "quantity", req.Quantity, "amount", req.Amount.String())
	order, err := f.deps.Orders.CreateBooking(ctx, sess.Token, req)

	f.mu.Lock()
	if !ticket.Live() {
		f.busy = false
		f.mu.Unlock()
		return Outcome{State: f.State()}, screen.ErrStale
	}
	if err != nil {
		f.busy = false
		f.state, f.message = FormEntry, api.Message(err)
		out := Outcome{State: FormEntry, Message: f.message}
		if errors.Is(err, api.ErrUnauthorized) {
			out.Route = nav.Login
		}
		f.mu.Unlock()
		f.deps.Logger.Warn("booking rejected", "event_id", ev.ID, "error", err)
		return out, err
	}

	o := *order
	f.order = &o
	f.state = AwaitingPayment
	if !o.Amount.IsPositive() {
		// nothing to charge
		f.busy = false
		f.state = Completed
		f.mu.Unlock()
		return Outcome{State: Completed, Route: nav.Confirmation, Order: &o}, nil
	}
	f.mu.Unlock()

	result := f.deps.Payments.Launch(ctx, payment.Request{
		OrderID: o.OrderID,
		Amount:  o.Amount,
		Prefill: payment.Prefill{
			Name:    purchaser.FullName(),
			Email:   purchaser.Email,
			Contact: purchaser.Phone,
		},
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if !ticket.Live() {
		return Outcome{State: f.state, Order: &o, Payment: &result}, screen.ErrStale
	}
	if !result.Success {
		f.state, f.message = Failed, result.Description
		return Outcome{
			State:   Failed,
			Route:   nav.Event(ev.ID),
			Message: result.Description,
			Order:   &o,
			Payment: &result,
		}, &payment.Failure{Code: result.Code, Description: result.Description}
	}

	f.state = Completed
	f.message = "Payment ID: " + result.PaymentID
	return Outcome{State: Completed, Route: nav.Confirmation, Message: f.message, Order: &o, Payment: &result}, nil
}

// validate checks the quantity first, then the purchaser fields in form order.
func (f *Flow) validate(p models.Purchaser) *ValidationError {
	available := f.event.AvailableTickets()
	switch {
	case available == 0:
		return &ValidationError{Field: "quantity", Message: "Sold out"}
	case f.quantity < 1:
		return &ValidationError{Field: "quantity", Message: "Select at least one ticket."}
	case f.quantity > available:
		return &ValidationError{Field: "quantity", Message: fmt.Sprintf("Only %d tickets available.", available)}
	}

	if err := models.Validate.Struct(p); err != nil {
		field, msg, ok := models.Explain(err)
		if !ok {
			return &ValidationError{Field: "form", Message: err.Error()}
		}
		return &ValidationError{Field: field, Message: msg}
	}
	return nil
}
