// Package organizer drives the organizer sign-up: pick a plan and billing
// cycle, fill in the form, register, then pay the subscription.
//
//	idle → form_entry → validating → registering → awaiting_payment →
//	completed | failed
//
// A validation or registration error returns the flow to form_entry. Each
// Submit makes at most one registration call.
package organizer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/nav"
	"github.com/joshua-takyi/grooviti/internal/payment"
	"github.com/joshua-takyi/grooviti/internal/screen"
	"github.com/shopspring/decimal"
)

type State string

const (
	Idle            State = "idle"
	FormEntry       State = "form_entry"
	Validating      State = "validating"
	Registering     State = "registering"
	AwaitingPayment State = "awaiting_payment"
	Completed       State = "completed"
	Failed          State = "failed"
)

const checkoutDescription = "Organizer Subscription"

var (
	ErrUnknownPlan  = errors.New("organizer: unknown plan or billing cycle")
	ErrBusy         = errors.New("organizer: a request is already in flight")
	ErrInvalidState = errors.New("organizer: not accepting input in this state")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Registrar interface {
	RegisterOrganizer(ctx context.Context, req models.OrganizerRequest) (*models.OrganizerOrder, error)
}

type Launcher interface {
	Launch(ctx context.Context, req payment.Request) payment.Result
}

type Deps struct {
	Registrar Registrar
	Payments  Launcher
	Logger    *slog.Logger
}

type Outcome struct {
	State   State
	Route   nav.Route
	Message string
	Order   *models.OrganizerOrder
	Payment *payment.Result
}

type View struct {
	State   State
	Plan    models.Plan
	Cycle   models.BillingCycle
	Total   decimal.Decimal
	Form    models.OrganizerRequest
	Order   *models.OrganizerOrder
	Message string
}

type Flow struct {
	deps Deps
	life screen.Lifetime

	mu      sync.Mutex
	state   State
	plan    models.Plan
	cycle   models.BillingCycle
	price   decimal.Decimal
	form    models.OrganizerRequest
	order   *models.OrganizerOrder
	message string
	busy    bool
}

func New(deps Deps) *Flow {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Flow{deps: deps, state: Idle}
}

// SelectPlan opens the form for plan billed every cycle. It may be called
// again to change the selection before submitting.
func (f *Flow) SelectPlan(plan models.Plan, cycle models.BillingCycle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return ErrBusy
	}
	if f.state != Idle && f.state != FormEntry {
		return ErrInvalidState
	}
	price, ok := models.PlanPrice(plan, cycle)
	if !ok {
		return ErrUnknownPlan
	}
	f.plan, f.cycle, f.price = plan, cycle, price
	f.state = FormEntry
	return nil
}

// SetForm records the typed fields. Plan and amount are filled in by Submit.
func (f *Flow) SetForm(form models.OrganizerRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormEntry {
		return ErrInvalidState
	}
	f.form = form
	return nil
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
		State:   f.state,
		Plan:    f.plan,
		Cycle:   f.cycle,
		Total:   f.price,
		Form:    f.form,
		Message: f.message,
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

// Submit validates the form, registers the organizer and opens the checkout
// for the subscription order. The error is nil only when the payment went
// through.
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
	req := f.form.Trimmed()
	req.PlanName, req.BillingCycle, req.Amount = f.plan, f.cycle, f.price
	if err := models.Validate.Struct(req); err != nil {
		verr := &ValidationError{Field: "form", Message: err.Error()}
		if field, msg, ok := models.Explain(err); ok {
			verr = &ValidationError{Field: field, Message: msg}
		}
		f.state, f.message = FormEntry, verr.Message
		f.mu.Unlock()
		return Outcome{State: FormEntry, Message: verr.Message}, verr
	}

	f.form = req
	f.state, f.message = Registering, ""
	f.busy = true
	ticket := f.life.Begin()
	f.mu.Unlock()

	f.deps.Logger.Info("registering organizer", "plan", req.PlanName, "billing_cycle", req.BillingCycle, "amount", req.Amount.String())
	order, err := f.deps.Registrar.RegisterOrganizer(ctx, req)

	f.mu.Lock()
	if !ticket.Live() {
		f.busy = false
		f.mu.Unlock()
		return Outcome{State: f.State()}, screen.ErrStale
	}
	if err != nil {
		f.busy = false
		f.state, f.message = FormEntry, api.Message(err)
		f.mu.Unlock()
		f.deps.Logger.Warn("organizer registration rejected", "email", req.Email, "error", err)
		return Outcome{State: FormEntry, Message: f.message}, err
	}

	o := *order
	f.order = &o
	f.state, f.message = AwaitingPayment, "Proceeding to payment..."
	f.mu.Unlock()

	result := f.deps.Payments.Launch(ctx, payment.Request{
		OrderID:     o.OrderID,
		Amount:      o.Amount,
		Description: checkoutDescription,
		Prefill: payment.Prefill{
			Name:    req.Name,
			Email:   req.Email,
			Contact: req.Phone,
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
			Route:   nav.Plans,
			Message: result.Description,
			Order:   &o,
			Payment: &result,
		}, &payment.Failure{Code: result.Code, Description: result.Description}
	}

	f.state = Completed
	f.message = "Payment ID: " + result.PaymentID
	return Outcome{State: Completed, Route: nav.Login, Message: f.message, Order: &o, Payment: &result}, nil
}
