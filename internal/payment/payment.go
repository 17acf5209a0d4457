// Package payment hands a booking order to the external checkout and turns
// the provider's answer into a Result.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Provider error codes.
const (
	CodeCancelled      = 0
	CodeNetwork        = 2
	CodeInvalidOptions = 3
	CodeVerification   = 100
)

const (
	themeColor = "#FF6000"

	// DefaultDescription labels the checkout when a Request sets none.
	DefaultDescription = "Ticket Booking"
)

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type Theme struct {
	Color string `json:"color"`
}

// Options is what the checkout is opened with. Amount is in minor units.
type Options struct {
	Key         string          `json:"key"`
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Prefill     Prefill         `json:"prefill"`
	Theme       Theme           `json:"theme"`
}

type Success struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// Failure is the error a Checkout returns when the payment did not go
// through.
type Failure struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("payment failed (code %d): %s", f.Code, f.Description)
}

// Checkout is the external payment UI.
type Checkout interface {
	Open(ctx context.Context, opts Options) (*Success, error)
}

type CheckoutFunc func(ctx context.Context, opts Options) (*Success, error)

func (f CheckoutFunc) Open(ctx context.Context, opts Options) (*Success, error) {
	return f(ctx, opts)
}

type Request struct {
	OrderID     string
	Amount      decimal.Decimal
	Description string
	Prefill     Prefill
}

type Result struct {
	Success     bool
	PaymentID   string
	OrderID     string
	Code        int
	Description string
}

type Config struct {
	Key          string
	Secret       string
	Currency     string
	MerchantName string
}

type Handoff struct {
	checkout Checkout
	cfg      Config
	logger   *slog.Logger
}

func New(checkout Checkout, cfg Config, logger *slog.Logger) *Handoff {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.MerchantName == "" {
		cfg.MerchantName = "Grooviti"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handoff{checkout: checkout, cfg: cfg, logger: logger}
}

// Launch opens the checkout for one order. The amount is passed through as
// the backend issued it.
func (h *Handoff) Launch(ctx context.Context, req Request) Result {
	if strings.TrimSpace(req.OrderID) == "" || !req.Amount.IsPositive() {
		return Result{OrderID: req.OrderID, Code: CodeInvalidOptions, Description: "Missing payment information"}
	}

	desc := req.Description
	if desc == "" {
		desc = DefaultDescription
	}
	opts := Options{
		Key:         h.cfg.Key,
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Currency:    h.cfg.Currency,
		Name:        h.cfg.MerchantName,
		Description: desc,
		Prefill:     req.Prefill,
		Theme:       Theme{Color: themeColor},
	}
	h.logger.Info("launching checkout", "order_id", opts.OrderID, "amount", opts.Amount.String(), "currency", opts.Currency)

	ok, err := h.checkout.Open(ctx, opts)
	if err != nil {
		return h.failed(req.OrderID, err)
	}
	if ok == nil {
		return h.failed(req.OrderID, errors.New("checkout returned no payment"))
	}

	if h.cfg.Secret != "" && ok.Signature != "" {
		orderID := ok.OrderID
		if orderID == "" {
			orderID = req.OrderID
		}
		if !VerifySignature(h.cfg.Secret, orderID, ok.PaymentID, ok.Signature) {
			h.logger.Warn("payment signature mismatch", "order_id", req.OrderID, "payment_id", ok.PaymentID)
			return Result{OrderID: req.OrderID, Code: CodeVerification, Description: "Payment could not be verified"}
		}
	}

	h.logger.Info("payment completed", "order_id", req.OrderID, "payment_id", ok.PaymentID)
	return Result{Success: true, PaymentID: ok.PaymentID, OrderID: req.OrderID}
}

func (h *Handoff) failed(orderID string, err error) Result {
	res := Result{OrderID: orderID, Code: CodeNetwork}
	var f *Failure
	if errors.As(err, &f) {
		res.Code = f.Code
		res.Description = f.Description
	}
	if strings.TrimSpace(res.Description) == "" {
		res.Description = "Try again"
	}
	h.logger.Warn("payment failed", "order_id", orderID, "code", res.Code, "error", err)
	return res
}
