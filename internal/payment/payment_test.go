package payment

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) Open(ctx context.Context, opts Options) (*Success, error) {
	args := m.Called(ctx, opts)
	ok, _ := args.Get(0).(*Success)
	return ok, args.Error(1)
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func request() Request {
	return Request{
		OrderID: "o_1",
		Amount:  decimal.NewFromInt(500),
		Prefill: Prefill{Name: "Asha Rao", Email: "user@example.com", Contact: "9876543210"},
	}
}

func TestLaunchPassesOrderThrough(t *testing.T) {
	checkout := new(MockCheckout)
	checkout.On("Open", mock.Anything, mock.MatchedBy(func(o Options) bool {
		return o.OrderID == "o_1" && o.Amount.Equal(decimal.NewFromInt(500))
	})).Return(&Success{PaymentID: "pay_1"}, nil).Once()

	h := New(checkout, Config{Key: "rzp_test"}, quiet())
	res := h.Launch(context.Background(), request())

	assert.True(t, res.Success)
	assert.Equal(t, "pay_1", res.PaymentID)
	assert.Equal(t, "o_1", res.OrderID)
	checkout.AssertNumberOfCalls(t, "Open", 1)

	opts := checkout.Calls[0].Arguments.Get(1).(Options)
	assert.Equal(t, "rzp_test", opts.Key)
	assert.Equal(t, "INR", opts.Currency)
	assert.Equal(t, "Grooviti", opts.Name)
	assert.Equal(t, "Ticket Booking", opts.Description)
	assert.Equal(t, "9876543210", opts.Prefill.Contact)
	assert.Equal(t, "#FF6000", opts.Theme.Color)
}

func TestLaunchUsesRequestDescription(t *testing.T) {
	checkout := new(MockCheckout)
	checkout.On("Open", mock.Anything, mock.Anything).Return(&Success{PaymentID: "pay_1"}, nil)

	req := request()
	req.Description = "Organizer Subscription"
	res := New(checkout, Config{}, quiet()).Launch(context.Background(), req)
	require.True(t, res.Success)

	opts := checkout.Calls[0].Arguments.Get(1).(Options)
	assert.Equal(t, "Organizer Subscription", opts.Description)
}

func TestLaunchRejectsMissingInformation(t *testing.T) {
	checkout := new(MockCheckout)
	h := New(checkout, Config{}, quiet())

	for name, req := range map[string]Request{
		"no order":    {Amount: decimal.NewFromInt(500)},
		"zero amount": {OrderID: "o_1"},
		"negative":    {OrderID: "o_1", Amount: decimal.NewFromInt(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			res := h.Launch(context.Background(), req)
			assert.False(t, res.Success)
			assert.Equal(t, "Missing payment information", res.Description)
		})
	}
	checkout.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestLaunchProviderFailure(t *testing.T) {
	checkout := new(MockCheckout)
	checkout.On("Open", mock.Anything, mock.Anything).Return(nil, &Failure{Code: CodeCancelled, Description: "Payment cancelled by user"}).Once()
	checkout.On("Open", mock.Anything, mock.Anything).Return(nil, &Failure{Code: CodeNetwork}).Once()
	checkout.On("Open", mock.Anything, mock.Anything).Return(nil, errors.New("sdk crashed")).Once()

	h := New(checkout, Config{}, quiet())

	res := h.Launch(context.Background(), request())
	assert.False(t, res.Success)
	assert.Equal(t, CodeCancelled, res.Code)
	assert.Equal(t, "Payment cancelled by user", res.Description)

	res = h.Launch(context.Background(), request())
	assert.Equal(t, "Try again", res.Description)

	res = h.Launch(context.Background(), request())
	assert.Equal(t, CodeNetwork, res.Code)
	assert.Equal(t, "Try again", res.Description)
}

func TestLaunchVerifiesSignature(t *testing.T) {
	checkout := new(MockCheckout)
	good := Sign("shh", "o_1", "pay_1")
	checkout.On("Open", mock.Anything, mock.Anything).Return(&Success{PaymentID: "pay_1", OrderID: "o_1", Signature: good}, nil).Once()
	checkout.On("Open", mock.Anything, mock.Anything).Return(&Success{PaymentID: "pay_1", OrderID: "o_1", Signature: "deadbeef"}, nil).Once()

	h := New(checkout, Config{Secret: "shh"}, quiet())

	assert.True(t, h.Launch(context.Background(), request()).Success)

	res := h.Launch(context.Background(), request())
	assert.False(t, res.Success)
	assert.Equal(t, CodeVerification, res.Code)
}

func TestVerifySignature(t *testing.T) {
	sig := Sign("secret", "order_1", "pay_1")
	assert.True(t, VerifySignature("secret", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("other", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_2", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_1", "not hex"))
}

func TestPromptCheckout(t *testing.T) {
	var out bytes.Buffer
	p := &PromptCheckout{In: strings.NewReader("pay_42\n"), Out: &out}

	ok, err := p.Open(context.Background(), Options{OrderID: "o_1", Amount: decimal.NewFromInt(199800), Currency: "INR", Name: "Grooviti"})
	require.NoError(t, err)
	assert.Equal(t, "pay_42", ok.PaymentID)
	assert.Contains(t, out.String(), "Order o_1: 1998.00 INR")
}

func TestPromptCheckoutBlankCancels(t *testing.T) {
	p := &PromptCheckout{In: strings.NewReader("\n"), Out: io.Discard}

	_, err := p.Open(context.Background(), Options{OrderID: "o_1", Amount: decimal.NewFromInt(500)})
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, CodeCancelled, f.Code)
}

func TestCheckoutFunc(t *testing.T) {
	var got Options
	h := New(CheckoutFunc(func(ctx context.Context, o Options) (*Success, error) {
		got = o
		return &Success{PaymentID: "pay_9"}, nil
	}), Config{Currency: "USD", MerchantName: "Test"}, quiet())

	res := h.Launch(context.Background(), request())
	assert.True(t, res.Success)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "Test", got.Name)
}
