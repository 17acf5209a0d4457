package payment

import (
	"bufio"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// PromptCheckout asks for a payment id on a terminal. A blank answer cancels.
type PromptCheckout struct {
	In  io.Reader
	Out io.Writer
}

func (p *PromptCheckout) Open(ctx context.Context, opts Options) (*Success, error) {
	major := opts.Amount.Div(decimal.NewFromInt(100)).StringFixed(2)
	fmt.Fprintf(p.Out, "%s | %s\n", opts.Name, opts.Description)
	fmt.Fprintf(p.Out, "Order %s: %s %s\n", opts.OrderID, major, opts.Currency)
	if opts.Prefill.Name != "" {
		fmt.Fprintf(p.Out, "Paying as %s <%s>\n", opts.Prefill.Name, opts.Prefill.Email)
	}
	fmt.Fprint(p.Out, "Payment id (blank to cancel): ")

	lines := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(p.In)
		if sc.Scan() {
			lines <- sc.Text()
			return
		}
		if err := sc.Err(); err != nil {
			errs <- err
			return
		}
		lines <- ""
	}()

	select {
	case <-ctx.Done():
		return nil, &Failure{Code: CodeCancelled, Description: "Payment cancelled"}
	case err := <-errs:
		return nil, &Failure{Code: CodeNetwork, Description: err.Error()}
	case line := <-lines:
		id := strings.TrimSpace(line)
		if id == "" {
			return nil, &Failure{Code: CodeCancelled, Description: "Payment cancelled by user"}
		}
		return &Success{PaymentID: id, OrderID: opts.OrderID}, nil
	}
}

// VerifySignature checks the provider signature over "order_id|payment_id".
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(mac.Sum(nil), want)
}

// Sign returns the signature VerifySignature accepts.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
