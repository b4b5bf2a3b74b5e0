package domain

import (
	"time"

	"github.com/shopspring/decimal"

	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

// AttemptState is where a payment attempt sits in its lifecycle.
type AttemptState string

const (
	AttemptIdle         AttemptState = "idle"
	AttemptOrderCreated AttemptState = "order_created"
	AttemptGatewayOpen  AttemptState = "gateway_open"
	AttemptVerifying    AttemptState = "verifying"
	AttemptPaid         AttemptState = "paid"
	AttemptFailed       AttemptState = "failed"
)

func (s AttemptState) IsTerminal() bool {
	return s == AttemptPaid || s == AttemptFailed
}

// PaymentOrder is the handle returned by order creation.
type PaymentOrder struct {
	OrderID        string `json:"orderId"`
	AmountSubunits int64  `json:"amount"`
	Currency       string `json:"currency"`
	GatewayKey     string `json:"keyId,omitempty"`
	InvoiceID      *int64 `json:"invoiceId,omitempty"`
	Degraded       bool   `json:"degraded,omitempty"`
}

// PaymentAttempt is the coordinator's working memory for one order.
type PaymentAttempt struct {
	OrderID        string          `json:"orderId"`
	StudentID      string          `json:"studentId"`
	StudentName    string          `json:"studentName"`
	Amount         decimal.Decimal `json:"amount"`
	AmountSubunits int64           `json:"amountSubunits"`
	Currency       string          `json:"currency"`
	InvoiceID      *int64          `json:"invoiceId,omitempty"`
	State          AttemptState    `json:"state"`
	FailureCode    string          `json:"failureCode,omitempty"`
	Degraded       bool            `json:"degraded,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CanTransitionTo returns nil when the attempt may move to target.
//
// Valid transitions are:
//   - Idle → OrderCreated
//   - OrderCreated → GatewayOpen
//   - GatewayOpen → Verifying, Failed
//   - Verifying → Paid, Failed
//
// Paid and Failed are terminal.
func (a *PaymentAttempt) CanTransitionTo(target AttemptState) error {
	switch a.State {
	case AttemptIdle:
		if target == AttemptOrderCreated {
			return nil
		}
	case AttemptOrderCreated:
		if target == AttemptGatewayOpen {
			return nil
		}
	case AttemptGatewayOpen:
		if target == AttemptVerifying || target == AttemptFailed {
			return nil
		}
	case AttemptVerifying:
		if target == AttemptPaid || target == AttemptFailed {
			return nil
		}
	}
	return customError.WrapInvalidTransition(string(a.State), string(target))
}

// TransitionTo moves the attempt to target, stamping UpdatedAt.
func (a *PaymentAttempt) TransitionTo(target AttemptState, now time.Time) error {
	if err := a.CanTransitionTo(target); err != nil {
		return err
	}
	a.State = target
	a.UpdatedAt = now
	return nil
}

// Prefill is shown pre-entered on the checkout surface.
type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateOrderRequest asks the coordinator to open a payment for Amount rupees.
type CreateOrderRequest struct {
	StudentID string          `json:"studentId"`
	Amount    decimal.Decimal `json:"amount"`
	Items     []FeeComponent  `json:"items"`
	Prefill   Prefill         `json:"prefill"`
}

// CheckoutOptions is what the external collection surface is opened with.
type CheckoutOptions struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	OrderID     string  `json:"order_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     Prefill `json:"prefill"`
}

// OrderResult is the outcome of CreateOrder. NothingToPay is set instead of
// Order when the requested amount is zero.
type OrderResult struct {
	NothingToPay bool             `json:"nothingToPay,omitempty"`
	Notice       string           `json:"notice,omitempty"`
	Order        *PaymentOrder    `json:"order,omitempty"`
	Checkout     *CheckoutOptions `json:"checkout,omitempty"`
}

// GatewayCallback carries the three opaque tokens from a completed checkout.
type GatewayCallback struct {
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	Signature string `json:"razorpay_signature"`
}
