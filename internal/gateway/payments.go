package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

// ListPayments returns normalized payment rows. Student names are left as
// the "Student #id" placeholder for the caller to resolve.
func (c *Client) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	query := url.Values{}
	if filter.StudentID != "" {
		query.Set("studentId", filter.StudentID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.From != nil {
		query.Set("from", utils.FormatDate(*filter.From))
	}
	if filter.To != nil {
		query.Set("to", utils.FormatDate(*filter.To))
	}

	var rows []backendPayment
	if err := c.do(ctx, "list_payments", http.MethodGet, "/payments", query, nil, &rows); err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, normalizePayment(row))
	}
	return payments, nil
}

// CreateOrder opens an order on the backend. The returned amount is the
// backend's, in subunits.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.PaymentOrder, error) {
	const op = "create_order"

	items := in.Items
	if items == nil {
		items = []OrderItem{}
	}
	payload := createOrderPayload{
		StudentID: wireID(in.StudentID),
		Amount:    in.AmountSubunits,
		Currency:  in.Currency,
		Items:     items,
		Meta:      in.Meta,
	}

	var out createOrderResponse
	if err := c.do(ctx, op, http.MethodPost, "/payments/create-order", nil, payload, &out); err != nil {
		return nil, err
	}
	if out.OrderID == "" {
		return nil, newError(KindShape, op, http.StatusOK, "order response missing orderId", nil)
	}

	order := &domain.PaymentOrder{
		OrderID:        out.OrderID,
		AmountSubunits: out.Amount.Round(0).IntPart(),
		Currency:       out.Currency,
		GatewayKey:     out.KeyID,
		InvoiceID:      out.InvoiceID,
	}
	if order.AmountSubunits <= 0 {
		order.AmountSubunits = in.AmountSubunits
	}
	if order.Currency == "" {
		order.Currency = in.Currency
	}
	return order, nil
}

// VerifyPayment forwards the completion callback for server-side checking.
func (c *Client) VerifyPayment(ctx context.Context, in VerifyInput) (*VerifyResult, error) {
	payload := verifyPayload{
		OrderID:   in.OrderID,
		PaymentID: in.PaymentID,
		Signature: in.Signature,
		InvoiceID: in.InvoiceID,
	}

	var out VerifyResult
	if err := c.do(ctx, "verify_payment", http.MethodPost, "/payments/verify", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
