package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/internal/gateway"
	"github.com/channabasavaballolli/Edu-Pay/internal/repository"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

// PaymentCoordinator drives one payment attempt from order creation to a
// paid or failed record.
type PaymentCoordinator struct {
	backend  gateway.API
	orders   repository.OrderRegistry
	payments repository.PaymentRepository
	config   *config.Config
	now      func() time.Time
	draw     func() float64
}

func NewPaymentCoordinator(
	backend gateway.API,
	orders repository.OrderRegistry,
	payments repository.PaymentRepository,
	config *config.Config,
) *PaymentCoordinator {
	return &PaymentCoordinator{
		backend:  backend,
		orders:   orders,
		payments: payments,
		config:   config,
		now:      time.Now,
		draw:     rand.Float64,
	}
}

// CreateOrder opens a payment for req.Amount rupees. A zero amount is not an
// error: the result carries NothingToPay and no order is created.
func (c *PaymentCoordinator) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.OrderResult, error) {
	if !req.Amount.IsPositive() {
		return &domain.OrderResult{
			NothingToPay: true,
			Notice:       customError.WrapNoFeesSelected().Message,
		}, nil
	}
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, customError.WrapInvalidRequest("studentId is required")
	}

	subunits := utils.ToSubunits(req.Amount)
	currency := c.config.Gateway.Currency

	items := make([]gateway.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, gateway.OrderItem{
			ID:        item.ID,
			Component: item.Component,
			Amount:    utils.ToSubunits(item.Amount),
		})
	}

	order, err := c.backend.CreateOrder(ctx, gateway.CreateOrderInput{
		StudentID:      req.StudentID,
		AmountSubunits: subunits,
		Currency:       currency,
		Items:          items,
		Meta: map[string]string{
			"studentName": req.Prefill.Name,
			"email":       req.Prefill.Email,
		},
	})
	if err != nil {
		order = &domain.PaymentOrder{
			OrderID:        "order_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
			AmountSubunits: subunits,
			Currency:       currency,
			Degraded:       true,
		}
		logger.Warn(ctx, "order creation failed on backend, continuing with local order",
			zap.String("studentId", req.StudentID),
			zap.String("orderId", order.OrderID),
			zap.String("kind", string(gateway.KindOf(err))),
			zap.Error(err),
		)
	}
	if order.GatewayKey == "" {
		order.GatewayKey = c.config.Gateway.KeyID
	}

	now := c.now()
	attempt := &domain.PaymentAttempt{
		OrderID:        order.OrderID,
		StudentID:      req.StudentID,
		StudentName:    req.Prefill.Name,
		Amount:         utils.FromSubunitsInt(order.AmountSubunits),
		AmountSubunits: order.AmountSubunits,
		Currency:       order.Currency,
		InvoiceID:      order.InvoiceID,
		State:          domain.AttemptIdle,
		Degraded:       order.Degraded,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := attempt.TransitionTo(domain.AttemptOrderCreated, now); err != nil {
		return nil, err
	}
	if err := attempt.TransitionTo(domain.AttemptGatewayOpen, now); err != nil {
		return nil, err
	}
	if err := c.orders.Save(ctx, attempt); err != nil {
		return nil, customError.WrapCacheError(err)
	}

	logger.Info(ctx, "payment order opened",
		zap.String("orderId", order.OrderID),
		zap.String("studentId", req.StudentID),
		zap.Int64("amount", order.AmountSubunits),
		zap.Bool("degraded", order.Degraded),
	)

	return &domain.OrderResult{
		Order: order,
		Checkout: &domain.CheckoutOptions{
			Key:         order.GatewayKey,
			Amount:      order.AmountSubunits,
			Currency:    order.Currency,
			OrderID:     order.OrderID,
			Name:        c.config.Gateway.MerchantName,
			Description: checkoutDescription(req.Items),
			Prefill:     req.Prefill,
		},
	}, nil
}

func checkoutDescription(items []domain.FeeComponent) string {
	if len(items) == 0 {
		return "College fee payment"
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Component)
	}
	return "Fees: " + strings.Join(names, ", ")
}

// VerifyPayment checks the completion callback for orderID. Every outcome
// other than an unknown order or an out-of-order call appends a Payment; on
// failure that record is returned together with the error.
func (c *PaymentCoordinator) VerifyPayment(ctx context.Context, orderID string, cb domain.GatewayCallback) (*domain.Payment, error) {
	attempt, err := c.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, customError.ErrOrderNotFound) {
			logger.Warn(ctx, "callback for unknown order", zap.String("orderId", orderID))
			return nil, customError.WrapSignatureOrOrderMismatch(orderID, cb.OrderID)
		}
		return nil, customError.WrapCacheError(err)
	}

	if err := attempt.CanTransitionTo(domain.AttemptVerifying); err != nil {
		return nil, err
	}

	if cb.OrderID != orderID {
		payment := c.fail(ctx, attempt, cb, customError.ErrCodeSignatureOrOrderMismatch)
		return payment, customError.WrapSignatureOrOrderMismatch(orderID, cb.OrderID)
	}

	if err := attempt.TransitionTo(domain.AttemptVerifying, c.now()); err != nil {
		return nil, err
	}
	if err := c.orders.Save(ctx, attempt); err != nil {
		return nil, customError.WrapCacheError(err)
	}

	result, err := c.backend.VerifyPayment(ctx, gateway.VerifyInput{
		OrderID:   orderID,
		PaymentID: cb.PaymentID,
		Signature: cb.Signature,
		InvoiceID: attempt.InvoiceID,
	})
	if err != nil {
		logger.Warn(ctx, "payment verification call failed",
			zap.String("orderId", orderID),
			zap.String("kind", string(gateway.KindOf(err))),
			zap.Error(err),
		)
		// Only an unreachable backend may be replaced by the offline check.
		// A backend that answered has already decided.
		degrade := c.config.Mode.Offline && gateway.KindOf(err) == gateway.KindTransport
		if !degrade || !c.verifyOffline(ctx, cb) {
			payment := c.fail(ctx, attempt, cb, customError.ErrCodeVerificationFailed)
			return payment, customError.WrapVerificationFailed(orderID, err)
		}
		result = &gateway.VerifyResult{Status: domain.PaymentStatusPaid}
	}

	if gateway.NormalizeStatus(result.Status) != domain.PaymentStatusPaid {
		payment := c.fail(ctx, attempt, cb, customError.ErrCodeVerificationFailed)
		return payment, customError.WrapVerificationFailed(orderID,
			fmt.Errorf("backend reported status %q", result.Status))
	}

	now := c.now()
	if err := attempt.TransitionTo(domain.AttemptPaid, now); err != nil {
		return nil, err
	}
	c.saveAttempt(ctx, attempt)

	payment := c.record(attempt, cb, domain.PaymentStatusPaid)
	payment.PaymentDate = utils.FormatDate(now)
	payment.ReceiptURL = receiptURL(result.ReceiptURL, attempt)
	c.appendPayment(ctx, payment)

	logger.Info(ctx, "payment verified",
		zap.String("orderId", orderID),
		zap.String("paymentId", cb.PaymentID),
		zap.String("studentId", attempt.StudentID),
	)
	return payment, nil
}

// Attempt returns the current state of an order's attempt.
func (c *PaymentCoordinator) Attempt(ctx context.Context, orderID string) (*domain.PaymentAttempt, error) {
	attempt, err := c.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, customError.ErrOrderNotFound) {
			return nil, err
		}
		return nil, customError.WrapCacheError(err)
	}
	return attempt, nil
}

// verifyOffline decides a callback without the backend. With a key secret
// the signature is checked; without one the outcome is a demo draw.
func (c *PaymentCoordinator) verifyOffline(ctx context.Context, cb domain.GatewayCallback) bool {
	if secret := c.config.Gateway.KeySecret; secret != "" {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(cb.OrderID + "|" + cb.PaymentID))
		expected := hex.EncodeToString(mac.Sum(nil))
		ok := hmac.Equal([]byte(expected), []byte(cb.Signature))
		logger.Info(ctx, "offline signature check", zap.String("orderId", cb.OrderID), zap.Bool("valid", ok))
		return ok
	}

	ok := c.draw() < c.config.GetDemoSuccessRate()
	logger.Warn(ctx, "demo mode: payment outcome is randomized",
		zap.String("orderId", cb.OrderID),
		zap.Bool("success", ok),
	)
	return ok
}

func (c *PaymentCoordinator) fail(ctx context.Context, attempt *domain.PaymentAttempt, cb domain.GatewayCallback, code string) *domain.Payment {
	if err := attempt.TransitionTo(domain.AttemptFailed, c.now()); err != nil {
		logger.Error(ctx, "failed to mark attempt failed", zap.String("orderId", attempt.OrderID), zap.Error(err))
	}
	attempt.FailureCode = code
	c.saveAttempt(ctx, attempt)

	payment := c.record(attempt, cb, domain.PaymentStatusFailed)
	c.appendPayment(ctx, payment)

	logger.Warn(ctx, "payment failed",
		zap.String("orderId", attempt.OrderID),
		zap.String("code", code),
	)
	return payment
}

func (c *PaymentCoordinator) record(attempt *domain.PaymentAttempt, cb domain.GatewayCallback, status string) *domain.Payment {
	dueDate := c.config.Gateway.DueDate
	if dueDate == "" {
		dueDate = utils.FormatDate(attempt.CreatedAt)
	}
	name := attempt.StudentName
	if name == "" {
		name = gateway.FallbackStudentName(attempt.StudentID)
	}
	return &domain.Payment{
		ID:            uuid.NewString(),
		StudentID:     attempt.StudentID,
		StudentName:   name,
		Amount:        attempt.Amount,
		Status:        status,
		DueDate:       dueDate,
		TransactionID: cb.PaymentID,
		OrderID:       attempt.OrderID,
		CreatedAt:     c.now(),
	}
}

func receiptURL(fromBackend string, attempt *domain.PaymentAttempt) string {
	if fromBackend != "" {
		return fromBackend
	}
	if attempt.InvoiceID != nil {
		return gateway.ReceiptPath(strconv.FormatInt(*attempt.InvoiceID, 10))
	}
	return fmt.Sprintf("/receipts/receipt_%s.pdf", attempt.OrderID)
}

// The outcome is already decided once these run, so storage failures are
// logged rather than returned.
func (c *PaymentCoordinator) saveAttempt(ctx context.Context, attempt *domain.PaymentAttempt) {
	if err := c.orders.Save(ctx, attempt); err != nil {
		logger.Error(ctx, "failed to save payment attempt", zap.String("orderId", attempt.OrderID), zap.Error(err))
	}
}

func (c *PaymentCoordinator) appendPayment(ctx context.Context, payment *domain.Payment) {
	if err := c.payments.Create(ctx, payment); err != nil {
		logger.Error(ctx, "failed to record payment",
			zap.String("orderId", payment.OrderID),
			zap.String("status", payment.Status),
			zap.Error(err),
		)
	}
}
