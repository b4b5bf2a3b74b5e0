package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
)

type PaymentHandler struct {
	payments  PaymentService
	directory DirectoryService
	validator *validator.Validate
}

func NewPaymentHandler(payments PaymentService, directory DirectoryService) *PaymentHandler {
	return &PaymentHandler{
		payments:  payments,
		directory: directory,
		validator: validator.New(),
	}
}

type createOrderRequest struct {
	FeeIDs []string `json:"feeIds"`
}

// CreateOrder opens a payment for the mandatory fees plus the chosen ones.
// The total is computed here, never taken from the client.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request, session domain.StudentSession) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	selection, err := h.directory.BuildSelection(r.Context(), req.FeeIDs)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}

	prefill := domain.Prefill{Name: session.Name, Email: session.Email}
	if student, err := h.directory.GetStudent(r.Context(), session.StudentID); err == nil {
		prefill = domain.Prefill{Name: student.Name, Email: student.Email}
	}

	result, err := h.payments.CreateOrder(r.Context(), domain.CreateOrderRequest{
		StudentID: session.StudentID,
		Amount:    selection.Total(),
		Items:     selection.Items(),
		Prefill:   prefill,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	if result.NothingToPay {
		response.Notice(w, result.Notice, result)
		return
	}

	response.Created(w, result)
}

// VerifyPayment handles the checkout completion callback for an order
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request, session domain.StudentSession) {
	orderID := mux.Vars(r)["orderId"]

	if !h.ownsOrder(w, r, orderID, session) {
		return
	}

	var cb domain.GatewayCallback
	if err := decodeJSON(r, &cb); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(cb); err != nil {
		response.BadRequest(w, "Payment callback is incomplete", err)
		return
	}

	payment, err := h.payments.VerifyPayment(r.Context(), orderID, cb)
	if err != nil {
		var failed interface{}
		if payment != nil {
			failed = payment
		}
		writeError(w, r, err, failed)
		return
	}

	response.Success(w, payment)
}

func (h *PaymentHandler) GetOrder(w http.ResponseWriter, r *http.Request, session domain.StudentSession) {
	orderID := mux.Vars(r)["orderId"]

	attempt, err := h.payments.Attempt(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	if attempt.StudentID != session.StudentID {
		writeError(w, r, customError.WrapForbidden("Order belongs to another student"), nil)
		return
	}

	response.Success(w, attempt)
}

// ownsOrder refuses orders opened by another student. Unknown orders pass
// through so verification can report the mismatch.
func (h *PaymentHandler) ownsOrder(w http.ResponseWriter, r *http.Request, orderID string, session domain.StudentSession) bool {
	attempt, err := h.payments.Attempt(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, customError.ErrOrderNotFound) {
			return true
		}
		writeError(w, r, err, nil)
		return false
	}
	if attempt.StudentID != session.StudentID {
		writeError(w, r, customError.WrapForbidden("Order belongs to another student"), nil)
		return false
	}
	return true
}
