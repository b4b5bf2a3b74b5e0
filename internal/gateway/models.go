package gateway

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// FlexID accepts ids sent as JSON numbers or strings.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string {
	return string(id)
}

// wireID sends numeric ids as numbers, which is what the backend keys on.
func wireID(id string) interface{} {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User struct {
		ID    FlexID `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

type backendStudent struct {
	ID          FlexID           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Regno       string           `json:"regno"`
	RollNumber  string           `json:"rollNumber"`
	Course      string           `json:"course"`
	Year        string           `json:"year"`
	Branch      string           `json:"branch"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	Outstanding *decimal.Decimal `json:"outstanding"`
}

type studentPayload struct {
	Name    string `json:"name,omitempty"`
	Regno   string `json:"regno,omitempty"`
	Course  string `json:"course,omitempty"`
	Year    string `json:"year,omitempty"`
	Branch  string `json:"branch,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type backendFee struct {
	ID        FlexID          `json:"id"`
	Component string          `json:"component"`
	Amount    decimal.Decimal `json:"amount"`
	Mandatory bool            `json:"mandatory"`
}

type feePayload struct {
	Component string `json:"component,omitempty"`
	Amount    *int64 `json:"amount,omitempty"`
	Mandatory *bool  `json:"mandatory,omitempty"`
}

type backendPayment struct {
	ID                FlexID          `json:"id"`
	StudentID         FlexID          `json:"studentId"`
	InvoiceID         FlexID          `json:"invoiceId"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	RazorpayOrderID   string          `json:"razorpayOrderId"`
	RazorpayPaymentID string          `json:"razorpayPaymentId"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
}

// OrderItem is one fee line sent with an order, amount in subunits.
type OrderItem struct {
	ID        string `json:"id"`
	Component string `json:"component"`
	Amount    int64  `json:"amount"`
}

// CreateOrderInput asks the backend to open an order for AmountSubunits.
type CreateOrderInput struct {
	StudentID      string
	AmountSubunits int64
	Currency       string
	Items          []OrderItem
	Meta           map[string]string
}

type createOrderPayload struct {
	StudentID interface{}       `json:"studentId"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Items     []OrderItem       `json:"items"`
	Meta      map[string]string `json:"meta,omitempty"`
}

type createOrderResponse struct {
	OrderID   string          `json:"orderId"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	KeyID     string          `json:"keyId"`
	InvoiceID *int64          `json:"invoiceId"`
}

// VerifyInput is the completion callback forwarded for verification.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
	InvoiceID *int64
}

type verifyPayload struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	InvoiceID *int64 `json:"invoiceId,omitempty"`
}

// VerifyResult is the backend's verdict on a callback.
type VerifyResult struct {
	Status     string `json:"status"`
	PaymentID  FlexID `json:"paymentId"`
	ReceiptURL string `json:"receiptUrl"`
}

type CourseTotal struct {
	Course string          `json:"course"`
	Amount decimal.Decimal `json:"amount"`
}

type DefaulterTotal struct {
	StudentID FlexID          `json:"studentId"`
	Amount    decimal.Decimal `json:"amount"`
}

// ReportData is the backend summary. Amounts are in subunits.
type ReportData struct {
	TotalCollected decimal.Decimal  `json:"totalCollected"`
	ByCourse       []CourseTotal    `json:"byCourse"`
	Defaulters     []DefaulterTotal `json:"defaulters"`
}
