package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNoFeesSelected           = errors.New("no fees selected")
	ErrSignatureOrOrderMismatch = errors.New("signature or order mismatch")
	ErrVerificationFailed       = errors.New("payment verification failed")
	ErrInvalidTransition        = errors.New("invalid payment state transition")
	ErrOrderNotFound            = errors.New("order not found")
	ErrStudentNotFound          = errors.New("student not found")
	ErrFeeNotFound              = errors.New("fee not found")
	ErrMandatoryFee             = errors.New("mandatory fee cannot be deselected")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrForbidden                = errors.New("forbidden")
	ErrInvalidRequest           = errors.New("invalid request")
	ErrBackendUnavailable       = errors.New("backend unavailable")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the business code carried by err, or "" when err is not a BusinessError.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Error codes
const (
	ErrCodeTransportFailure         = "TRANSPORT_FAILURE"
	ErrCodeBackendRejection         = "BACKEND_REJECTION"
	ErrCodeShapeMismatch            = "SHAPE_MISMATCH"
	ErrCodeNoFeesSelected           = "NO_FEES_SELECTED"
	ErrCodeSignatureOrOrderMismatch = "SIGNATURE_OR_ORDER_MISMATCH"
	ErrCodeVerificationFailed       = "VERIFICATION_FAILED"
	ErrCodeInvalidTransition        = "INVALID_TRANSITION"
	ErrCodeOrderNotFound            = "ORDER_NOT_FOUND"
	ErrCodeStudentNotFound          = "STUDENT_NOT_FOUND"
	ErrCodeFeeNotFound              = "FEE_NOT_FOUND"
	ErrCodeMandatoryFee             = "MANDATORY_FEE"
	ErrCodeInvalidCredentials       = "INVALID_CREDENTIALS"
	ErrCodeForbidden                = "FORBIDDEN"
	ErrCodeInvalidRequest           = "INVALID_REQUEST"
	ErrCodeDatabaseError            = "DATABASE_ERROR"
	ErrCodeCacheError               = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapNoFeesSelected() *BusinessError {
	return NewBusinessError(
		ErrCodeNoFeesSelected,
		"Select at least one fee to pay",
		ErrNoFeesSelected,
	)
}

func WrapSignatureOrOrderMismatch(expected, actual string) *BusinessError {
	return NewBusinessError(
		ErrCodeSignatureOrOrderMismatch,
		fmt.Sprintf("Callback order %s does not match pending order %s", actual, expected),
		ErrSignatureOrOrderMismatch,
	)
}

func WrapVerificationFailed(orderID string, err error) *BusinessError {
	if err == nil {
		err = ErrVerificationFailed
	}
	return NewBusinessError(
		ErrCodeVerificationFailed,
		fmt.Sprintf("Payment for order %s could not be verified", orderID),
		err,
	)
}

func WrapInvalidTransition(from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		fmt.Sprintf("Cannot move payment attempt from %s to %s", from, to),
		ErrInvalidTransition,
	)
}

func WrapOrderNotFound(orderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeOrderNotFound,
		fmt.Sprintf("Order with ID %s not found", orderID),
		ErrOrderNotFound,
	)
}

func WrapStudentNotFound(studentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeStudentNotFound,
		fmt.Sprintf("Student with ID %s not found", studentID),
		ErrStudentNotFound,
	)
}

func WrapFeeNotFound(feeID string) *BusinessError {
	return NewBusinessError(
		ErrCodeFeeNotFound,
		fmt.Sprintf("Fee with ID %s not found", feeID),
		ErrFeeNotFound,
	)
}

func WrapMandatoryFee(feeID string) *BusinessError {
	return NewBusinessError(
		ErrCodeMandatoryFee,
		fmt.Sprintf("Fee %s is mandatory and stays selected", feeID),
		ErrMandatoryFee,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"Invalid email or password",
		ErrInvalidCredentials,
	)
}

func WrapForbidden(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeForbidden,
		message,
		ErrForbidden,
	)
}

func WrapInvalidRequest(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRequest,
		message,
		ErrInvalidRequest,
	)
}

func WrapBackendUnavailable(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeTransportFailure,
		"Fee service is unavailable",
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
