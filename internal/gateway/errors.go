package gateway

import (
	"errors"
	"fmt"

	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

// Kind classifies why a backend call did not produce data.
type Kind string

const (
	KindTransport Kind = customError.ErrCodeTransportFailure
	KindRejection Kind = customError.ErrCodeBackendRejection
	KindShape     Kind = customError.ErrCodeShapeMismatch
)

// GatewayError is returned by every Client operation that fails.
type GatewayError struct {
	Kind       Kind
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func newError(kind Kind, op string, statusCode int, message string, err error) *GatewayError {
	return &GatewayError{
		Kind:       kind,
		Op:         op,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: op=%s statusCode=%d msg=%s err=%v", e.Kind, e.Op, e.StatusCode, e.Message, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a gateway failure, or "" for other errors.
func KindOf(err error) Kind {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return ""
}

// IsRejection reports whether the backend answered and refused the request.
func IsRejection(err error) bool {
	return KindOf(err) == KindRejection
}
