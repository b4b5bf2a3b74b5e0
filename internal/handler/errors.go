package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/gateway"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
)

var statusByCode = map[string]int{
	customError.ErrCodeNoFeesSelected:           http.StatusBadRequest,
	customError.ErrCodeMandatoryFee:             http.StatusBadRequest,
	customError.ErrCodeInvalidRequest:           http.StatusBadRequest,
	customError.ErrCodeInvalidCredentials:       http.StatusUnauthorized,
	customError.ErrCodeSignatureOrOrderMismatch: http.StatusPaymentRequired,
	customError.ErrCodeVerificationFailed:       http.StatusPaymentRequired,
	customError.ErrCodeForbidden:                http.StatusForbidden,
	customError.ErrCodeOrderNotFound:            http.StatusNotFound,
	customError.ErrCodeStudentNotFound:          http.StatusNotFound,
	customError.ErrCodeFeeNotFound:              http.StatusNotFound,
	customError.ErrCodeInvalidTransition:        http.StatusConflict,
	customError.ErrCodeBackendRejection:         http.StatusBadGateway,
	customError.ErrCodeShapeMismatch:            http.StatusBadGateway,
	customError.ErrCodeTransportFailure:         http.StatusServiceUnavailable,
	customError.ErrCodeDatabaseError:            http.StatusInternalServerError,
	customError.ErrCodeCacheError:               http.StatusInternalServerError,
}

// writeError maps err onto a status and business code. data rides along in
// the body, e.g. the failed payment after a verification failure.
func writeError(w http.ResponseWriter, r *http.Request, err error, data interface{}) {
	var be *customError.BusinessError
	if errors.As(err, &be) {
		status, ok := statusByCode[be.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			logger.Error(r.Context(), "request failed", zap.String("code", be.Code), zap.Error(err))
		}
		response.Failure(w, status, be.Code, be.Message, data)
		return
	}

	if kind := gateway.KindOf(err); kind != "" {
		logger.Warn(r.Context(), "backend error reached handler", zap.Error(err))
		response.Failure(w, statusByCode[string(kind)], string(kind), "Fee service error", data)
		return
	}

	logger.Error(r.Context(), "unexpected error", zap.Error(err))
	response.InternalServerError(w, "Internal server error", nil)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
