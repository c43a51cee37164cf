// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/mbtisaju/internal/analysis"
	"github.com/tomtom215/mbtisaju/internal/database"
	"github.com/tomtom215/mbtisaju/internal/mbti"
	"github.com/tomtom215/mbtisaju/internal/payment"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

// Error codes carried in APIError.Code.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInvalidDate    = "INVALID_DATE"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodePaymentFailed  = "PAYMENT_FAILED"
	ErrCodeAmountMismatch = "AMOUNT_MISMATCH"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeUnavailable    = "SERVICE_UNAVAILABLE"
)

// respondServiceError maps a domain error onto a status and code. Anything
// unrecognized is logged and answered with a bare 500.
func respondServiceError(rw *ResponseWriter, err error) {
	var gerr *payment.GatewayError
	switch {
	case errors.Is(err, saju.ErrInvalidDate):
		rw.Error(http.StatusBadRequest, ErrCodeInvalidDate, "존재하지 않는 날짜입니다", nil)
	case errors.Is(err, saju.ErrInvalidTimeIndex):
		rw.Error(http.StatusBadRequest, ErrCodeInvalidDate, "시간 인덱스는 0에서 11 사이여야 합니다", nil)

	case errors.Is(err, analysis.ErrMBTIConflict):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, "MBTI 유형과 문항 응답 중 하나만 보내 주세요", nil)
	case errors.Is(err, mbti.ErrInvalidType):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, "올바르지 않은 MBTI 유형입니다", nil)
	case errors.Is(err, mbti.ErrInvalidAnswer):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, "문항 응답이 올바르지 않습니다", map[string]interface{}{"reason": err.Error()})
	case errors.Is(err, payment.ErrUnknownProduct):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, "알 수 없는 상품입니다", nil)

	case errors.Is(err, analysis.ErrNotFound),
		errors.Is(err, payment.ErrAnalysisNotFound):
		rw.Error(http.StatusNotFound, ErrCodeNotFound, "분석 결과를 찾을 수 없습니다", nil)
	case errors.Is(err, payment.ErrOrderNotFound),
		errors.Is(err, database.ErrNotFound):
		rw.Error(http.StatusNotFound, ErrCodeNotFound, "주문을 찾을 수 없습니다", nil)

	case errors.Is(err, payment.ErrAmountMismatch):
		rw.Error(http.StatusBadRequest, ErrCodeAmountMismatch, "결제 금액이 주문 금액과 일치하지 않습니다", nil)
	case errors.Is(err, analysis.ErrNotPaid):
		rw.Error(http.StatusPaymentRequired, ErrCodePaymentFailed, "결제가 완료되지 않은 주문입니다", nil)
	case errors.Is(err, payment.ErrAlreadyProcessed),
		errors.Is(err, payment.ErrKeyReused),
		errors.Is(err, database.ErrOrderNotPending):
		rw.Error(http.StatusConflict, ErrCodePaymentFailed, "이미 처리된 결제입니다", nil)
	case errors.Is(err, payment.ErrConfirmInFlight):
		rw.Error(http.StatusConflict, ErrCodePaymentFailed, "결제를 처리하고 있습니다. 잠시 후 다시 시도해 주세요", nil)
	case errors.Is(err, payment.ErrCircuitOpen):
		rw.w.Header().Set("Retry-After", "30")
		rw.Error(http.StatusServiceUnavailable, ErrCodeUnavailable, "결제 서비스가 일시적으로 중단되었습니다", nil)
	case errors.As(err, &gerr) && gerr.Rejected():
		rw.Error(http.StatusBadRequest, ErrCodePaymentFailed, "결제가 승인되지 않았습니다", map[string]interface{}{
			"gatewayCode":    gerr.Code,
			"gatewayMessage": gerr.Message,
		})
	case errors.Is(err, payment.ErrGateway):
		rw.Error(http.StatusBadGateway, ErrCodePaymentFailed, "결제 승인 중 오류가 발생했습니다. 다시 시도해 주세요", nil)

	default:
		rw.InternalError(err)
	}
}
