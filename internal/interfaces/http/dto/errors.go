package dto

import (
	"errors"
	"net/http"
	"strings"

	applocation "github.com/NehaS05/NYRApi-sub000/internal/application/location"
	appwarehouse "github.com/NehaS05/NYRApi-sub000/internal/application/warehouse"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = reference.CodeValidation
	ErrCodeNotFound   = "NOT_FOUND"
)

// Request level error codes raised by the middleware
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeInvalidToken     = "INVALID_TOKEN"
	ErrCodeTokenRevoked     = "TOKEN_REVOKED"
	ErrCodeInvalidTenant    = "INVALID_TENANT"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
)

// Route optimization provider error codes
const (
	ErrCodeOptimizerNotConfigured = "OPTIMIZER_NOT_CONFIGURED"
	ErrCodeOptimizerUnavailable   = "OPTIMIZER_UNAVAILABLE"
	ErrCodeOptimizerBadResponse   = "OPTIMIZER_BAD_RESPONSE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Codes not listed here fall back to the prefix rules in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	reference.CodeVariantMismatch: http.StatusBadRequest,

	// Ledger rejections are caller errors: the request must be resubmitted with corrected data
	ledger.CodeInsufficientQuantity:      http.StatusBadRequest,
	ledger.CodeNegativeQuantity:          http.StatusBadRequest,
	applocation.CodeNoMatchingInventory:  http.StatusBadRequest,
	appwarehouse.CodeNotFoundInWarehouse: http.StatusBadRequest,

	delivery.CodeOTPRequired:   http.StatusBadRequest,
	delivery.CodeOTPMismatch:   http.StatusBadRequest,
	delivery.CodeNoOTPRequired: http.StatusBadRequest,
	delivery.CodeInvalidOTP:    http.StatusBadRequest,

	"DUPLICATE_ENTRY":       http.StatusConflict,
	"ALREADY_EXISTS":        http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	ErrCodeDuplicateRequest: http.StatusConflict,
	"INVALID_STATE":         http.StatusUnprocessableEntity,

	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeTokenExpired:  http.StatusUnauthorized,
	ErrCodeInvalidToken:  http.StatusUnauthorized,
	ErrCodeTokenRevoked:  http.StatusUnauthorized,
	ErrCodeInvalidTenant: http.StatusBadRequest,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeOptimizerNotConfigured: http.StatusServiceUnavailable,
	ErrCodeOptimizerUnavailable:   http.StatusBadGateway,
	ErrCodeOptimizerBadResponse:   http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// INVALID_*, EMPTY_* and OTP_* codes are input errors; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	for _, prefix := range []string{"INVALID_", "EMPTY_", "OTP_"} {
		if strings.HasPrefix(code, prefix) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// ErrorResult is an error translated for the HTTP layer
type ErrorResult struct {
	Status  int
	Code    string
	Message string
}

// TranslateError maps err to a status, code and client-safe message.
// Unknown errors never leak their text.
func TranslateError(err error) ErrorResult {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := GetHTTPStatus(domainErr.Code)
		if status == http.StatusInternalServerError {
			return internalError()
		}
		return ErrorResult{Status: status, Code: domainErr.Code, Message: domainErr.Message}
	}

	switch {
	case errors.Is(err, delivery.ErrOptimizerNotConfigured):
		return ErrorResult{http.StatusServiceUnavailable, ErrCodeOptimizerNotConfigured, "Route optimization is not configured"}
	case errors.Is(err, delivery.ErrOptimizerUnavailable):
		return ErrorResult{http.StatusBadGateway, ErrCodeOptimizerUnavailable, "Route optimization provider is unavailable"}
	case errors.Is(err, delivery.ErrOptimizerInvalidResponse):
		return ErrorResult{http.StatusBadGateway, ErrCodeOptimizerBadResponse, "Route optimization provider returned an invalid sequence"}
	}
	return internalError()
}

func internalError() ErrorResult {
	return ErrorResult{
		Status:  http.StatusInternalServerError,
		Code:    ErrCodeInternal,
		Message: "An unexpected error occurred",
	}
}
