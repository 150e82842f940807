package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeValidation, http.StatusBadRequest},
		{"INVALID_PRODUCT", http.StatusBadRequest},
		{"INVALID_WAREHOUSE", http.StatusBadRequest},
		{"EMPTY_TRANSFER", http.StatusBadRequest},
		{"OTP_REQUIRED", http.StatusBadRequest},
		{"OTP_MISMATCH", http.StatusBadRequest},
		{"NO_OTP_REQUIRED", http.StatusBadRequest},
		{"INSUFFICIENT_QUANTITY", http.StatusBadRequest},
		{"NEGATIVE_QUANTITY", http.StatusBadRequest},
		{"NO_MATCHING_INVENTORY", http.StatusBadRequest},
		{"NOT_FOUND_IN_WAREHOUSE", http.StatusBadRequest},
		{"DUPLICATE_ENTRY", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "domain error keeps its message",
			err:     shared.NewDomainError("INSUFFICIENT_QUANTITY", "Insufficient quantity for product X: available 3"),
			status:  http.StatusBadRequest,
			code:    "INSUFFICIENT_QUANTITY",
			message: "Insufficient quantity for product X: available 3",
		},
		{
			name:    "wrapped domain error",
			err:     fmt.Errorf("create outward: %w", ledger.ErrNegativeQuantity),
			status:  http.StatusBadRequest,
			code:    ledger.CodeNegativeQuantity,
			message: ledger.ErrNegativeQuantity.Message,
		},
		{
			name:    "otp mismatch",
			err:     delivery.ErrOTPMismatch,
			status:  http.StatusBadRequest,
			code:    delivery.CodeOTPMismatch,
			message: "Invalid DeliveryOTP",
		},
		{
			name:   "not found",
			err:    shared.ErrNotFound,
			status: http.StatusNotFound,
			code:   ErrCodeNotFound,
		},
		{
			name:   "domain error with an unmapped code is hidden",
			err:    shared.NewDomainError("UNAUTHORIZED_SOMETHING", "internal detail"),
			status: http.StatusInternalServerError,
			code:   ErrCodeInternal,
		},
		{
			name:   "optimizer not configured",
			err:    delivery.ErrOptimizerNotConfigured,
			status: http.StatusServiceUnavailable,
			code:   ErrCodeOptimizerNotConfigured,
		},
		{
			name:   "optimizer unavailable",
			err:    fmt.Errorf("%w: connection refused", delivery.ErrOptimizerUnavailable),
			status: http.StatusBadGateway,
			code:   ErrCodeOptimizerUnavailable,
		},
		{
			name:   "optimizer returned garbage",
			err:    delivery.ErrOptimizerInvalidResponse,
			status: http.StatusBadGateway,
			code:   ErrCodeOptimizerBadResponse,
		},
		{
			name:    "plain error does not leak",
			err:     errors.New("pq: connection reset by peer"),
			status:  http.StatusInternalServerError,
			code:    ErrCodeInternal,
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, got.Message)
			}
			assert.NotContains(t, got.Message, "pq:")
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 45, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta(nil, 5, 0, 0)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, DefaultPageSize, resp.Meta.PageSize)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "quantity", Message: "Must be greater than 0"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeValidation, errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	assert.Len(t, errObj["details"], 1)
}

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(-1, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageSize, size)
}
