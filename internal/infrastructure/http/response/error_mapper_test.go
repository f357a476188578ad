package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/pos-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
)

func TestMapDomainError(t *testing.T) {
	lineFailed := (&cart.CheckoutResult{
		ID:     "CHK-1",
		Failed: &cart.LineFailure{Index: 1, Cause: fmt.Errorf("wrapped: %w", domainErrors.ErrInventoryRejected)},
	}).Err()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   Status
	}{
		{"failed line before rejection", lineFailed, http.StatusBadGateway, StatusUpstreamError},
		{"in progress", domainErrors.ErrCheckoutInProgress, http.StatusConflict, StatusConflict},
		{"empty cart", domainErrors.ErrEmptyCart, http.StatusBadRequest, StatusError},
		{"stock exceeded", fmt.Errorf("add: %w", domainErrors.ErrStockExceeded), http.StatusConflict, StatusConflict},
		{"negative quantity", domainErrors.ErrInvalidQuantity, http.StatusBadRequest, StatusValidationError},
		{"unknown item", domainErrors.ErrItemNotFound, http.StatusNotFound, StatusNotFound},
		{"fetch failed", domainErrors.ErrFetchFailed, http.StatusServiceUnavailable, StatusServiceUnavailable},
		{"timeout", fmt.Errorf("post: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, StatusUpstreamError},
		{"anything else", errors.New("connection reset"), http.StatusBadGateway, StatusUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.Equal(t, tt.err.Error(), resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestWriteDomainErrorWithData(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteDomainErrorWithData(rec, domainErrors.ErrCheckoutLineFailed, map[string]int{"remaining_lines": 2})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"message": "Checkout stopped at a line the inventory service did not accept",
		"error": "checkout line submission failed",
		"code": "upstream_error",
		"data": {"remaining_lines": 2}
	}`, rec.Body.String())
}
