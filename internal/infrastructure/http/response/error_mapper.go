package response

import (
	"context"
	"errors"
	"net/http"

	domainErrors "github.com/yuzvak/pos-service/internal/domain/errors"
)

type ErrorMapping struct {
	Err        error
	HTTPStatus int
	Status     Status
	Message    string
}

// errorMappings is checked in order; the first match wins. A failed checkout
// line wraps the remote cause, so it must come before ErrInventoryRejected.
var errorMappings = []ErrorMapping{
	{
		Err:        domainErrors.ErrCheckoutLineFailed,
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusUpstreamError,
		Message:    "Checkout stopped at a line the inventory service did not accept",
	},
	{
		Err:        domainErrors.ErrCheckoutInProgress,
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "A checkout is already in progress",
	},
	{
		Err:        domainErrors.ErrEmptyCart,
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Cart is empty",
	},
	{
		Err:        domainErrors.ErrInvalidTender,
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusError,
		Message:    "Tendered amount is missing or below the total",
	},
	{
		Err:        domainErrors.ErrStockExceeded,
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Maximum stock reached",
	},
	{
		Err:        domainErrors.ErrInvalidQuantity,
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Quantity cannot be negative",
	},
	{
		Err:        domainErrors.ErrLineNotFound,
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Item is not in the cart",
	},
	{
		Err:        domainErrors.ErrItemNotFound,
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Item not found",
	},
	{
		Err:        domainErrors.ErrCheckoutNotFound,
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Checkout not found",
	},
	{
		Err:        domainErrors.ErrInvalidItem,
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid item",
	},
	{
		Err:        domainErrors.ErrInvalidPeriod,
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid report period",
	},
	{
		Err:        domainErrors.ErrInvalidKind,
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid transaction kind",
	},
	{
		Err:        domainErrors.ErrFetchFailed,
		HTTPStatus: http.StatusServiceUnavailable,
		Status:     StatusServiceUnavailable,
		Message:    "Could not load items from the inventory service",
	},
	{
		Err:        domainErrors.ErrInventoryRejected,
		HTTPStatus: http.StatusBadGateway,
		Status:     StatusUpstreamError,
		Message:    "Inventory service rejected the request",
	},
	{
		Err:        context.DeadlineExceeded,
		HTTPStatus: http.StatusGatewayTimeout,
		Status:     StatusUpstreamError,
		Message:    "Inventory service timed out",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.Err) {
			return mapping.HTTPStatus, Error(mapping.Status, mapping.Message, err.Error())
		}
	}

	return http.StatusBadGateway, Error(StatusUpstreamError, "Inventory service request failed", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
