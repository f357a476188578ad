package errors

import (
	"errors"
)

var (
	ErrFetchFailed       = errors.New("catalog fetch failed")
	ErrItemNotFound      = errors.New("item not found")
	ErrSnapshotNotFound  = errors.New("catalog snapshot not found")
	ErrInvalidItem       = errors.New("invalid item")
	ErrInventoryRejected = errors.New("inventory service rejected the request")

	ErrStockExceeded   = errors.New("quantity would exceed available stock")
	ErrLineNotFound    = errors.New("item not in cart")
	ErrInvalidQuantity = errors.New("quantity cannot be negative")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTender      = errors.New("tendered amount is missing or below total")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrCheckoutLineFailed = errors.New("checkout line submission failed")
	ErrCheckoutNotFound   = errors.New("checkout not found")

	ErrInvalidPeriod = errors.New("invalid report period")
	ErrInvalidKind   = errors.New("invalid transaction kind")
)
