package tenbis

import (
	"errors"

	internalTypes "github.com/orshemtov/auto10bis/internal/types"
)

var (
	// ErrNoPage is returned when the client is built without a page
	ErrNoPage = errors.New("a Page is required")

	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = internalTypes.ErrNotAuthenticated

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = internalTypes.ErrLoginFailed

	// ErrElementNotFound is returned when a required page control or
	// text did not appear within its bounded wait
	ErrElementNotFound = internalTypes.ErrElementNotFound

	// ErrTimeout is returned when a bounded wait elapses
	ErrTimeout = internalTypes.ErrTimeout

	// ErrCheckoutUnconfirmed is returned when the order confirmation
	// never appeared within its wait window
	ErrCheckoutUnconfirmed = internalTypes.ErrCheckoutUnconfirmed
)

// Error represents a flow error with a stable code
type Error = internalTypes.Error

// ParseError reports text that did not match the expected
// currency-numeral pattern
type ParseError = internalTypes.ParseError

// IsFatalPurchaseError reports whether err happened after the order
// may have been submitted, meaning the funds could be committed
// without a local confirmation.
func IsFatalPurchaseError(err error) bool {
	return errors.Is(err, ErrCheckoutUnconfirmed)
}
