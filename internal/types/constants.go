package types

import (
	"errors"
	"time"
)

const (
	// DefaultBaseURL is the storefront entry page
	DefaultBaseURL = "https://www.10bis.co.il/next/en/"

	// DefaultItemURL is a Shufersal voucher worth 200 ILS
	DefaultItemURL = "https://www.10bis.co.il/next/en/restaurants/menu/delivery/26698/shufersal/?dishId=6552647"

	// DefaultItemPrice is the price of the default voucher
	DefaultItemPrice = "200.00"
)

// Bounded waits. Every wait either succeeds within its window or the
// run fails; nothing is retried.
const (
	// AuthProbeTimeout bounds the greeting-control probe
	AuthProbeTimeout = 5 * time.Second

	// OTPPromptTimeout bounds the wait for the one-time-code prompt
	OTPPromptTimeout = 60 * time.Second

	// LoginTimeout bounds each login form control
	LoginTimeout = 15 * time.Second

	// MenuTimeout bounds the wait for the account menu control
	MenuTimeout = 30 * time.Second

	// LabelTimeout bounds each budget-label lookup
	LabelTimeout = 5 * time.Second

	// CartTimeout bounds the add-to-cart and payment controls
	CartTimeout = 15 * time.Second

	// ConfirmTimeout bounds the wait for the order confirmation marker
	ConfirmTimeout = 10 * time.Second
)

// Common errors
var (
	// ErrNotAuthenticated is returned when authentication is required
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoginFailed is returned when login fails
	ErrLoginFailed = errors.New("login failed")

	// ErrElementNotFound is returned when a required page control or
	// text did not appear within its bounded wait
	ErrElementNotFound = errors.New("element not found")

	// ErrTimeout is returned when a bounded wait elapses
	ErrTimeout = errors.New("wait timeout")

	// ErrCheckoutUnconfirmed is returned when the order confirmation
	// never appeared; the funds may already be committed
	ErrCheckoutUnconfirmed = errors.New("checkout not confirmed")
)
