package tenbis

import "context"

// SessionService handles authentication state
type SessionService interface {
	// IsAuthenticated probes for the post-login greeting control.
	// Absence within the bounded wait is false, not an error.
	IsAuthenticated(ctx context.Context) (bool, error)

	// EnsureAuthenticated is a no-op when already authenticated;
	// otherwise it runs the interactive login and one-time-code flow.
	EnsureAuthenticated(ctx context.Context, email string) error
}

// BudgetService reads the spending-budget report
type BudgetService interface {
	// Read navigates to the transactions report and extracts the
	// labeled amounts. A missing label or unparsable amount is a
	// hard error, never a silent zero.
	Read(ctx context.Context) (*BudgetInfo, error)
}

// PurchaseService drives the cart and checkout
type PurchaseService interface {
	// AddToCart opens the item page, adds the item and proceeds to
	// payment.
	AddToCart(ctx context.Context, itemURL string) error

	// Checkout places the order, waits for the confirmation marker
	// and archives the proof-of-purchase artifacts.
	Checkout(ctx context.Context) (*Order, error)
}
