package tenbis

import (
	"time"

	"github.com/shopspring/decimal"

	internalTypes "github.com/orshemtov/auto10bis/internal/types"
)

// Target identifies a page control by role and accessible name
type Target = internalTypes.Target

// Relation describes where a value node sits relative to its label
type Relation = internalTypes.Relation

// Session records metadata about an authenticated browser profile
type Session = internalTypes.Session

// Role aliases for building targets
const (
	RoleButton = internalTypes.RoleButton
	RoleText   = internalTypes.RoleText
	RoleInput  = internalTypes.RoleInput
)

// BudgetInfo is an immutable snapshot of the spending-budget report.
// All amounts are non-negative decimals parsed from currency-labeled
// text; a parse failure during extraction aborts the run.
type BudgetInfo struct {
	MonthlyLimit   decimal.Decimal `json:"monthlyLimit"`
	DailyLimit     decimal.Decimal `json:"dailyLimit"`
	SpentThisMonth decimal.Decimal `json:"spentThisMonth"`
	SpentToday     decimal.Decimal `json:"spentToday"`
	MonthlyBalance decimal.Decimal `json:"monthlyBalance"`
	DailyBalance   decimal.Decimal `json:"dailyBalance"`
}

// Order describes the archived proof of purchase for one checkout.
type Order struct {
	// ID is the second-resolution artifact name, order-YYYYMMDD-HHMMSS
	ID string `json:"id"`

	// ScreenshotPath is the confirmation PNG
	ScreenshotPath string `json:"screenshotPath"`

	// ReceiptPath is the print-rendered PDF receipt
	ReceiptPath string `json:"receiptPath"`

	// PlacedAt is when the confirmation was observed
	PlacedAt time.Time `json:"placedAt"`
}
