package tenbis

import "github.com/shopspring/decimal"

// ShouldSkip reports whether the purchase should be skipped because
// the remaining budget does not cover price. Pure and deterministic:
// skip when either the monthly or the daily balance is strictly below
// price. A balance exactly equal to the price is affordable.
func ShouldSkip(budget *BudgetInfo, price decimal.Decimal) bool {
	return budget.MonthlyBalance.LessThan(price) || budget.DailyBalance.LessThan(price)
}
