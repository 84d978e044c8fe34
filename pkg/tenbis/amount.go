package tenbis

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// The report renders amounts with the shekel sign on either side of
// the digits, with or without interior whitespace: ₪400, ₪ 400,
// 400₪, 400 ₪.
var (
	amountMarkerFirst = regexp.MustCompile(`₪\s*([0-9]+)`)
	amountMarkerLast  = regexp.MustCompile(`([0-9]+)\s*₪`)
)

// ParseAmount extracts a currency-marked decimal amount from text.
// Text containing no digit run adjacent to the currency marker is a
// *ParseError identifying the offending text; amounts are never
// defaulted.
func ParseAmount(text string) (decimal.Decimal, error) {
	m := amountMarkerFirst.FindStringSubmatch(text)
	if m == nil {
		m = amountMarkerLast.FindStringSubmatch(text)
	}
	if m == nil {
		return decimal.Zero, &ParseError{Text: text}
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, &ParseError{Text: text}
	}

	return amount, nil
}
