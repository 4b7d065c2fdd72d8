package entry

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDisplayAmount parses an amount the way the terminal displays
// it: dot thousands separators, decimal comma, and a trailing minus
// for negative values ("1.234,56-" is -1234.56).
func ParseDisplayAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := strings.HasSuffix(s, "-")
	if negative {
		s = strings.TrimSuffix(s, "-")
		s = strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		value = value.Neg()
	}
	return value.Round(2), nil
}

// formatAmount renders an amount in the decimal-comma form the
// terminal's input fields expect.
func formatAmount(value decimal.Decimal) string {
	return strings.Replace(value.Abs().StringFixed(2), ".", ",", 1)
}
