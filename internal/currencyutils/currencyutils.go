// Package currencyutils provides the decimal amount helpers used when
// classifying normalized rows.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a normalized amount such as "-1234.56". An empty string
// is an error: a row without an amount cannot be classified.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// StripSign removes a leading minus from a normalized amount string and
// leaves everything else untouched, so "-12.30" becomes "12.30".
func StripSign(amountStr string) string {
	return strings.TrimPrefix(amountStr, "-")
}
