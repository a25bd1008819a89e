package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  decimal.Decimal
		hasError  bool
	}{
		{"Simple decimal", "123.45", decimal.RequireFromString("123.45"), false},
		{"Negative decimal", "-1234.56", decimal.RequireFromString("-1234.56"), false},
		{"Integer", "100", decimal.NewFromInt(100), false},
		{"Surrounding spaces", " 12.30 ", decimal.RequireFromString("12.30"), false},
		{"Zero", "0.00", decimal.Zero, false},
		{"Empty string", "", decimal.Zero, true},
		{"Malformed decimal", "123.45.67", decimal.Zero, true},
		{"Non-numeric", "n/a", decimal.Zero, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected, result)
		})
	}
}

func TestIsNegative(t *testing.T) {
	assert.True(t, IsNegative(decimal.RequireFromString("-0.01")))
	assert.False(t, IsNegative(decimal.Zero))
	assert.False(t, IsNegative(decimal.RequireFromString("-0.00")))
	assert.False(t, IsNegative(decimal.RequireFromString("5")))
}

func TestStripSign(t *testing.T) {
	assert.Equal(t, "12.30", StripSign("-12.30"))
	assert.Equal(t, "12.30", StripSign("12.30"))
	assert.Equal(t, "1-2", StripSign("1-2"))
	assert.Equal(t, "", StripSign(""))
}
