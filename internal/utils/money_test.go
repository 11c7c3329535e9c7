package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"12.3456", "12.35"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-2500.5", "-2,500.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestRoundMoneyAndClamp(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.13").Equal(RoundMoney(decimal.RequireFromString("10.125"))))
	assert.True(t, decimal.Zero.Equal(ClampNonNegative(decimal.NewFromInt(-5))))
	assert.True(t, decimal.NewFromInt(5).Equal(ClampNonNegative(decimal.NewFromInt(5))))
}
