package pricing

import (
	"testing"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		price      string
		updateType domain.PriceUpdateType
		value      string
		want       string
	}{
		{"percentage increase", "1000", domain.UpdatePercentage, "10", "1100.00"},
		{"percentage decrease", "1000", domain.UpdatePercentage, "-25", "750"},
		{"percentage to zero", "1000", domain.UpdatePercentage, "-100", "0"},
		{"percentage rounds half up", "9.99", domain.UpdatePercentage, "5", "10.49"},
		{"exact", "1000", domain.UpdateExact, "499.999", "500.00"},
		{"addition", "10.10", domain.UpdateAddition, "0.015", "10.12"},
		{"subtraction", "1000", domain.UpdateSubtraction, "250.5", "749.50"},
		{"subtraction clamps at zero", "1000", domain.UpdateSubtraction, "1500", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(d(tt.price), tt.updateType, d(tt.value))
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
			assert.False(t, got.IsNegative())
			assert.True(t, got.Equal(got.Round(2)))
		})
	}

	_, err := Apply(d("1"), domain.PriceUpdateType("multiply"), d("2"))
	assert.Error(t, err)
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue(domain.UpdatePercentage, d("-100")))
	assert.Error(t, ValidateValue(domain.UpdatePercentage, d("-100.01")))
	assert.NoError(t, ValidateValue(domain.UpdateExact, d("0")))
	assert.Error(t, ValidateValue(domain.UpdateExact, d("-1")))
	assert.Error(t, ValidateValue(domain.UpdateAddition, d("-0.01")))
	assert.Error(t, ValidateValue(domain.UpdateSubtraction, d("-5")))
	assert.Error(t, ValidateValue(domain.PriceUpdateType(""), d("5")))
}

func TestPlan(t *testing.T) {
	variants := []domain.ProductVariant{
		{VariantID: "v1", ProductID: "p1", PackingVolume: "1L", CustomerPrice: d("1000"), DealerPrice: d("800")},
		{VariantID: "v2", ProductID: "p1", PackingVolume: "5L", CustomerPrice: d("4000"), DealerPrice: d("3500")},
	}

	changes, err := Plan(variants, map[string]string{"p1": "Tonic"}, domain.DealerPrice, domain.UpdateSubtraction, d("1000"))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, "Tonic", changes[0].ProductName)
	assert.True(t, d("800").Equal(changes[0].OldPrice))
	assert.True(t, decimal.Zero.Equal(changes[0].NewPrice))
	assert.True(t, d("2500").Equal(changes[1].NewPrice))
}
