package pricing

import (
	"fmt"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	hundred         = decimal.NewFromInt(100)
	minusOneHundred = decimal.NewFromInt(-100)
)

// Apply computes the new price for p under the given rule.
// The result is rounded to two decimals and never negative.
func Apply(p decimal.Decimal, updateType domain.PriceUpdateType, value decimal.Decimal) (decimal.Decimal, error) {
	var next decimal.Decimal
	switch updateType {
	case domain.UpdateExact:
		next = value
	case domain.UpdatePercentage:
		next = p.Add(p.Mul(value).Div(hundred))
	case domain.UpdateAddition:
		next = p.Add(value)
	case domain.UpdateSubtraction:
		next = p.Sub(value)
	default:
		return decimal.Zero, fmt.Errorf("unknown update type %q", updateType)
	}
	return utils.ClampNonNegative(utils.RoundMoney(next)), nil
}

// ValidateValue checks a rule's operand before any price is touched.
// Percentages may be negative down to -100; every other rule takes a non-negative amount.
func ValidateValue(updateType domain.PriceUpdateType, value decimal.Decimal) error {
	if !updateType.IsValid() {
		return fmt.Errorf("unknown update type %q", updateType)
	}
	if updateType == domain.UpdatePercentage {
		if value.LessThan(minusOneHundred) {
			return fmt.Errorf("percentage must be at least -100, got %s", value)
		}
		return nil
	}
	if value.IsNegative() {
		return fmt.Errorf("%s value must not be negative, got %s", updateType, value)
	}
	return nil
}

// Plan computes the change set for a list of variants without persisting anything.
func Plan(variants []domain.ProductVariant, names map[string]string, priceType domain.PriceType, updateType domain.PriceUpdateType, value decimal.Decimal) ([]domain.PriceChange, error) {
	changes := make([]domain.PriceChange, 0, len(variants))
	for _, v := range variants {
		old := v.Price(priceType)
		next, err := Apply(old, updateType, value)
		if err != nil {
			return nil, err
		}
		changes = append(changes, domain.PriceChange{
			VariantID:     v.VariantID,
			ProductID:     v.ProductID,
			ProductName:   names[v.ProductID],
			PackingVolume: v.PackingVolume,
			OldPrice:      old,
			NewPrice:      next,
		})
	}
	return changes, nil
}
