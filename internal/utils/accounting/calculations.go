package accounting

import (
	"fmt"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ShareAmount returns round(totalRevenue * sharePercentage / 100, 2).
func ShareAmount(totalRevenue, sharePercentage decimal.Decimal) decimal.Decimal {
	return utils.RoundMoney(totalRevenue.Mul(sharePercentage).Div(hundred))
}

// ValidateSharePercentage checks that a business partner's share lies in [0, 100].
func ValidateSharePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("share percentage must be between 0 and 100, got %s", pct)
	}
	return nil
}

// LineTotal is unit price times quantity, rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return utils.RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// OrderTotals holds the summary block of an order or invoice.
type OrderTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// CalculateOrderTotals sums the item lines and applies discount and shipping.
// The total is never negative even when the discount exceeds the subtotal.
func CalculateOrderTotals(items []domain.OrderItem, discount, shipping decimal.Decimal) OrderTotals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(LineTotal(it.UnitPrice, it.Quantity))
	}
	total := subtotal.Sub(discount).Add(shipping)
	return OrderTotals{
		Subtotal: utils.RoundMoney(subtotal),
		Discount: utils.RoundMoney(discount),
		Shipping: utils.RoundMoney(shipping),
		Total:    utils.ClampNonNegative(utils.RoundMoney(total)),
	}
}
