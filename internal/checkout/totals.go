package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/internal/cart"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// Totals is the checkout money breakdown. Values stay unrounded here;
// currency rounding happens at the response edge and when snapshotting
// into an order row.
type Totals struct {
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Tax              decimal.Decimal
	Shipping         decimal.Decimal
	Total            decimal.Decimal
	ShippingRequired bool
}

// ComputeTotals derives the checkout breakdown from the cart lines:
// discount applies to the subtotal, tax applies after the discount, and
// shipping is waived entirely for all-digital carts. discountRate and
// taxRate are fractional (0.10 means 10%).
func ComputeTotals(lines []cart.LineDTO, discountRate, taxRate, shippingPrice decimal.Decimal) Totals {
	totals := Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, line := range lines {
		totals.Subtotal = totals.Subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		if line.Kind != enums.ProductKindDigital.String() {
			totals.ShippingRequired = true
		}
	}

	totals.Discount = totals.Subtotal.Mul(discountRate)
	taxable := totals.Subtotal.Sub(totals.Discount)
	totals.Tax = taxable.Mul(taxRate)
	if totals.ShippingRequired {
		totals.Shipping = shippingPrice
	}

	totals.Total = taxable.Add(totals.Tax).Add(totals.Shipping)
	if totals.Total.IsNegative() {
		totals.Total = decimal.Zero
	}
	return totals
}
