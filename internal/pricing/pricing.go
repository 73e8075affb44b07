// Package pricing computes order totals for the storefront. All money
// flows through decimal values; rounding happens only when a quote is
// rendered for transmission, never between steps.
package pricing

import "github.com/shopspring/decimal"

// TaxRate is the flat sales tax applied to every order.
var TaxRate = decimal.NewFromFloat(0.08)

// ShippingFee is currently zero: every order ships free.
var ShippingFee = decimal.Zero

// Quote breaks an order total into its components.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Quote prices a cart subtotal. Tax applies to the subtotal only, not
// to shipping.
func QuoteFor(subtotal decimal.Decimal) Quote {
	tax := subtotal.Mul(TaxRate)
	return Quote{
		Subtotal: subtotal,
		Shipping: ShippingFee,
		Tax:      tax,
		Total:    subtotal.Add(ShippingFee).Add(tax),
	}
}

// Rendered is a Quote formatted for the wire, with amounts rounded to
// two decimal places.
type Rendered struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func (q Quote) Render() Rendered {
	return Rendered{
		Subtotal: q.Subtotal.StringFixed(2),
		Shipping: q.Shipping.StringFixed(2),
		Tax:      q.Tax.StringFixed(2),
		Total:    q.Total.StringFixed(2),
	}
}
