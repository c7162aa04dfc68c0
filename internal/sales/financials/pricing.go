package financials

import (
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

var one = decimal.NewFromInt(1)

type pricing struct {
	netSubtotal *decimal.Decimal
	vat         decimal.Decimal
	total       decimal.Decimal
}

// resolvePricing derives VAT and total from the discounted subtotal.
//
// In net mode VAT is added on top. In vat_included mode the discounted
// subtotal is already gross; VAT is carved out of it and the total does not
// grow.
func resolvePricing(discounted decimal.Decimal, mode PricingMode, hasVAT bool, vatPct decimal.Decimal) pricing {
	switch mode {
	case PricingModeVATIncluded:
		net := discounted
		if hasVAT {
			net = shared.Round2(discounted.Div(one.Add(vatPct.Div(decimal.NewFromInt(100)))))
		}
		return pricing{
			netSubtotal: &net,
			vat:         discounted.Sub(net),
			total:       discounted,
		}
	default:
		vat := decimal.Zero
		if hasVAT {
			vat = shared.PercentOf(discounted, vatPct)
		}
		return pricing{
			vat:   vat,
			total: discounted.Add(vat),
		}
	}
}
