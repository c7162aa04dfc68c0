package financials

import (
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// Compute runs the pipeline discount -> VAT -> withholding -> deposit.
//
// Every intermediate amount is rounded to two places where it is produced and
// the rounded value is what the next step sees. Compute is pure and never
// fails; invalid numbers count as zero.
func Compute(in Inputs) Outputs {
	subtotal := shared.Round2(lineitems.Subtotal(in.Items))

	discount, discountPct := specialDiscount(subtotal, in.SpecialDiscountType, shared.NonNegative(in.SpecialDiscountValue))
	discounted := subtotal.Sub(discount)

	priced := resolvePricing(discounted, in.PricingMode, in.HasVAT, shared.NonNegative(in.VATPercentage))

	withholding := decimal.Zero
	if in.HasWithholdingTax {
		withholding = shared.PercentOf(discounted, shared.NonNegative(in.WithholdingTaxPercentage))
	}
	finalTotal := priced.total.Sub(withholding)

	dep := deposit(finalTotal, in.DepositMode, shared.NonNegative(in.DepositPercentage), shared.NonNegative(in.DepositAmountInput))

	out := Outputs{
		Subtotal:                  shared.Float(subtotal),
		SpecialDiscountAmount:     shared.Float(discount),
		SpecialDiscountPercentage: shared.Float(discountPct),
		DiscountedSubtotal:        shared.Float(discounted),
		VAT:                       shared.Float(priced.vat),
		Total:                     shared.Float(priced.total),
		WithholdingTaxAmount:      shared.Float(withholding),
		FinalTotal:                shared.Float(finalTotal),
		DepositAmount:             shared.Float(dep.amount),
		DepositPercentage:         shared.Float(dep.percentage),
		RemainingAmount:           shared.Float(dep.remaining),
	}
	if priced.netSubtotal != nil {
		net := shared.Float(*priced.netSubtotal)
		out.NetSubtotal = &net
	}
	if finalTotal.IsNegative() {
		out.Warnings = append(out.Warnings, WarningNegativeFinalTotal)
	}
	return out
}

// specialDiscount returns the discount amount and its effective percentage of
// the subtotal.
func specialDiscount(subtotal decimal.Decimal, kind DiscountType, value decimal.Decimal) (amount, pct decimal.Decimal) {
	switch kind {
	case DiscountAmount:
		amount = shared.Round2(shared.Clamp(value, decimal.Zero, subtotal))
		return amount, shared.RatioPercent(amount, subtotal)
	default:
		pct = shared.ClampPercent(value)
		return shared.PercentOf(subtotal, pct), shared.Round2(pct)
	}
}
