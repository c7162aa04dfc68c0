package financials

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// DepositResult is the split of the final total into a deposit and the
// balance due later.
type DepositResult struct {
	DepositAmount     float64 `json:"depositAmount"`
	DepositPercentage float64 `json:"depositPercentage"`
	RemainingAmount   float64 `json:"remainingAmount"`
}

// Deposit splits finalTotal. In percentage mode the percentage is clamped to
// [0, 100]; in amount mode the amount is clamped to [0, finalTotal]. The
// reported percentage is the effective one in both modes.
func Deposit(finalTotal float64, mode DepositMode, percentage, amountInput float64) DepositResult {
	total := decimal.Zero
	if !math.IsNaN(finalTotal) && !math.IsInf(finalTotal, 0) {
		total = shared.Round2(decimal.NewFromFloat(finalTotal))
	}
	res := deposit(total, mode, shared.NonNegative(percentage), shared.NonNegative(amountInput))
	return DepositResult{
		DepositAmount:     shared.Float(res.amount),
		DepositPercentage: shared.Float(res.percentage),
		RemainingAmount:   shared.Float(res.remaining),
	}
}

type depositSplit struct {
	amount     decimal.Decimal
	percentage decimal.Decimal
	remaining  decimal.Decimal
}

// deposit never takes more than a non-negative final total, so remaining is
// only negative when finalTotal itself is.
func deposit(finalTotal decimal.Decimal, mode DepositMode, pct, amountInput decimal.Decimal) depositSplit {
	base := decimal.Max(finalTotal, decimal.Zero)
	var split depositSplit
	switch mode {
	case DepositAmount:
		split.amount = shared.Round2(shared.Clamp(amountInput, decimal.Zero, base))
		split.percentage = shared.RatioPercent(split.amount, base)
	default:
		pct = shared.ClampPercent(pct)
		split.amount = shared.PercentOf(base, pct)
		split.percentage = shared.Round2(pct)
	}
	split.remaining = finalTotal.Sub(split.amount)
	return split
}
