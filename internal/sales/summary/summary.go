// Package summary turns engine outputs into the labelled lines shown on
// summary and PDF views.
package summary

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// Line keys.
const (
	KeySubtotal           = "subtotal"
	KeySpecialDiscount    = "special_discount"
	KeyDiscountedSubtotal = "discounted_subtotal"
	KeyNetSubtotal        = "net_subtotal"
	KeyVAT                = "vat"
	KeyTotal              = "total"
	KeyWithholdingTax     = "withholding_tax"
	KeyFinalTotal         = "final_total"
	KeyDeposit            = "deposit"
	KeyRemaining          = "remaining"
)

// Line is one labelled figure. Deduction lines are subtracted from the line
// above them and render with a leading minus.
type Line struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Deduction bool    `json:"deduction,omitempty"`
	Emphasis  bool    `json:"emphasis,omitempty"`
}

// Summary is the ordered list of lines plus any engine warnings.
type Summary struct {
	Lines    []Line               `json:"lines"`
	Warnings []financials.Warning `json:"warnings,omitempty"`
}

// Line returns the line with the given key.
func (s Summary) Line(key string) (Line, bool) {
	for _, l := range s.Lines {
		if l.Key == key {
			return l, true
		}
	}
	return Line{}, false
}

// Build selects the lines worth showing for in/out. Zero discount, VAT,
// withholding and deposit lines are left out.
func Build(in financials.Inputs, out financials.Outputs, f Formatter) Summary {
	b := builder{f: f}

	b.add(KeySubtotal, "Subtotal", out.Subtotal, false, false)
	if out.SpecialDiscountAmount > 0 {
		label := "Special discount"
		if in.SpecialDiscountType != financials.DiscountAmount {
			label = fmt.Sprintf("Special discount (%s%%)", shared.FormatPlain(out.SpecialDiscountPercentage))
		}
		b.add(KeySpecialDiscount, label, out.SpecialDiscountAmount, true, false)
		b.add(KeyDiscountedSubtotal, "After discount", out.DiscountedSubtotal, false, false)
	}
	if in.PricingMode == financials.PricingModeVATIncluded && in.HasVAT && out.NetSubtotal != nil {
		b.add(KeyNetSubtotal, "Net subtotal (excl. VAT)", *out.NetSubtotal, false, false)
	}
	if in.HasVAT {
		b.add(KeyVAT, fmt.Sprintf("VAT %s%%", shared.FormatPlain(in.VATPercentage)), out.VAT, false, false)
	}
	b.add(KeyTotal, "Total", out.Total, false, true)
	if in.HasWithholdingTax {
		b.add(KeyWithholdingTax, fmt.Sprintf("Withholding tax %s%%", shared.FormatPlain(in.WithholdingTaxPercentage)), out.WithholdingTaxAmount, true, false)
		b.add(KeyFinalTotal, "Final total", out.FinalTotal, false, true)
	}
	if out.DepositAmount > 0 {
		b.add(KeyDeposit, fmt.Sprintf("Deposit (%s%%)", shared.FormatPlain(out.DepositPercentage)), out.DepositAmount, false, false)
		b.add(KeyRemaining, "Remaining", out.RemainingAmount, false, false)
	}

	return Summary{Lines: b.lines, Warnings: out.Warnings}
}

type builder struct {
	f     Formatter
	lines []Line
}

func (b *builder) add(key, label string, amount float64, deduction, emphasis bool) {
	formatted := b.f.FormatCurrency(amount)
	if deduction && amount != 0 {
		formatted = "-" + formatted
	}
	b.lines = append(b.lines, Line{
		Key:       key,
		Label:     label,
		Amount:    amount,
		Formatted: formatted,
		Deduction: deduction,
		Emphasis:  emphasis,
	})
}

// Text renders the summary as aligned label/amount columns.
func (s Summary) Text() string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, l := range s.Lines {
		fmt.Fprintf(tw, "%s\t%s\t\n", l.Label, l.Formatted)
	}
	_ = tw.Flush()
	for _, w := range s.Warnings {
		fmt.Fprintf(&sb, "warning: %s\n", w)
	}
	return sb.String()
}
