package quoteform

import (
	"errors"
	"fmt"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// Inputs reads the form as engine inputs. Text that does not parse counts as
// zero; use ParseErrors to tell the user about it.
func Inputs(s State) financials.Inputs {
	items := make([]lineitems.LineItem, 0, len(s.Items))
	for _, draft := range s.Items {
		rows := make([]lineitems.SizeRow, 0, len(draft.Rows))
		for _, row := range draft.Rows {
			rows = append(rows, lineitems.SizeRow{
				ID:        row.ID,
				Size:      row.Size,
				Quantity:  shared.CoerceFloat(row.Quantity),
				UnitPrice: shared.CoerceFloat(row.UnitPrice),
				Notes:     row.Notes,
			})
		}
		items = append(items, lineitems.LineItem{
			ID:         draft.ID,
			SourceID:   draft.SourceID,
			Name:       draft.Name,
			Pattern:    draft.Pattern,
			FabricType: draft.FabricType,
			Color:      draft.Color,
			Sizes:      draft.Sizes,
			Unit:       draft.Unit,
			SizeRows:   rows,
		})
	}
	return financials.Inputs{
		Items:                    items,
		PricingMode:              s.PricingMode,
		HasVAT:                   s.HasVAT,
		VATPercentage:            shared.CoerceFloat(s.VATPercentage),
		SpecialDiscountType:      s.DiscountType,
		SpecialDiscountValue:     shared.CoerceFloat(s.DiscountValue),
		HasWithholdingTax:        s.HasWithholding,
		WithholdingTaxPercentage: shared.CoerceFloat(s.WithholdingPercentage),
		DepositMode:              s.DepositMode,
		DepositPercentage:        shared.CoerceFloat(s.DepositPercentage),
		DepositAmountInput:       shared.CoerceFloat(s.DepositAmount),
	}
}

// Financials derives the money summary of s.
func Financials(s State) financials.Outputs {
	return financials.Compute(Inputs(s))
}

// FieldError is a form field whose text is not a number.
type FieldError struct {
	Field string `json:"field"`
	Input string `json:"input"`
}

// ParseErrors lists every numeric field of s that does not parse, in form
// order. Row fields are named "items[<item id>].sizeRows[<row id>].<field>".
func ParseErrors(s State) []FieldError {
	var errs []FieldError
	check := func(field, raw string) {
		if _, err := shared.ParseDecimal(raw); errors.Is(err, shared.ErrInvalidNumber) {
			errs = append(errs, FieldError{Field: field, Input: raw})
		}
	}
	for _, item := range s.Items {
		for _, row := range item.Rows {
			prefix := fmt.Sprintf("items[%s].sizeRows[%s].", item.ID, row.ID)
			check(prefix+string(RowQuantity), row.Quantity)
			check(prefix+string(RowUnitPrice), row.UnitPrice)
		}
	}
	check("vatPercentage", s.VATPercentage)
	check("specialDiscountValue", s.DiscountValue)
	check("withholdingTaxPercentage", s.WithholdingPercentage)
	check("depositPercentage", s.DepositPercentage)
	check("depositAmountInput", s.DepositAmount)
	return errs
}
