// Package quoteform holds the editable state behind the quotation and invoice
// forms. State changes only through Reduce; every money figure is derived from
// the state by Financials.
package quoteform

import (
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
)

// DraftRow is a size row as typed by the user. Numbers stay text until the
// state is read through Inputs.
type DraftRow struct {
	ID        string `json:"id"`
	Size      string `json:"size"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Notes     string `json:"notes"`
}

// DraftItem is an editable line item.
type DraftItem struct {
	ID         string     `json:"id"`
	SourceID   *string    `json:"sourceId,omitempty"`
	Name       string     `json:"name"`
	Pattern    string     `json:"pattern"`
	FabricType string     `json:"fabricType"`
	Color      string     `json:"color"`
	Sizes      string     `json:"sizes"`
	Unit       string     `json:"unit"`
	Rows       []DraftRow `json:"sizeRows"`
}

// State is the whole form. The zero value is an empty net-priced form with
// VAT off.
type State struct {
	Items                 []DraftItem             `json:"items"`
	PricingMode           financials.PricingMode  `json:"pricingMode"`
	HasVAT                bool                    `json:"hasVat"`
	VATPercentage         string                  `json:"vatPercentage"`
	DiscountType          financials.DiscountType `json:"specialDiscountType"`
	DiscountValue         string                  `json:"specialDiscountValue"`
	HasWithholding        bool                    `json:"hasWithholdingTax"`
	WithholdingPercentage string                  `json:"withholdingTaxPercentage"`
	DepositMode           financials.DepositMode  `json:"depositMode"`
	DepositPercentage     string                  `json:"depositPercentage"`
	DepositAmount         string                  `json:"depositAmountInput"`
}

// NewState returns an empty form with VAT enabled at vatPercentage.
func NewState(vatPercentage string) State {
	return State{
		PricingMode:   financials.PricingModeNet,
		HasVAT:        true,
		VATPercentage: vatPercentage,
		DiscountType:  financials.DiscountPercentage,
		DepositMode:   financials.DepositPercentage,
	}
}

func (s State) itemIndex(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (it DraftItem) rowIndex(id string) int {
	for i, row := range it.Rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}
