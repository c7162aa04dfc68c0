package quoteform

import (
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
)

// Action is one of the change types declared in this file.
type Action interface {
	actionName() string
}

// ItemField names an editable text field of a DraftItem.
type ItemField string

const (
	ItemName       ItemField = "name"
	ItemPattern    ItemField = "pattern"
	ItemFabricType ItemField = "fabricType"
	ItemColor      ItemField = "color"
	ItemSizes      ItemField = "sizes"
	ItemUnit       ItemField = "unit"
)

// RowField names an editable field of a DraftRow.
type RowField string

const (
	RowSize      RowField = "size"
	RowQuantity  RowField = "quantity"
	RowUnitPrice RowField = "unitPrice"
	RowNotes     RowField = "notes"
)

// InitFromSource replaces the items with the aggregated lines of a source
// document.
type InitFromSource struct {
	Items               []lineitems.RawItem `json:"items"`
	ReferencedSourceIDs []string            `json:"referencedSourceIds"`
}

// AddItem appends a manual item with one empty row.
type AddItem struct{}

type RemoveItem struct {
	ItemID string `json:"itemId"`
}

type SetItemField struct {
	ItemID string    `json:"itemId"`
	Field  ItemField `json:"field"`
	Value  string    `json:"value"`
}

type AddSizeRow struct {
	ItemID string `json:"itemId"`
}

type RemoveSizeRow struct {
	ItemID string `json:"itemId"`
	RowID  string `json:"rowId"`
}

type SetSizeRowField struct {
	ItemID string   `json:"itemId"`
	RowID  string   `json:"rowId"`
	Field  RowField `json:"field"`
	Value  string   `json:"value"`
}

type SetPricingMode struct {
	Mode financials.PricingMode `json:"mode"`
}

type SetVAT struct {
	Enabled bool `json:"enabled"`
}

type SetVATPercentage struct {
	Value string `json:"value"`
}

// SetDiscountType switches how the discount is entered, converting the current
// value so the discount amount stays the same.
type SetDiscountType struct {
	Type financials.DiscountType `json:"type"`
}

type SetDiscountValue struct {
	Value string `json:"value"`
}

type SetWithholding struct {
	Enabled bool `json:"enabled"`
}

type SetWithholdingPercentage struct {
	Value string `json:"value"`
}

// SetDepositMode switches how the deposit is entered, converting the current
// value so the deposit amount stays the same.
type SetDepositMode struct {
	Mode financials.DepositMode `json:"mode"`
}

type SetDepositPercentage struct {
	Value string `json:"value"`
}

type SetDepositAmount struct {
	Value string `json:"value"`
}

func (InitFromSource) actionName() string { return "init_from_source" }
func (AddItem) actionName() string { return "add_item" }
func (RemoveItem) actionName() string { return "remove_item" }
func (SetItemField) actionName() string { return "set_item_field" }
func (AddSizeRow) actionName() string { return "add_size_row" }
func (RemoveSizeRow) actionName() string { return "remove_size_row" }
func (SetSizeRowField) actionName() string { return "set_size_row_field" }
func (SetPricingMode) actionName() string { return "set_pricing_mode" }
func (SetVAT) actionName() string { return "set_vat" }
func (SetVATPercentage) actionName() string { return "set_vat_percentage" }
func (SetDiscountType) actionName() string { return "set_discount_type" }
func (SetDiscountValue) actionName() string { return "set_discount_value" }
func (SetWithholding) actionName() string { return "set_withholding" }
func (SetWithholdingPercentage) actionName() string { return "set_withholding_percentage" }
func (SetDepositMode) actionName() string { return "set_deposit_mode" }
func (SetDepositPercentage) actionName() string { return "set_deposit_percentage" }
func (SetDepositAmount) actionName() string { return "set_deposit_amount" }

// Name returns the wire name of a.
func Name(a Action) string {
	return a.actionName()
}
