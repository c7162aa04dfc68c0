package lineitems

import (
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// SizeRow is one priced size within a line item.
type SizeRow struct {
	ID        string  `json:"id"`
	Size      string  `json:"size"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Notes     string  `json:"notes"`
}

// Amount returns the exact quantity * unit price. Negative or non-finite
// values count as zero.
func (r SizeRow) Amount() decimal.Decimal {
	return shared.LineAmount(shared.NonNegative(r.Quantity), shared.NonNegative(r.UnitPrice))
}

// LineItem is an editable group of size rows sharing one origin.
type LineItem struct {
	ID         string    `json:"id"`
	SourceID   *string   `json:"sourceId,omitempty"`
	Name       string    `json:"name"`
	Pattern    string    `json:"pattern"`
	FabricType string    `json:"fabricType"`
	Color      string    `json:"color"`
	Sizes      string    `json:"sizes"`
	Unit       string    `json:"unit"`
	SizeRows   []SizeRow `json:"sizeRows"`
}

// IsManual reports whether the item was added by hand rather than pulled from
// a source record.
func (i LineItem) IsManual() bool {
	return i.SourceID == nil || *i.SourceID == ""
}

// Amount sums the exact row amounts. A line item never carries its own total.
func (i LineItem) Amount() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range i.SizeRows {
		sum = sum.Add(row.Amount())
	}
	return sum
}

// Total is Amount rounded for display.
func (i LineItem) Total() float64 {
	return shared.Float(shared.Round2(i.Amount()))
}

// Subtotal sums every row of every item exactly.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount())
	}
	return sum
}

// RawItem is a line as stored on a source document (pricing request,
// quotation or invoice). One RawItem usually holds a single size; several raw
// items sharing a SourceID are folded into one LineItem by Aggregate.
type RawItem struct {
	ID         string        `json:"id"`
	SourceID   string        `json:"source_id,omitempty"`
	Sequence   *int          `json:"sequence_order,omitempty"`
	Name       string        `json:"item_name"`
	Pattern    string        `json:"pattern"`
	FabricType string        `json:"fabric_type"`
	Color      string        `json:"color"`
	Size       string        `json:"size"`
	Unit       string        `json:"unit"`
	Quantity   shared.Number `json:"quantity"`
	UnitPrice  shared.Number `json:"unit_price"`
	Notes      string        `json:"notes"`
	Sizes      []RawSize     `json:"sizes,omitempty"`
}

// RawSize is an explicit per-size breakdown entry of a RawItem.
type RawSize struct {
	ID        string        `json:"id"`
	Size      string        `json:"size"`
	Quantity  shared.Number `json:"quantity"`
	UnitPrice shared.Number `json:"unit_price"`
	Notes     string        `json:"notes"`
}

func (r RawItem) sequence() int {
	if r.Sequence == nil {
		return 0
	}
	return *r.Sequence
}
