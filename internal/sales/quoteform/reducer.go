package quoteform

import (
	"slices"

	"github.com/google/uuid"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// Reducer applies actions to a State. It never mutates the State it is given.
type Reducer struct {
	newID func() string
}

// NewReducer builds a Reducer that names new items and rows with newID. A nil
// newID uses random UUIDs.
func NewReducer(newID func() string) *Reducer {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Reducer{newID: newID}
}

var defaultReducer = NewReducer(nil)

// Reduce applies a with the default Reducer.
func Reduce(s State, a Action) State {
	return defaultReducer.Reduce(s, a)
}

// Reduce returns the state after a. Actions that reference a missing item or
// row leave the state unchanged.
func (r *Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case InitFromSource:
		s.Items = draftsFrom(lineitems.Aggregate(a.Items, a.ReferencedSourceIDs))
	case AddItem:
		s.Items = append(slices.Clone(s.Items), DraftItem{
			ID:   r.newID(),
			Rows: []DraftRow{{ID: r.newID()}},
		})
	case RemoveItem:
		if i := s.itemIndex(a.ItemID); i >= 0 {
			s.Items = slices.Delete(slices.Clone(s.Items), i, i+1)
		}
	case SetItemField:
		s = updateItem(s, a.ItemID, func(it *DraftItem) {
			setItemField(it, a.Field, a.Value)
		})
	case AddSizeRow:
		s = updateItem(s, a.ItemID, func(it *DraftItem) {
			it.Rows = append(it.Rows, DraftRow{ID: r.newID()})
		})
	case RemoveSizeRow:
		s = updateItem(s, a.ItemID, func(it *DraftItem) {
			if j := it.rowIndex(a.RowID); j >= 0 {
				it.Rows = slices.Delete(it.Rows, j, j+1)
			}
		})
	case SetSizeRowField:
		s = updateItem(s, a.ItemID, func(it *DraftItem) {
			if j := it.rowIndex(a.RowID); j >= 0 {
				setRowField(&it.Rows[j], a.Field, a.Value)
			}
		})
	case SetPricingMode:
		s.PricingMode = financials.ParsePricingMode(string(a.Mode))
	case SetVAT:
		s.HasVAT = a.Enabled
	case SetVATPercentage:
		s.VATPercentage = a.Value
	case SetDiscountType:
		s = switchDiscountType(s, financials.ParseDiscountType(string(a.Type)))
	case SetDiscountValue:
		s.DiscountValue = a.Value
	case SetWithholding:
		s.HasWithholding = a.Enabled
	case SetWithholdingPercentage:
		s.WithholdingPercentage = a.Value
	case SetDepositMode:
		s = switchDepositMode(s, financials.ParseDepositMode(string(a.Mode)))
	case SetDepositPercentage:
		s.DepositPercentage = a.Value
	case SetDepositAmount:
		s.DepositAmount = a.Value
	}
	return s
}

// Apply reduces actions in order.
func (r *Reducer) Apply(s State, actions ...Action) State {
	for _, a := range actions {
		s = r.Reduce(s, a)
	}
	return s
}

// updateItem copies the items slice and the target item's rows before fn
// edits them.
func updateItem(s State, id string, fn func(*DraftItem)) State {
	i := s.itemIndex(id)
	if i < 0 {
		return s
	}
	items := slices.Clone(s.Items)
	item := items[i]
	item.Rows = slices.Clone(item.Rows)
	fn(&item)
	items[i] = item
	s.Items = items
	return s
}

func setItemField(it *DraftItem, field ItemField, value string) {
	switch field {
	case ItemName:
		it.Name = value
	case ItemPattern:
		it.Pattern = value
	case ItemFabricType:
		it.FabricType = value
	case ItemColor:
		it.Color = value
	case ItemSizes:
		it.Sizes = value
	case ItemUnit:
		it.Unit = value
	}
}

func setRowField(row *DraftRow, field RowField, value string) {
	switch field {
	case RowSize:
		row.Size = value
	case RowQuantity:
		row.Quantity = value
	case RowUnitPrice:
		row.UnitPrice = value
	case RowNotes:
		row.Notes = value
	}
}

func switchDiscountType(s State, to financials.DiscountType) State {
	if financials.ParseDiscountType(string(s.DiscountType)) == to {
		s.DiscountType = to
		return s
	}
	out := Financials(s)
	switch to {
	case financials.DiscountAmount:
		s.DiscountValue = shared.FormatPlain(out.SpecialDiscountAmount)
	default:
		s.DiscountValue = shared.FormatPlain(out.SpecialDiscountPercentage)
	}
	s.DiscountType = to
	return s
}

func switchDepositMode(s State, to financials.DepositMode) State {
	if financials.ParseDepositMode(string(s.DepositMode)) == to {
		s.DepositMode = to
		return s
	}
	out := Financials(s)
	switch to {
	case financials.DepositAmount:
		s.DepositAmount = shared.FormatPlain(out.DepositAmount)
	default:
		s.DepositPercentage = shared.FormatPlain(out.DepositPercentage)
	}
	s.DepositMode = to
	return s
}

func draftsFrom(items []lineitems.LineItem) []DraftItem {
	drafts := make([]DraftItem, 0, len(items))
	for _, item := range items {
		rows := make([]DraftRow, 0, len(item.SizeRows))
		for _, row := range item.SizeRows {
			rows = append(rows, DraftRow{
				ID:        row.ID,
				Size:      row.Size,
				Quantity:  shared.FormatPlain(row.Quantity),
				UnitPrice: shared.FormatPlain(row.UnitPrice),
				Notes:     row.Notes,
			})
		}
		drafts = append(drafts, DraftItem{
			ID:         item.ID,
			SourceID:   item.SourceID,
			Name:       item.Name,
			Pattern:    item.Pattern,
			FabricType: item.FabricType,
			Color:      item.Color,
			Sizes:      item.Sizes,
			Unit:       item.Unit,
			Rows:       rows,
		})
	}
	return drafts
}
