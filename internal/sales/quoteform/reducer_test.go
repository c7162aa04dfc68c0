package quoteform

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func formWithItems(t *testing.T) (*Reducer, State) {
	t.Helper()
	r := NewReducer(sequentialIDs())
	s := r.Apply(NewState("7"),
		AddItem{},
		SetSizeRowField{ItemID: "id-1", RowID: "id-2", Field: RowQuantity, Value: "10"},
		SetSizeRowField{ItemID: "id-1", RowID: "id-2", Field: RowUnitPrice, Value: "100"},
		AddItem{},
		SetSizeRowField{ItemID: "id-3", RowID: "id-4", Field: RowQuantity, Value: "5"},
		SetSizeRowField{ItemID: "id-3", RowID: "id-4", Field: RowUnitPrice, Value: "200"},
	)
	require.Len(t, s.Items, 2)
	return r, s
}

func TestReduceBuildsItems(t *testing.T) {
	_, s := formWithItems(t)

	out := Financials(s)
	assert.Equal(t, 2000.0, out.Subtotal)
	assert.Equal(t, 140.0, out.VAT)
	assert.Equal(t, 2140.0, out.FinalTotal)
	assert.Empty(t, ParseErrors(s))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	r, s := formWithItems(t)
	before := Financials(s)

	next := r.Apply(s,
		SetSizeRowField{ItemID: "id-1", RowID: "id-2", Field: RowQuantity, Value: "99"},
		SetItemField{ItemID: "id-1", Field: ItemName, Value: "Polo"},
		AddSizeRow{ItemID: "id-3"},
		RemoveItem{ItemID: "id-1"},
	)

	assert.Equal(t, "10", s.Items[0].Rows[0].Quantity)
	assert.Equal(t, "", s.Items[0].Name)
	assert.Len(t, s.Items, 2)
	assert.Len(t, s.Items[1].Rows, 1)
	assert.Equal(t, before, Financials(s))

	require.Len(t, next.Items, 1)
	assert.Equal(t, "id-3", next.Items[0].ID)
	assert.Len(t, next.Items[0].Rows, 2)
}

func TestReduceRowsAndFields(t *testing.T) {
	r, s := formWithItems(t)

	s = r.Apply(s,
		AddSizeRow{ItemID: "id-1"},
		SetSizeRowField{ItemID: "id-1", RowID: "id-5", Field: RowSize, Value: "XL"},
		SetSizeRowField{ItemID: "id-1", RowID: "id-5", Field: RowQuantity, Value: "2"},
		SetSizeRowField{ItemID: "id-1", RowID: "id-5", Field: RowUnitPrice, Value: "120"},
		SetItemField{ItemID: "id-1", Field: ItemUnit, Value: "pcs"},
	)
	assert.Equal(t, "XL", s.Items[0].Rows[1].Size)
	assert.Equal(t, "pcs", s.Items[0].Unit)
	assert.Equal(t, 2240.0, Financials(s).Subtotal)

	s = r.Reduce(s, RemoveSizeRow{ItemID: "id-1", RowID: "id-2"})
	assert.Equal(t, 1240.0, Financials(s).Subtotal)

	unchanged := r.Reduce(s, RemoveSizeRow{ItemID: "missing", RowID: "id-5"})
	assert.Equal(t, s, unchanged)
}

func TestDiscountTypeToggleKeepsAmount(t *testing.T) {
	r, s := formWithItems(t)
	s = r.Apply(s,
		SetDiscountType{Type: financials.DiscountPercentage},
		SetDiscountValue{Value: "10"},
	)
	assert.Equal(t, 200.0, Financials(s).SpecialDiscountAmount)

	s = r.Reduce(s, SetDiscountType{Type: financials.DiscountAmount})
	assert.Equal(t, financials.DiscountAmount, s.DiscountType)
	assert.Equal(t, "200", s.DiscountValue)
	assert.Equal(t, 200.0, Financials(s).SpecialDiscountAmount)

	s = r.Apply(s, SetDiscountValue{Value: "500"}, SetDiscountType{Type: financials.DiscountPercentage})
	assert.Equal(t, "25", s.DiscountValue)
	assert.Equal(t, 500.0, Financials(s).SpecialDiscountAmount)
}

func TestDepositModeToggleKeepsAmount(t *testing.T) {
	r, s := formWithItems(t)
	s = r.Apply(s, SetDepositPercentage{Value: "50"})
	assert.Equal(t, 1070.0, Financials(s).DepositAmount)

	s = r.Reduce(s, SetDepositMode{Mode: financials.DepositAmount})
	assert.Equal(t, "1070", s.DepositAmount)
	assert.Equal(t, 1070.0, Financials(s).DepositAmount)

	s = r.Apply(s, SetDepositAmount{Value: "535"}, SetDepositMode{Mode: financials.DepositPercentage})
	assert.Equal(t, "25", s.DepositPercentage)
	assert.Equal(t, 535.0, Financials(s).DepositAmount)
}

func TestReduceTaxSettings(t *testing.T) {
	r, s := formWithItems(t)
	s = r.Apply(s,
		SetPricingMode{Mode: financials.PricingModeVATIncluded},
		SetWithholding{Enabled: true},
		SetWithholdingPercentage{Value: "3"},
	)
	out := Financials(s)
	require.NotNil(t, out.NetSubtotal)
	assert.Equal(t, 2000.0, out.Total)
	assert.Equal(t, 60.0, out.WithholdingTaxAmount)

	s = r.Apply(s, SetVAT{Enabled: false}, SetVATPercentage{Value: "10"})
	assert.False(t, s.HasVAT)
	assert.Equal(t, 0.0, Financials(s).VAT)

	s = r.Reduce(s, SetPricingMode{Mode: "nonsense"})
	assert.Equal(t, financials.PricingModeNet, s.PricingMode)
}

func TestInitFromSource(t *testing.T) {
	seq := func(n int) *int { return &n }
	r := NewReducer(sequentialIDs())
	s := r.Reduce(NewState("7"), InitFromSource{
		Items: []lineitems.RawItem{
			{ID: "r1", SourceID: "pr-1", Sequence: seq(1), Name: "Shirt - Blue", Size: "M", Quantity: shared.NewNumber(3), UnitPrice: shared.NumberFromString("150.50")},
			{ID: "r2", SourceID: "pr-1", Sequence: seq(2), Name: "Shirt - Blue", Size: "L", Quantity: shared.NumberFromString("2"), UnitPrice: shared.NewNumber(160)},
		},
		ReferencedSourceIDs: []string{"pr-1", "pr-2"},
	})

	require.Len(t, s.Items, 2)
	assert.Equal(t, "Shirt", s.Items[0].Name)
	require.Len(t, s.Items[0].Rows, 2)
	assert.Equal(t, "150.5", s.Items[0].Rows[0].UnitPrice)
	assert.Empty(t, s.Items[1].Rows)
	require.NotNil(t, s.Items[1].SourceID)
	assert.Equal(t, "pr-2", *s.Items[1].SourceID)
	assert.Equal(t, 771.5, Financials(s).Subtotal)
}

func TestParseErrors(t *testing.T) {
	r, s := formWithItems(t)
	s = r.Apply(s,
		SetSizeRowField{ItemID: "id-1", RowID: "id-2", Field: RowQuantity, Value: "ten"},
		SetVATPercentage{Value: "7%"},
		SetDepositAmount{Value: "1,000"},
	)

	assert.Equal(t, []FieldError{
		{Field: "items[id-1].sizeRows[id-2].quantity", Input: "ten"},
		{Field: "vatPercentage", Input: "7%"},
	}, ParseErrors(s))
	assert.Equal(t, 1000.0, Financials(s).Subtotal)
}

func TestPackageReduceUsesRandomIDs(t *testing.T) {
	s := Reduce(NewState("7"), AddItem{})
	s = Reduce(s, AddItem{})

	require.Len(t, s.Items, 2)
	require.Len(t, s.Items[0].Rows, 1)
	for _, item := range s.Items {
		_, err := uuid.Parse(item.ID)
		require.NoError(t, err, "item id %q", item.ID)
	}
	assert.NotEqual(t, s.Items[0].ID, s.Items[1].ID)
}
