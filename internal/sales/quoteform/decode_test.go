package quoteform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
)

func TestDecodeAction(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		expected Action
	}{
		{
			name:     "no payload",
			body:     `{"type":"add_item"}`,
			expected: AddItem{},
		},
		{
			name:     "row field",
			body:     `{"type":"set_size_row_field","payload":{"itemId":"a","rowId":"b","field":"unitPrice","value":"12.50"}}`,
			expected: SetSizeRowField{ItemID: "a", RowID: "b", Field: RowUnitPrice, Value: "12.50"},
		},
		{
			name:     "lenient enum",
			body:     `{"type":"set_deposit_mode","payload":{"mode":"AMOUNT"}}`,
			expected: SetDepositMode{Mode: financials.DepositAmount},
		},
		{
			name:     "toggle",
			body:     `{"type":"set_vat","payload":{"enabled":true}}`,
			expected: SetVAT{Enabled: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := DecodeAction([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, a)
			assert.Equal(t, tc.expected.actionName(), Name(a))
		})
	}
}

func TestDecodeActionErrors(t *testing.T) {
	_, err := DecodeAction([]byte(`{"type":"explode"}`))
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = DecodeAction([]byte(`{"type":"set_vat","payload":{"enabled":"yes"}}`))
	assert.Error(t, err)

	_, err = DecodeAction([]byte(`not json`))
	assert.Error(t, err)
}
