package quotations

import (
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/quoteform"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/summary"
)

// DocumentType is the kind of sales document being priced.
type DocumentType string

const (
	DocumentQuotation DocumentType = "quotation"
	DocumentInvoice   DocumentType = "invoice"
)

// CalculationResult echoes the parsed inputs next to the derived figures.
type CalculationResult struct {
	DocumentType DocumentType       `json:"document_type"`
	Inputs       financials.Inputs  `json:"inputs"`
	Outputs      financials.Outputs `json:"outputs"`
}

// AggregateResult is the editable item list built from a source document.
type AggregateResult struct {
	Items    []lineitems.LineItem `json:"items"`
	Subtotal float64              `json:"subtotal"`
}

// SummaryResult is the labelled summary for display.
type SummaryResult struct {
	DocumentType DocumentType       `json:"document_type"`
	Currency     string             `json:"currency,omitempty"`
	Summary      summary.Summary    `json:"summary"`
	Outputs      financials.Outputs `json:"outputs"`
}

// FormResult is the form state after a batch of actions.
type FormResult struct {
	State       quoteform.State        `json:"state"`
	Outputs     financials.Outputs     `json:"outputs"`
	ParseErrors []quoteform.FieldError `json:"parse_errors"`
}

// FinancialSnapshot is the money section of a submission, frozen at submit
// time. Field names are what the backend stores.
type FinancialSnapshot struct {
	PricingMode              financials.PricingMode  `json:"pricing_mode"`
	HasVAT                   bool                    `json:"has_vat"`
	VATPercentage            float64                 `json:"vat_percentage"`
	SpecialDiscountType      financials.DiscountType `json:"special_discount_type"`
	SpecialDiscountValue     float64                 `json:"special_discount_value"`
	HasWithholdingTax        bool                    `json:"has_withholding_tax"`
	WithholdingTaxPercentage float64                 `json:"withholding_tax_percentage"`
	DepositMode              financials.DepositMode  `json:"deposit_mode"`

	Subtotal              float64  `json:"subtotal"`
	SpecialDiscountAmount float64  `json:"special_discount_amount"`
	DiscountedSubtotal    float64  `json:"discounted_subtotal"`
	NetSubtotal           *float64 `json:"net_subtotal"`
	VATAmount             float64  `json:"vat_amount"`
	Total                 float64  `json:"total"`
	WithholdingTaxAmount  float64  `json:"withholding_tax_amount"`
	FinalTotal            float64  `json:"final_total"`
	DepositAmount         float64  `json:"deposit_amount"`
	DepositPercentage     float64  `json:"deposit_percentage"`
	RemainingAmount       float64  `json:"remaining_amount"`
}

// NewFinancialSnapshot copies in and out into the backend shape. Enum values
// are normalised so the stored configuration is never empty.
func NewFinancialSnapshot(in financials.Inputs, out financials.Outputs) FinancialSnapshot {
	return FinancialSnapshot{
		PricingMode:              financials.ParsePricingMode(string(in.PricingMode)),
		HasVAT:                   in.HasVAT,
		VATPercentage:            in.VATPercentage,
		SpecialDiscountType:      financials.ParseDiscountType(string(in.SpecialDiscountType)),
		SpecialDiscountValue:     in.SpecialDiscountValue,
		HasWithholdingTax:        in.HasWithholdingTax,
		WithholdingTaxPercentage: in.WithholdingTaxPercentage,
		DepositMode:              financials.ParseDepositMode(string(in.DepositMode)),

		Subtotal:              out.Subtotal,
		SpecialDiscountAmount: out.SpecialDiscountAmount,
		DiscountedSubtotal:    out.DiscountedSubtotal,
		NetSubtotal:           out.NetSubtotal,
		VATAmount:             out.VAT,
		Total:                 out.Total,
		WithholdingTaxAmount:  out.WithholdingTaxAmount,
		FinalTotal:            out.FinalTotal,
		DepositAmount:         out.DepositAmount,
		DepositPercentage:     out.DepositPercentage,
		RemainingAmount:       out.RemainingAmount,
	}
}

// SubmissionRow is a size row as sent to the backend.
type SubmissionRow struct {
	ID        string  `json:"id"`
	Size      string  `json:"size"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
	Notes     string  `json:"notes"`
}

// SubmissionItem is a line item as sent to the backend.
type SubmissionItem struct {
	ID         string          `json:"id"`
	SourceID   *string         `json:"source_id,omitempty"`
	ItemName   string          `json:"item_name"`
	Pattern    string          `json:"pattern"`
	FabricType string          `json:"fabric_type"`
	Color      string          `json:"color"`
	Sizes      string          `json:"sizes"`
	Unit       string          `json:"unit"`
	Total      float64         `json:"total"`
	SizeRows   []SubmissionRow `json:"size_rows"`
}

// Submission is the create/update payload for a quotation or invoice. The
// snapshot fields sit at the top level of the JSON object.
type Submission struct {
	DocumentType DocumentType     `json:"document_type"`
	CustomerID   string           `json:"customer_id,omitempty"`
	ReferenceID  string           `json:"reference_id,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Items        []SubmissionItem `json:"items"`
	FinancialSnapshot
}

func submissionItems(items []lineitems.LineItem) []SubmissionItem {
	out := make([]SubmissionItem, 0, len(items))
	for _, item := range items {
		rows := make([]SubmissionRow, 0, len(item.SizeRows))
		for _, row := range item.SizeRows {
			rows = append(rows, SubmissionRow{
				ID:        row.ID,
				Size:      row.Size,
				Quantity:  row.Quantity,
				UnitPrice: row.UnitPrice,
				Amount:    shared.Float(shared.Round2(row.Amount())),
				Notes:     row.Notes,
			})
		}
		out = append(out, SubmissionItem{
			ID:         item.ID,
			SourceID:   item.SourceID,
			ItemName:   item.Name,
			Pattern:    item.Pattern,
			FabricType: item.FabricType,
			Color:      item.Color,
			Sizes:      item.Sizes,
			Unit:       item.Unit,
			Total:      item.Total(),
			SizeRows:   rows,
		})
	}
	return out
}
