package quotations

import (
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/quoteform"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// SizeRowRequest is a size row on the wire. Numbers may be JSON numbers or
// numeric strings.
type SizeRowRequest struct {
	ID        string        `json:"id"`
	Size      string        `json:"size"`
	Quantity  shared.Number `json:"quantity"`
	UnitPrice shared.Number `json:"unit_price"`
	Notes     string        `json:"notes"`
}

type ItemRequest struct {
	ID         string           `json:"id"`
	SourceID   *string          `json:"source_id,omitempty"`
	Name       string           `json:"item_name"`
	Pattern    string           `json:"pattern"`
	FabricType string           `json:"fabric_type"`
	Color      string           `json:"color"`
	Sizes      string           `json:"sizes"`
	Unit       string           `json:"unit"`
	SizeRows   []SizeRowRequest `json:"size_rows"`
}

// CalculateRequest carries the items and financial configuration of a
// document. HasVAT defaults to true and VATPercentage to the configured rate.
type CalculateRequest struct {
	Items                    []ItemRequest `json:"items"`
	PricingMode              string        `json:"pricing_mode"`
	HasVAT                   *bool         `json:"has_vat,omitempty"`
	VATPercentage            shared.Number `json:"vat_percentage"`
	SpecialDiscountType      string        `json:"special_discount_type"`
	SpecialDiscountValue     shared.Number `json:"special_discount_value"`
	HasWithholdingTax        bool          `json:"has_withholding_tax"`
	WithholdingTaxPercentage shared.Number `json:"withholding_tax_percentage"`
	DepositMode              string        `json:"deposit_mode"`
	DepositPercentage        shared.Number `json:"deposit_percentage"`
	DepositAmount            shared.Number `json:"deposit_amount"`
}

// SubmissionRequest is a CalculateRequest plus the document header.
type SubmissionRequest struct {
	CalculateRequest
	CustomerID  string `json:"customer_id" validate:"max=64"`
	ReferenceID string `json:"reference_id" validate:"max=64"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// AggregateRequest holds the raw rows of a source document and the source ids
// it references.
type AggregateRequest struct {
	Items               []lineitems.RawItem `json:"items"`
	ReferencedSourceIDs []string            `json:"referenced_source_ids" validate:"dive,max=64"`
}

// FormRequest applies actions to a form state. A missing state starts from
// an empty form.
type FormRequest struct {
	State   *quoteform.State     `json:"state,omitempty"`
	Actions []quoteform.Envelope `json:"actions" validate:"max=500"`
}
