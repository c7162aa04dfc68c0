// Package financials derives the money summary of a quotation or invoice:
// subtotal, special discount, VAT, withholding tax and deposit.
package financials

import (
	"strings"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
)

// PricingMode says whether entered unit prices exclude or include VAT.
type PricingMode string

const (
	PricingModeNet         PricingMode = "net"
	PricingModeVATIncluded PricingMode = "vat_included"
)

// ParsePricingMode maps text to a PricingMode; unknown text yields PricingModeNet.
func ParsePricingMode(s string) PricingMode {
	switch PricingMode(strings.ToLower(strings.TrimSpace(s))) {
	case PricingModeVATIncluded:
		return PricingModeVATIncluded
	default:
		return PricingModeNet
	}
}

// UnmarshalText decodes leniently so a bad mode never fails a calculation.
func (m *PricingMode) UnmarshalText(text []byte) error {
	*m = ParsePricingMode(string(text))
	return nil
}

// DiscountType is how the special discount value is expressed.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// ParseDiscountType maps text to a DiscountType; unknown text yields DiscountPercentage.
func ParseDiscountType(s string) DiscountType {
	switch DiscountType(strings.ToLower(strings.TrimSpace(s))) {
	case DiscountAmount:
		return DiscountAmount
	default:
		return DiscountPercentage
	}
}

func (d *DiscountType) UnmarshalText(text []byte) error {
	*d = ParseDiscountType(string(text))
	return nil
}

// DepositMode is how the deposit is expressed.
type DepositMode string

const (
	DepositPercentage DepositMode = "percentage"
	DepositAmount     DepositMode = "amount"
)

// ParseDepositMode maps text to a DepositMode; unknown text yields DepositPercentage.
func ParseDepositMode(s string) DepositMode {
	switch DepositMode(strings.ToLower(strings.TrimSpace(s))) {
	case DepositAmount:
		return DepositAmount
	default:
		return DepositPercentage
	}
}

func (d *DepositMode) UnmarshalText(text []byte) error {
	*d = ParseDepositMode(string(text))
	return nil
}

// Inputs is everything the engine needs. Numbers are already parsed; the
// engine coerces anything negative or non-finite to zero.
type Inputs struct {
	Items                    []lineitems.LineItem `json:"items"`
	PricingMode              PricingMode          `json:"pricingMode"`
	HasVAT                   bool                 `json:"hasVat"`
	VATPercentage            float64              `json:"vatPercentage"`
	SpecialDiscountType      DiscountType         `json:"specialDiscountType"`
	SpecialDiscountValue     float64              `json:"specialDiscountValue"`
	HasWithholdingTax        bool                 `json:"hasWithholdingTax"`
	WithholdingTaxPercentage float64              `json:"withholdingTaxPercentage"`
	DepositMode              DepositMode          `json:"depositMode"`
	DepositPercentage        float64              `json:"depositPercentage"`
	DepositAmountInput       float64              `json:"depositAmountInput"`
}

// Warning flags an unusual but valid result.
type Warning string

// WarningNegativeFinalTotal is raised when withholding tax exceeds the total.
const WarningNegativeFinalTotal Warning = "negative_final_total"

// Outputs is the derived money summary. All amounts are rounded to two
// places. Only FinalTotal and RemainingAmount can be negative.
type Outputs struct {
	Subtotal                  float64   `json:"subtotal"`
	SpecialDiscountAmount     float64   `json:"specialDiscountAmount"`
	SpecialDiscountPercentage float64   `json:"specialDiscountPercentage"`
	DiscountedSubtotal        float64   `json:"discountedSubtotal"`
	NetSubtotal               *float64  `json:"netSubtotal"`
	VAT                       float64   `json:"vat"`
	Total                     float64   `json:"total"`
	WithholdingTaxAmount      float64   `json:"withholdingTaxAmount"`
	FinalTotal                float64   `json:"finalTotal"`
	DepositAmount             float64   `json:"depositAmount"`
	DepositPercentage         float64   `json:"depositPercentage"`
	RemainingAmount           float64   `json:"remainingAmount"`
	Warnings                  []Warning `json:"warnings,omitempty"`
}

// HasWarning reports whether w was raised.
func (o Outputs) HasWarning(w Warning) bool {
	for _, got := range o.Warnings {
		if got == w {
			return true
		}
	}
	return false
}
