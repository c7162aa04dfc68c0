package quotations

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-quotes/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// calculationParams is a CalculateRequest after every number has parsed.
// Validation runs on this type so rules see real values.
type calculationParams struct {
	Items                    []itemParams `json:"items" validate:"max=500,dive"`
	PricingMode              string       `json:"pricing_mode" validate:"omitempty,oneof=net vat_included"`
	HasVAT                   bool         `json:"has_vat"`
	VATPercentage            float64      `json:"vat_percentage" validate:"gte=0,lte=100"`
	SpecialDiscountType      string       `json:"special_discount_type" validate:"omitempty,oneof=percentage amount"`
	SpecialDiscountValue     float64      `json:"special_discount_value" validate:"gte=0,lte=1000000000000"`
	HasWithholdingTax        bool         `json:"has_withholding_tax"`
	WithholdingTaxPercentage float64      `json:"withholding_tax_percentage" validate:"gte=0,lte=1000"`
	DepositMode              string       `json:"deposit_mode" validate:"omitempty,oneof=percentage amount"`
	DepositPercentage        float64      `json:"deposit_percentage" validate:"gte=0,lte=100"`
	DepositAmount            float64      `json:"deposit_amount" validate:"gte=0,lte=1000000000000"`
}

type itemParams struct {
	ID         string      `json:"id" validate:"max=64"`
	SourceID   *string     `json:"source_id" validate:"omitempty,max=64"`
	Name       string      `json:"item_name" validate:"max=200"`
	Pattern    string      `json:"pattern" validate:"max=200"`
	FabricType string      `json:"fabric_type" validate:"max=200"`
	Color      string      `json:"color" validate:"max=200"`
	Sizes      string      `json:"sizes" validate:"max=200"`
	Unit       string      `json:"unit" validate:"max=32"`
	SizeRows   []rowParams `json:"size_rows" validate:"max=200,dive"`
}

type rowParams struct {
	ID        string  `json:"id" validate:"max=64"`
	Size      string  `json:"size" validate:"max=50"`
	Quantity  float64 `json:"quantity" validate:"gte=0,lte=1000000000000"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0,lte=1000000000000"`
	Notes     string  `json:"notes" validate:"max=500"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseRequest turns the wire request into validated params. Every problem
// is collected into one httpx.FieldErrors.
func parseRequest(v *validator.Validate, req CalculateRequest, defaultVAT float64) (calculationParams, error) {
	errs := httpx.FieldErrors{}
	num := func(key string, n shared.Number, def float64) float64 {
		if !n.IsSet() {
			return def
		}
		d, err := n.Decimal()
		if err != nil {
			errs[key] = "must be a number"
			return 0
		}
		f := shared.Float(d)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			errs[key] = "must be a number"
			return 0
		}
		return f
	}

	p := calculationParams{
		PricingMode:              normaliseEnum(req.PricingMode),
		HasVAT:                   req.HasVAT == nil || *req.HasVAT,
		VATPercentage:            num("vat_percentage", req.VATPercentage, defaultVAT),
		SpecialDiscountType:      normaliseEnum(req.SpecialDiscountType),
		SpecialDiscountValue:     num("special_discount_value", req.SpecialDiscountValue, 0),
		HasWithholdingTax:        req.HasWithholdingTax,
		WithholdingTaxPercentage: num("withholding_tax_percentage", req.WithholdingTaxPercentage, 0),
		DepositMode:              normaliseEnum(req.DepositMode),
		DepositPercentage:        num("deposit_percentage", req.DepositPercentage, 0),
		DepositAmount:            num("deposit_amount", req.DepositAmount, 0),
	}
	p.Items = make([]itemParams, 0, len(req.Items))
	for i, item := range req.Items {
		rows := make([]rowParams, 0, len(item.SizeRows))
		for j, row := range item.SizeRows {
			prefix := fmt.Sprintf("items[%d].size_rows[%d].", i, j)
			rows = append(rows, rowParams{
				ID:        row.ID,
				Size:      row.Size,
				Quantity:  num(prefix+"quantity", row.Quantity, 0),
				UnitPrice: num(prefix+"unit_price", row.UnitPrice, 0),
				Notes:     row.Notes,
			})
		}
		p.Items = append(p.Items, itemParams{
			ID:         item.ID,
			SourceID:   item.SourceID,
			Name:       item.Name,
			Pattern:    item.Pattern,
			FabricType: item.FabricType,
			Color:      item.Color,
			Sizes:      item.Sizes,
			Unit:       item.Unit,
			SizeRows:   rows,
		})
	}

	if err := v.Struct(p); err != nil {
		if !collectValidation(errs, err) {
			return calculationParams{}, fmt.Errorf("validate request: %w", err)
		}
	}
	if len(errs) > 0 {
		return calculationParams{}, errs
	}
	return p, nil
}

// collectValidation copies validator failures into errs, keyed by the JSON
// path without the root type name. Parse failures recorded earlier win.
func collectValidation(errs httpx.FieldErrors, err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		key := fe.Namespace()
		if _, rest, ok := strings.Cut(key, "."); ok {
			key = rest
		}
		if _, exists := errs[key]; exists {
			continue
		}
		errs[key] = describe(fe)
	}
	return true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must have at most " + fe.Param() + " entries"
		}
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func normaliseEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (p calculationParams) inputs() financials.Inputs {
	items := make([]lineitems.LineItem, 0, len(p.Items))
	for i, item := range p.Items {
		id := item.ID
		if id == "" {
			id = fmt.Sprintf("item-%d", i+1)
		}
		rows := make([]lineitems.SizeRow, 0, len(item.SizeRows))
		for j, row := range item.SizeRows {
			rowID := row.ID
			if rowID == "" {
				rowID = fmt.Sprintf("%s-%d", id, j+1)
			}
			rows = append(rows, lineitems.SizeRow{
				ID:        rowID,
				Size:      row.Size,
				Quantity:  row.Quantity,
				UnitPrice: row.UnitPrice,
				Notes:     row.Notes,
			})
		}
		items = append(items, lineitems.LineItem{
			ID:         id,
			SourceID:   item.SourceID,
			Name:       item.Name,
			Pattern:    item.Pattern,
			FabricType: item.FabricType,
			Color:      item.Color,
			Sizes:      item.Sizes,
			Unit:       item.Unit,
			SizeRows:   rows,
		})
	}
	return financials.Inputs{
		Items:                    items,
		PricingMode:              financials.ParsePricingMode(p.PricingMode),
		HasVAT:                   p.HasVAT,
		VATPercentage:            p.VATPercentage,
		SpecialDiscountType:      financials.ParseDiscountType(p.SpecialDiscountType),
		SpecialDiscountValue:     p.SpecialDiscountValue,
		HasWithholdingTax:        p.HasWithholdingTax,
		WithholdingTaxPercentage: p.WithholdingTaxPercentage,
		DepositMode:              financials.ParseDepositMode(p.DepositMode),
		DepositPercentage:        p.DepositPercentage,
		DepositAmountInput:       p.DepositAmount,
	}
}
