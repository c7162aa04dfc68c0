package quotations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-quotes/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/quoteform"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/summary"
)

// ErrNegativeFinalTotal refuses a submission whose withholding tax exceeds
// its total.
var ErrNegativeFinalTotal = fmt.Errorf("%w: final total must not be negative", httpx.ErrValidation)

const rejectNegativeFinalTotal = "negative_final_total"

// Recorder receives calculation metrics.
type Recorder interface {
	ObserveCalculation(documentType, pricingMode string)
	ObserveRejectedSubmission(reason string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCalculation(string, string) {}
func (nopRecorder) ObserveRejectedSubmission(string) {}

// ServiceConfig carries settings shared by every request.
type ServiceConfig struct {
	DefaultVATPercentage float64
	Formatter            summary.Formatter
	Currency             string
	// NewID names items and rows created through form actions.
	NewID func() string
}

// Service prices quotations and invoices. It keeps no state between calls.
type Service struct {
	logger   *slog.Logger
	metrics  Recorder
	validate *validator.Validate
	reducer  *quoteform.Reducer
	cfg      ServiceConfig
}

func NewService(logger *slog.Logger, metrics Recorder, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if cfg.Formatter == nil {
		cfg.Formatter = plainFormatter{}
	}
	return &Service{
		logger:   logger,
		metrics:  metrics,
		validate: newValidator(),
		reducer:  quoteform.NewReducer(cfg.NewID),
		cfg:      cfg,
	}
}

// Calculate validates req and runs the engine.
func (s *Service) Calculate(ctx context.Context, doc DocumentType, req CalculateRequest) (CalculationResult, error) {
	in, err := s.inputs(ctx, doc, req)
	if err != nil {
		return CalculationResult{}, err
	}
	return CalculationResult{DocumentType: doc, Inputs: in, Outputs: s.compute(doc, in)}, nil
}

// Summary returns the display lines for req.
func (s *Service) Summary(ctx context.Context, doc DocumentType, req CalculateRequest) (SummaryResult, error) {
	in, err := s.inputs(ctx, doc, req)
	if err != nil {
		return SummaryResult{}, err
	}
	out := s.compute(doc, in)
	return SummaryResult{
		DocumentType: doc,
		Currency:     s.cfg.Currency,
		Summary:      summary.Build(in, out, s.cfg.Formatter),
		Outputs:      out,
	}, nil
}

// Aggregate folds the rows of a source document into editable line items.
func (s *Service) Aggregate(ctx context.Context, req AggregateRequest) (AggregateResult, error) {
	if err := s.validateStruct(req); err != nil {
		return AggregateResult{}, err
	}
	items := lineitems.Aggregate(req.Items, req.ReferencedSourceIDs)
	s.logger.DebugContext(ctx, "aggregated source rows",
		slog.Int("rows", len(req.Items)),
		slog.Int("items", len(items)),
	)
	return AggregateResult{
		Items:    items,
		Subtotal: shared.Float(shared.Round2(lineitems.Subtotal(items))),
	}, nil
}

// BuildSubmission prices req and freezes the result into the payload the
// backend stores. A negative final total is refused.
func (s *Service) BuildSubmission(ctx context.Context, doc DocumentType, req SubmissionRequest) (Submission, error) {
	if err := s.validateStruct(req); err != nil {
		return Submission{}, err
	}
	if len(req.Items) == 0 {
		return Submission{}, httpx.FieldErrors{"items": "is required"}
	}
	in, err := s.inputs(ctx, doc, req.CalculateRequest)
	if err != nil {
		return Submission{}, err
	}
	out := s.compute(doc, in)
	if out.HasWarning(financials.WarningNegativeFinalTotal) {
		s.metrics.ObserveRejectedSubmission(rejectNegativeFinalTotal)
		s.logger.InfoContext(ctx, "submission rejected",
			slog.String("document_type", string(doc)),
			slog.String("reason", rejectNegativeFinalTotal),
			slog.Float64("final_total", out.FinalTotal),
		)
		return Submission{}, fmt.Errorf("%w (final_total=%s)", ErrNegativeFinalTotal, shared.FormatPlain(out.FinalTotal))
	}
	return Submission{
		DocumentType:      doc,
		CustomerID:        req.CustomerID,
		ReferenceID:       req.ReferenceID,
		Notes:             req.Notes,
		Items:             submissionItems(in.Items),
		FinancialSnapshot: NewFinancialSnapshot(in, out),
	}, nil
}

// ApplyActions runs form actions against a state and returns the new state
// with its derived figures.
func (s *Service) ApplyActions(ctx context.Context, doc DocumentType, req FormRequest) (FormResult, error) {
	if err := s.validateStruct(req); err != nil {
		return FormResult{}, err
	}
	state := quoteform.NewState(shared.FormatPlain(s.cfg.DefaultVATPercentage))
	if req.State != nil {
		state = *req.State
	}

	actions := make([]quoteform.Action, 0, len(req.Actions))
	names := make([]string, 0, len(req.Actions))
	errs := httpx.FieldErrors{}
	for i, env := range req.Actions {
		a, err := env.Decode()
		if err != nil {
			errs[fmt.Sprintf("actions[%d]", i)] = err.Error()
			continue
		}
		actions = append(actions, a)
		names = append(names, quoteform.Name(a))
	}
	if len(errs) > 0 {
		return FormResult{}, errs
	}

	state = s.reducer.Apply(state, actions...)
	in := quoteform.Inputs(state)
	out := s.compute(doc, in)
	s.logger.DebugContext(ctx, "form actions applied", slog.Any("actions", names))
	return FormResult{
		State:       state,
		Outputs:     out,
		ParseErrors: append([]quoteform.FieldError{}, quoteform.ParseErrors(state)...),
	}, nil
}

func (s *Service) inputs(ctx context.Context, doc DocumentType, req CalculateRequest) (financials.Inputs, error) {
	p, err := parseRequest(s.validate, req, s.cfg.DefaultVATPercentage)
	if err != nil {
		s.logger.WarnContext(ctx, "calculation request invalid",
			slog.String("document_type", string(doc)),
			slog.Any("error", err),
		)
		return financials.Inputs{}, err
	}
	return p.inputs(), nil
}

func (s *Service) compute(doc DocumentType, in financials.Inputs) financials.Outputs {
	out := financials.Compute(in)
	s.metrics.ObserveCalculation(string(doc), string(financials.ParsePricingMode(string(in.PricingMode))))
	return out
}

func (s *Service) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		errs := httpx.FieldErrors{}
		if !collectValidation(errs, err) {
			return fmt.Errorf("validate request: %w", err)
		}
		return errs
	}
	return nil
}

type plainFormatter struct{}

func (plainFormatter) FormatCurrency(amount float64) string {
	return shared.FormatPlain(amount)
}
