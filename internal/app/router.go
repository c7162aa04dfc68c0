package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/odyssey-erp/odyssey-quotes/internal/observability"
	"github.com/odyssey-erp/odyssey-quotes/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/quotations"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/summary"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	QuotationsHandler *quotations.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with calculator defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrNotFound, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, fmt.Errorf("%w: %s %s", httpx.ErrMethodNotAllowed, r.Method, r.URL.Path))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if params.QuotationsHandler != nil {
		r.Route("/sales", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			params.QuotationsHandler.MountRoutes(r)
		})
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

// NewHandler wires the service graph for cfg and returns the root handler.
func NewHandler(cfg *Config, logger *slog.Logger) (http.Handler, error) {
	formatter, err := summary.NewCurrencyFormatter(cfg.CurrencyCode, cfg.CurrencyLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		metrics.Registerer().MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	service := quotations.NewService(logger, metrics, quotations.ServiceConfig{
		DefaultVATPercentage: cfg.DefaultVATPercentage,
		Formatter:            formatter,
		Currency:             formatter.Code(),
	})

	return NewRouter(RouterParams{
		Logger:            logger,
		Config:            cfg,
		QuotationsHandler: quotations.NewHandler(logger, service),
		Metrics:           metrics,
	}), nil
}
