package quotations

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/odyssey-quotes/internal/platform/httpx"
)

// Handler exposes the Service as JSON endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Calculate(doc DocumentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		result, err := h.service.Calculate(r.Context(), doc, req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, result)
	}
}

func (h *Handler) Summary(doc DocumentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		result, err := h.service.Summary(r.Context(), doc, req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, result)
	}
}

func (h *Handler) Submission(doc DocumentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmissionRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		payload, err := h.service.BuildSubmission(r.Context(), doc, req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, payload)
	}
}

func (h *Handler) Form(doc DocumentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FormRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		result, err := h.service.ApplyActions(r.Context(), doc, req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, result)
	}
}

func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	var req AggregateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.service.Aggregate(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, httpx.ErrValidation) {
		h.logger.ErrorContext(r.Context(), "quotation request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	httpx.RespondError(w, err)
}
