package quotations

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the quotation and invoice endpoints under r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/quotations", func(r chi.Router) {
		h.mountDocument(r, DocumentQuotation)
		r.Post("/aggregate", h.Aggregate)
	})
	r.Route("/invoices", func(r chi.Router) {
		h.mountDocument(r, DocumentInvoice)
	})
}

func (h *Handler) mountDocument(r chi.Router, doc DocumentType) {
	r.Post("/calculate", h.Calculate(doc))
	r.Post("/summary", h.Summary(doc))
	r.Post("/submission", h.Submission(doc))
	r.Post("/form", h.Form(doc))
}
