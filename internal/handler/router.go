package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/ucstore/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware витрины UC.
func (h *Handler) SetupRouter(middlewares ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares...)
	r.Use(custommiddleware.GzipMiddleware)

	r.Get("/healthz", h.Health)
	for _, m := range h.extra {
		r.Handle(m.Pattern, m.Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.GetCatalog)
		r.Get("/contacts", h.GetContacts)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.Middleware)

		r.Get("/", h.Index)

		r.Route("/order", func(r chi.Router) {
			r.Post("/open", h.OpenOrder)
			r.Post("/input", h.UpdateInput)
			r.Post("/submit", h.SubmitOrder)
			r.Post("/cancel", h.CancelOrder)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
