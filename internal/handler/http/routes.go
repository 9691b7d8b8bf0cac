package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/ping", h.ping)
		r.Get("/api/version/", h.getServerVersion)
		r.Post("/api/auth/token", h.issueToken)
	})

	// vault-scoped routes, caller identity required
	router.Route("/api/vault/{vaultID}", func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/request", h.propose)
		r.Get("/request/{requestID}", h.getRequest)
		r.Post("/request/{requestID}/trigger", h.trigger)
		r.Post("/request/{requestID}/cancel", h.cancel)
		r.Get("/requests", h.listRequests)

		r.Get("/delay", h.getDelay)
		r.Put("/delay", h.setDelay)

		r.Get("/proposers", h.listProposers)
		r.Post("/proposers", h.addProposer)
		r.Delete("/proposers/{address}", h.removeProposer)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
