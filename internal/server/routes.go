package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"p2p_market/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Get("/info", handler(s.getV1Info))

			r.Route("/users", func(r chi.Router) {
				r.Post("/", handler(s.postV1User))
				r.Get("/", handler(s.getV1Users))
				r.Get("/{id}", handler(s.getV1User))
			})

			r.Route("/listings", func(r chi.Router) {
				r.Post("/", handler(s.postV1Listing))
				r.Get("/", handler(s.getV1Listings))
				r.Get("/{id}", handler(s.getV1Listing))
			})

			r.Route("/deals", func(r chi.Router) {
				r.Post("/", handler(s.postV1Deal))
				r.Get("/", handler(s.getV1Deals))
				r.Post("/confirm-payment", handler(s.postV1ConfirmPayment))
				r.Get("/{tradeCode}", handler(s.getV1Deal))
				r.Get("/{tradeCode}/logs", handler(s.getV1DealLogs))
			})

			// admin zone
			r.Route("/admin", func(r chi.Router) {
				r.Post("/release-funds", handler(s.postV1ReleaseFunds))
				r.Get("/pending-deals", handler(s.getV1PendingDeals))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
