package syncserver

import (
	"net/http"

	"osu-tracker/internal/constants"
	"osu-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.Recoverer,
		middleware.RequestID(h.logger),
		chimw.Timeout(constants.RequestTimeout),
	)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/reports", h.ListReports)
		r.Post("/report", h.CreateReport)
		r.Delete("/report/{id}", h.DeleteReport)

		r.Get("/profiles", h.GetProfiles)
		r.Post("/profiles", h.AddProfile)
		r.Post("/profiles/select", h.SelectProfile)
		r.Delete("/profiles/{id}", h.RemoveProfile)
	})

	return r
}
