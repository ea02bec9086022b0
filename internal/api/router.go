package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/capitrack/engine/internal/api/handlers"
	mw "github.com/capitrack/engine/internal/api/middleware"
)

type Dependencies struct {
	HMACSecret        []byte
	AuthHandler       *handlers.AuthHandler
	ProjectsHandler   *handlers.ProjectsHandler
	BidsHandler       *handlers.BidsHandler
	MilestonesHandler *handlers.MilestonesHandler
	UpdatesHandler    *handlers.UpdatesHandler
	ReportsHandler    *handlers.ReportsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		// Auth routes (public)
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
			ar.Post("/logout", dep.AuthHandler.Logout)
		})

		// Protected routes
		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.HMACSecret))

			// Projects and lifecycle transitions
			protected.Route("/projects", func(pr chi.Router) {
				pr.Get("/", dep.ProjectsHandler.List)
				pr.Post("/", dep.ProjectsHandler.SubmitProposal)
				pr.Get("/{id}", dep.ProjectsHandler.Get)
				pr.Get("/{id}/history", dep.ProjectsHandler.History)

				pr.Post("/{id}/prioritize", dep.ProjectsHandler.Prioritize)
				pr.Post("/{id}/reject", dep.ProjectsHandler.Reject)
				pr.Post("/{id}/cancel", dep.ProjectsHandler.Cancel)
				pr.Post("/{id}/budget", dep.ProjectsHandler.AllocateBudget)
				pr.Post("/{id}/disbursements", dep.ProjectsHandler.RecordDisbursement)
				pr.Post("/{id}/complete", dep.ProjectsHandler.Complete)

				// Procurement
				pr.Post("/{id}/bid-invitation", dep.ProjectsHandler.PublishInvitation)
				pr.Get("/{id}/bid-invitation", dep.BidsHandler.Invitation)
				pr.Get("/{id}/bids", dep.BidsHandler.List)
				pr.Post("/{id}/bids", dep.BidsHandler.Submit)
				pr.Post("/{id}/award", dep.ProjectsHandler.AwardContract)

				// Execution tracking
				pr.Get("/{id}/milestones", dep.MilestonesHandler.List)
				pr.Post("/{id}/milestones", dep.MilestonesHandler.Create)
				pr.Get("/{id}/updates", dep.UpdatesHandler.ListByProject)
				pr.Post("/{id}/updates", dep.UpdatesHandler.Submit)
			})

			protected.Route("/milestones", func(mr chi.Router) {
				mr.Patch("/{milestoneID}/progress", dep.MilestonesHandler.Progress)
			})

			protected.Route("/updates", func(ur chi.Router) {
				ur.Get("/pending", dep.UpdatesHandler.ListPending)
				ur.Post("/{updateID}/approve", dep.UpdatesHandler.Approve)
			})

			protected.Get("/contractors", dep.BidsHandler.Contractors)
			protected.Get("/reports/dashboard", dep.ReportsHandler.Dashboard)
		})
	})

	return r
}
