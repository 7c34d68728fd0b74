package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Set holds every handler the API mounts.
type Set struct {
	Health       *HealthHandler
	Leads        *LeadHandler
	Overview     *OverviewHandler
	Contacts     *ContactHandler
	Deals        *DealHandler
	Tasks        *TaskHandler
	Interactions *InteractionHandler
}

// Register mounts the API routes on r.
func Register(r chi.Router, s Set) {
	if s.Health != nil {
		r.Get("/health", s.Health.Handle)
	}

	r.Post("/leads", s.Leads.CaptureLead)
	r.Get("/overview", s.Overview.Overview)
	r.Get("/summary", s.Overview.Summary)

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", s.Contacts.List)
		r.Post("/", s.Contacts.Create)
		r.Get("/{id}", s.Contacts.Get)
		r.Patch("/{id}", s.Contacts.Update)
		r.Delete("/{id}", s.Contacts.Delete)
	})

	r.Route("/deals", func(r chi.Router) {
		r.Get("/", s.Deals.List)
		r.Post("/", s.Deals.Create)
		r.Patch("/", s.Deals.Update)
		r.Delete("/", s.Deals.Delete)
		r.Get("/{id}", s.Deals.Get)
		r.Patch("/{id}", s.Deals.Update)
		r.Delete("/{id}", s.Deals.Delete)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.Tasks.List)
		r.Post("/", s.Tasks.Create)
		r.Patch("/", s.Tasks.Update)
		r.Delete("/", s.Tasks.Delete)
		r.Get("/{id}", s.Tasks.Get)
		r.Patch("/{id}", s.Tasks.Update)
		r.Delete("/{id}", s.Tasks.Delete)
	})

	r.Route("/interactions", func(r chi.Router) {
		r.Get("/", s.Interactions.List)
		r.Post("/", s.Interactions.Create)
		r.Get("/{id}", s.Interactions.Get)
		r.Patch("/{id}", s.Interactions.Update)
		r.Delete("/{id}", s.Interactions.Delete)
	})
}
