// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/showlog/internal/config"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler *Handler
	cfg     *config.APIConfig
}

// NewRouter creates a Router for the given handler set and API configuration.
func NewRouter(handler *Handler, cfg *config.APIConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup configures all routes and middleware and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health is exempt from the API rate limit so monitoring never gets
	// throttled out.
	r.Get("/api/v1/health", router.handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(router.cfg.RateLimitReqs, router.cfg.RateLimitWindow))
		r.Use(Instrument)

		r.Get("/stats", router.handler.Stats)
		r.Get("/achievements", router.handler.Achievements)

		r.Route("/events", func(r chi.Router) {
			r.Post("/", router.handler.RecordEvent)
			r.Get("/", router.handler.ListEvents)
			r.Delete("/{logID}", router.handler.DeleteEvent)
		})

		r.Route("/progress/{mediaID}/seasons/{season}/episodes/{episode}", func(r chi.Router) {
			r.Post("/toggle", router.handler.ToggleEpisode)
			r.Put("/state", router.handler.SetEpisodeState)
			r.Put("/journal", router.handler.SetJournal)
			r.Delete("/journal", router.handler.DeleteJournal)
		})

		r.Route("/library", func(r chi.Router) {
			r.Post("/", router.handler.AddLibraryItem)
			r.Get("/", router.handler.Library)
			r.Post("/reclassify", router.handler.Reclassify)

			r.Route("/{mediaID}", func(r chi.Router) {
				r.Delete("/", router.handler.RemoveLibraryItem)
				r.Put("/status", router.handler.SetStatus)
				r.Put("/favorite", router.handler.SetFavorite)
				r.Put("/rating", router.handler.SetRating)
				r.Delete("/rating", router.handler.DeleteRating)
				r.Put("/paused", router.handler.PauseSession)
				r.Delete("/paused", router.handler.ClearPausedSession)
			})
		})

		r.Route("/lists", func(r chi.Router) {
			r.Post("/", router.handler.CreateList)
			r.Get("/", router.handler.Lists)
			r.Route("/{listID}", func(r chi.Router) {
				r.Delete("/", router.handler.DeleteList)
				r.Post("/items", router.handler.AddListItem)
				r.Delete("/items/{mediaID}", router.handler.RemoveListItem)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
