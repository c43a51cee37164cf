// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/mbtisaju/internal/auth"
	"github.com/tomtom215/mbtisaju/internal/middleware"
)

// ErrCodeMethodNotAllowed is used by the router's 405 handler.
const ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

// Router assembles the handler and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil auth middleware behaves like one
// without a JWT manager: admin routes answer 503.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMW *ChiMiddleware) *Router {
	if authMiddleware == nil {
		authMiddleware = auth.NewMiddleware(nil)
	}
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, auth: authMiddleware, chiMiddleware: chiMW}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler
	mw := router.chiMiddleware

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "요청한 경로를 찾을 수 없습니다", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "허용되지 않는 메서드입니다", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())
		r.Use(middleware.Compression)

		r.Route("/health", func(r chi.Router) {
			r.Use(mw.RateLimitHealth())
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())

			r.Post("/saju", h.Saju)
			r.Get("/saju/tables", h.SajuTables)

			r.Get("/mbti/questions", h.MBTIQuestions)
			r.Post("/mbti/score", h.MBTIScore)
			r.Get("/mbti/types", h.MBTITypes)
			r.Get("/mbti/types/{type}", h.MBTIType)

			r.Get("/analyses/{id}", h.GetAnalysis)
			r.With(mw.RateLimitWrite()).Post("/analyses", h.CreateAnalysis)

			r.Get("/products", h.Products)
			r.Get("/reports/{orderID}", h.Report)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitPayment())
			r.Post("/orders", h.CreateOrder)
			r.Post("/payments/confirm", h.ConfirmPayment)
		})

		r.Route("/admin/stats", func(r chi.Router) {
			r.Use(mw.RateLimitAdmin())
			r.Use(router.auth.RequireRole(auth.RoleViewer))
			r.Get("/overview", h.StatsOverview)
			r.Get("/mbti", h.StatsMBTI)
			r.Get("/sibsin", h.StatsSibsin)
			r.Get("/elements", h.StatsElements)
			r.Get("/daily", h.StatsDaily)
			r.Get("/cache", h.StatsCache)
		})
	})

	return r
}
