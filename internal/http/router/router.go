package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-dispatch/internal/http/handlers"
	mw "service-dispatch/internal/http/middleware"
	"service-dispatch/internal/http/middleware/ratelimit"
	"service-dispatch/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// Accept and reject are limited per courier by rl; nil rl disables limiting.
func New(
	logger logx.Logger,
	h *handlers.Handlers,
	d *handlers.DispatchHandler,
	c *handlers.CourierHandler,
	rl *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	limited := func(next http.HandlerFunc) http.Handler {
		if rl == nil {
			return next
		}
		return rl.Handler()(next)
	}

	r.Route("/orders/{orderID}", func(r chi.Router) {
		r.Post("/dispatch", d.Dispatch)
		r.Method(http.MethodPost, "/offers/{courierID}/accept", limited(d.Accept))
		r.Method(http.MethodPost, "/offers/{courierID}/reject", limited(d.Reject))
		r.Post("/couriers/{courierID}/picked-up", d.PickedUp)
		r.Post("/couriers/{courierID}/delivered", d.Delivered)
	})

	r.Get("/assignments/{assignmentID}", d.Assignment)

	r.Route("/couriers/{courierID}", func(r chi.Router) {
		r.Get("/assignments", c.Assignments)
		r.Put("/location", c.UpdateLocation)
		r.Get("/snapshot", c.Snapshot)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
