package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	// Prefix is prepended to every API route, e.g. "/api". Empty mounts at root.
	Prefix string
	// JWTSecret verifies optional bearer tokens.
	JWTSecret []byte
	// Metrics, when set, is served on /metrics and observes every request.
	Metrics interface {
		HTTPObserver
		Handler() http.Handler
	}
}

func NewRouter(h *Handler, opts RouterOptions, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	var obs HTTPObserver
	if opts.Metrics != nil {
		obs = opts.Metrics
	}

	// bearerToken sits ahead of accessLog so the access line carries the caller
	r.Use(requestID)
	r.Use(bearerToken(opts.JWTSecret))
	r.Use(accessLog(logger.With("module", "access"), obs))
	r.Use(middleware.Recoverer)
	r.Use(cors)

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	routes := func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/freelancers", func(r chi.Router) {
			r.Post("/", h.CreateFreelancer)
			r.Get("/categories", h.CategoryCounts)
		})

		r.Post("/clients", h.CreateClient)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", h.PostJob)
			r.Get("/featured", h.FeaturedJobs)
			r.Get("/client/{clientId}", h.ClientJobs)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/check-mobile", h.CheckMobile)
		})

		r.Route("/debug", func(r chi.Router) {
			r.Get("/all-data", h.AllData)
			r.Post("/init-demo-data", h.InitDemoData)
			r.Post("/force-demo-data", h.ForceDemoData)
			r.Get("/mobile-check", h.MobileCheck)
		})
	}

	if opts.Prefix == "" {
		routes(r)
	} else {
		r.Route(opts.Prefix, routes)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}
