package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/MadinaDev2107/Group-Manager/docs" // Import generated docs
	appMiddleware "github.com/MadinaDev2107/Group-Manager/internal/middleware"
	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/MadinaDev2107/Group-Manager/internal/response"
)

type Router struct {
	collectionHandler *CollectionHandler
	apiKeySecret      string
}

func NewRouter(collectionHandler *CollectionHandler, apiKeySecret string) *Router {
	return &Router{
		collectionHandler: collectionHandler,
		apiKeySecret:      apiKeySecret,
	}
}

func (ro *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "apikey"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, "Server is running", map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appMiddleware.Authenticate(ro.apiKeySecret))

		r.Route("/{collection}", func(r chi.Router) {
			r.Get("/", ro.collectionHandler.List)

			// ── Mutations (editor only) ─────────────────────
			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.RequireRole(model.RoleEditor))
				r.Post("/", ro.collectionHandler.Insert)
				r.Patch("/", ro.collectionHandler.Update)
				r.Delete("/", ro.collectionHandler.Delete)
			})
		})
	})

	return r
}
