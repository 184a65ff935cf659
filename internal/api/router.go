package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vendoreval/engine/internal/api/handlers"
	mw "github.com/vendoreval/engine/internal/api/middleware"
	"github.com/vendoreval/engine/internal/models"
	"github.com/vendoreval/engine/internal/repository"
)

type Dependencies struct {
	Verifier         mw.TokenVerifier
	Users            repository.UserRepository
	AuthHandler      *handlers.AuthHandler
	CompaniesHandler *handlers.CompaniesHandler
	RequestsHandler  *handlers.RequestsHandler
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

	// Health endpoint
	hh := handlers.NewHealthHandler()
	r.Get("/health", hh.Health)

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/docs/doc.json"),
	))

	// Auth routes (public)
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", dep.AuthHandler.Register)
		ar.Post("/login", dep.AuthHandler.Login)
	})

	// Protected routes: any authenticated user can read, company mutations
	// and request deletion are admin-only.
	r.Group(func(protected chi.Router) {
		protected.Use(mw.Auth(dep.Verifier, dep.Users))

		protected.Route("/companies", func(cr chi.Router) {
			cr.Get("/", dep.CompaniesHandler.List)
			cr.Get("/{id}", dep.CompaniesHandler.Get)

			cr.Group(func(admin chi.Router) {
				admin.Use(mw.RequireRole(models.RoleAdmin))
				admin.Post("/", dep.CompaniesHandler.Create)
				admin.Put("/{id}", dep.CompaniesHandler.Update)
				admin.Delete("/{id}", dep.CompaniesHandler.Delete)
			})
		})

		protected.Route("/requests", func(rr chi.Router) {
			rr.Get("/", dep.RequestsHandler.List)
			rr.Get("/{id}", dep.RequestsHandler.Get)

			rr.Group(func(staff chi.Router) {
				staff.Use(mw.RequireRole(models.RoleAdmin, models.RoleAnalyst))
				staff.Post("/", dep.RequestsHandler.Create)
				staff.Put("/{id}", dep.RequestsHandler.Update)
			})

			rr.Group(func(admin chi.Router) {
				admin.Use(mw.RequireRole(models.RoleAdmin))
				admin.Delete("/{id}", dep.RequestsHandler.Delete)
			})
		})
	})

	return r
}
