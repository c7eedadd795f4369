package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mybabyhq/site-server-go/internal/config"
	"github.com/mybabyhq/site-server-go/internal/middleware"
	"github.com/mybabyhq/site-server-go/internal/service"
)

// RouterDeps carries everything the route layer composes.
type RouterDeps struct {
	Auth         *service.AuthService
	Branding     *service.BrandingService
	Intake       *service.IntakeService
	SessionGate  *middleware.AdminSessionMiddleware
	UploadDir    string
	IsProduction bool
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps RouterDeps) chi.Router {
	adminHandler := NewAdminHandler(deps.Auth, deps.IsProduction)
	brandingHandler := NewBrandingHandler(deps.Branding)
	intakeHandler := NewIntakeHandler(deps.Intake)
	uploadsHandler := NewUploadsHandler(deps.UploadDir)

	jsonLimit := middleware.NewBodyLimitMiddleware(config.MaxJSONBodySize)
	uploadLimit := middleware.NewUploadBodyLimitMiddleware(config.MaxUploadBodySize)
	securityHeaders := middleware.NewSecurityHeadersMiddleware(deps.IsProduction)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(securityHeaders.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Public surface
		r.With(jsonLimit.Handler).Post("/admin/login", adminHandler.Login)
		r.Get("/logo", brandingHandler.GetLogo)
		r.Get("/client-logos", brandingHandler.ListClientLogos)
		r.With(jsonLimit.Handler).Post("/contact", intakeHandler.CreateContact)
		r.With(uploadLimit.Handler).Post("/kindergarten-onboarding", intakeHandler.CreateOnboarding)

		// Admin surface
		r.Group(func(r chi.Router) {
			r.Use(deps.SessionGate.Handler)

			r.Post("/admin/logout", adminHandler.Logout)
			r.Get("/admin/me", adminHandler.Me)
			r.With(uploadLimit.Handler).Post("/admin/logo", brandingHandler.UploadLogo)
			r.With(uploadLimit.Handler).Post("/admin/client-logos", brandingHandler.CreateClientLogo)
			r.Delete("/admin/client-logos/{id}", brandingHandler.DeleteClientLogo)
			r.Get("/admin/contact-submissions", intakeHandler.ListContacts)
			r.Get("/admin/kindergarten-onboardings", intakeHandler.ListOnboardings)
		})
	})

	r.Get("/uploads/*", uploadsHandler.ServeHTTP)

	return r
}
