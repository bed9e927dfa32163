package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fsp-platform/console-bff/internal/api/handlers"
	"github.com/fsp-platform/console-bff/internal/config"
	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/features"
	"github.com/fsp-platform/console-bff/internal/logger"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
	"github.com/fsp-platform/console-bff/middleware"
)

var adminRoles = []domain.Role{domain.RoleRegionAdmin, domain.RoleFSPAdmin}

// pageRules is the console navigation table. The auth pages stay open;
// everything else requires a session, and the team/region management pages
// additionally require an admin role.
var pageRules = []domain.RouteRule{
	{Path: "/login"},
	{Path: "/register"},
	{Path: "/forgot-password"},
	{Path: "/reset-password"},
	{Path: "/", RequireAuth: true},
	{Path: "/events", RequireAuth: true},
	{Path: "/events/create", RequireAuth: true},
	{Path: "/teams", RequireAuth: true, AllowedRoles: adminRoles},
	{Path: "/regions", RequireAuth: true, AllowedRoles: adminRoles},
	{Path: "/regions/{id}", RequireAuth: true, AllowedRoles: adminRoles},
	{Path: "/settings", RequireAuth: true},
}

// NewRouter assembles the full console surface: gated page routes, the /api
// operations and the operational endpoints.
func NewRouter(cfg *config.Config, sess handlers.Session, reg *features.Registry, cache *querycache.Cache, store querycache.Store, authGW *upstream.AuthClient) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	auth := handlers.NewAuthHandler(authGW, sess, cache)
	events := handlers.NewEventsHandler(reg.Events, sess)
	users := handlers.NewUsersHandler(reg.Users)
	regions := handlers.NewRegionsHandler(reg.Regions, sess)
	teams := handlers.NewTeamsHandler(reg.Teams, sess)
	notifications := handlers.NewNotificationsHandler(reg.Notifications)
	protocols := handlers.NewProtocolsHandler(reg.Protocols, sess)
	applications := handlers.NewApplicationsHandler(reg.Applications, sess)
	settings := handlers.NewSettingsHandler(sess, reg.Disciplines)
	pages := handlers.NewPageHandler(sess)

	ready := handlers.NewReadinessHandler(
		handlers.NewHTTPReadinessChecker("federation-api", cfg.APIBaseURL),
		handlers.NewStoreReadinessChecker(store),
	)
	r.Get("/healthz", ready.Healthz)
	r.Get("/readyz", ready.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	for _, rule := range pageRules {
		r.Get(rule.Path, pages.Serve(rule))
	}
	r.NotFound(pages.NotFound)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/register", auth.Register)
			r.Post("/logout", auth.Logout)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/me", auth.Me)
			r.Get("/", users.List)
			r.Put("/{id}", auth.UpdateProfile)
		})
		r.Route("/email", func(r chi.Router) {
			r.Post("/verify", auth.VerifyEmail)
			r.Post("/resend", auth.ResendEmail)
			r.Post("/reset-password", auth.RequestPasswordReset)
			r.Post("/reset-password/verify", auth.VerifyPasswordReset)
		})

		r.Route("/event-requests", func(r chi.Router) {
			r.Get("/", events.ListRequests)
			r.Get("/my", events.ListMyRequests)
			r.Post("/", events.Create)
			r.Get("/{id}", events.GetRequest)
			r.Post("/{id}/approve", events.Approve)
			r.Post("/{id}/reject", events.Reject)
		})
		r.Get("/events", events.ListPublished)

		r.Route("/regions", func(r chi.Router) {
			r.Get("/", regions.List)
			r.Post("/", regions.Create)
			r.Get("/{id}", regions.Get)
			r.Put("/{id}", regions.Update)
			r.Delete("/{id}", regions.Delete)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teams.List)
			r.Post("/", teams.Create)
			r.Get("/{id}", teams.Get)
			r.Put("/{id}", teams.Update)
			r.Post("/{id}/members", teams.AddMember)
			r.Delete("/{id}/members/{userId}", teams.RemoveMember)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notifications.List)
			r.Get("/unread-count", notifications.UnreadCount)
			r.Patch("/{id}/mark-read", notifications.MarkRead)
			r.Patch("/mark-all-read", notifications.MarkAllRead)
		})

		r.Route("/event-protocols/{eventBaseId}/region/{regionId}", func(r chi.Router) {
			r.Get("/", protocols.Fetch)
			r.Post("/upload", protocols.Upload)
			r.Delete("/", protocols.Delete)
		})

		r.Get("/disciplines", settings.Disciplines)

		r.Route("/region-applications", func(r chi.Router) {
			r.Get("/my", applications.Mine)
			r.Get("/region", applications.ForRegion)
			r.Post("/", applications.Create)
			r.Get("/{id}", applications.Get)
			r.Put("/{id}/process", applications.Process)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settings.Get)
			r.Put("/theme", settings.SetTheme)
		})
	})

	return r
}
