package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeoff-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// GoogleEnabled mounts the Google sign-in routes.
	GoogleEnabled bool

	JWTService jwt.Service
	// Roles, when set, overrides the role claim with the stored role.
	Roles          middleware.RoleResolver
	AuthHandler    AuthHandler
	UserHandler    UserHandler
	PolicyHandler  PolicyHandler
	TimeOffHandler TimeOffHandler
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/refresh", cfg.AuthHandler.RefreshToken)
			r.Post("/logout", cfg.AuthHandler.Logout)

			if cfg.GoogleEnabled {
				r.Get("/oauth/google", cfg.AuthHandler.LoginWithGoogle)
				r.Get("/oauth/callback/google", cfg.AuthHandler.OAuthCallbackGoogle)
			}
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(cfg.JWTService, cfg.Roles))

			r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", cfg.UserHandler.Me)
			r.With(middleware.RequirePermission(user.PermissionPolicyView)).Get("/policies", cfg.PolicyHandler.Options)

			r.Route("/time-off/requests", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimeOffCreate))
					r.Post("/draft", cfg.TimeOffHandler.Draft)
					r.Post("/", cfg.TimeOffHandler.Create)
				})
				r.With(middleware.RequirePermission(user.PermissionTimeOffViewOwn)).Get("/my", cfg.TimeOffHandler.ListMine)
			})

			// Manager or Super Administrador
			r.Route("/team/requests", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTimeOffApprove))
				r.Get("/", cfg.TimeOffHandler.ListTeam)
				r.Post("/{id}/approve", cfg.TimeOffHandler.Approve)
				r.Post("/{id}/reject", cfg.TimeOffHandler.Reject)
			})

			// Super Administrador only
			r.Route("/admin", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTimeOffViewAll)).Get("/requests", cfg.TimeOffHandler.ListAll)

				r.Route("/policies", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPolicyManage))
					r.Get("/", cfg.PolicyHandler.List)
					r.Post("/", cfg.PolicyHandler.Create)
					r.Put("/{id}", cfg.PolicyHandler.Update)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/roles", cfg.UserHandler.ListRoles)
					r.Get("/users", cfg.UserHandler.List)
					r.Get("/users/{id}/manager-candidates", cfg.UserHandler.ListManagerCandidates)
					r.Put("/users/{id}/assignment", cfg.UserHandler.UpdateAssignment)
				})
			})
		})
	})
	return r
}
