package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeoff-portal/internal/config"
	appHTTP "github.com/cmlabs-hris/timeoff-portal/internal/handler/http"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/database"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/oauth"
	"github.com/cmlabs-hris/timeoff-portal/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/timeoff-portal/internal/service/auth"
	servicePolicy "github.com/cmlabs-hris/timeoff-portal/internal/service/policy"
	serviceTimeOff "github.com/cmlabs-hris/timeoff-portal/internal/service/timeoff"
	serviceUser "github.com/cmlabs-hris/timeoff-portal/internal/service/user"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	profileRepo := postgresql.NewProfileRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	requestRepo := postgresql.NewTimeOffRequestRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, !cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("jwt service: %w", err)
	}

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authService := serviceAuth.NewAuthService(profileRepo, JWTService, JWTRepository)
	userService := serviceUser.NewUserService(profileRepo, roleRepo)
	policyService := servicePolicy.NewPolicyService(policyRepo)
	timeOffService := serviceTimeOff.NewTimeOffService(requestRepo, policyRepo, serviceTimeOff.Options{
		LockDecided: cfg.TimeOff.LockDecided,
	})

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.App.AllowedOrigins,
		GoogleEnabled:  googleService != nil,
		JWTService:     JWTService,
		Roles:          userService,
		AuthHandler:    appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL, !cfg.IsDevelopment()),
		UserHandler:    appHTTP.NewUserHandler(userService),
		PolicyHandler:  appHTTP.NewPolicyHandler(policyService),
		TimeOffHandler: appHTTP.NewTimeOffHandler(timeOffService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "address", server.Addr, "env", cfg.App.Env)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
