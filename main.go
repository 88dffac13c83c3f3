package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/blogem/personal-site/authenticator"
	"github.com/blogem/personal-site/config"
	"github.com/blogem/personal-site/controllers"
	"github.com/blogem/personal-site/database"
	"github.com/blogem/personal-site/mailer"
	sitemiddleware "github.com/blogem/personal-site/middleware"
	"github.com/blogem/personal-site/repositories"
	"github.com/blogem/personal-site/services"
	"github.com/blogem/personal-site/web"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	// Initialize database
	db, err := database.InitializeDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	driver, _ := database.ParseURL(cfg.DatabaseURL)
	logger.Info().Str("driver", driver).Msg("database initialized")

	auth, err := authenticator.NewAuthenticator(cfg.Admin)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize admin authenticator")
	}

	if cfg.Mail.Username == "" {
		logger.Warn().Msg("EMAIL_USER is not set; contact notifications will fail")
	}

	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, mailer.NewSMTPSender(cfg.Mail), cfg, logger)
	ctrl := controllers.NewControllers(srvs, auth, cfg, logger)

	r, err := setupRouter(cfg, ctrl, db, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to setup router")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting personal site")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

// newLogger returns a console logger in development and a JSON logger otherwise
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// maxRequestBody caps form posts, which bounds a contact message to just under 64 KiB
const maxRequestBody = 64 * 1024

// pinger is the part of the database handle the health check needs
type pinger interface {
	PingContext(ctx context.Context) error
}

// setupRouter configures all routes
func setupRouter(cfg *config.Config, ctrl *controllers.Controllers, db pinger, logger zerolog.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(sitemiddleware.Metrics)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(sitemiddleware.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(sitemiddleware.SecurityHeaders)
	r.Use(sitemiddleware.MaxBodySize(maxRequestBody))

	// Operational endpoints, outside sessions and CSRF
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"status": "unhealthy", "service": "personal-site"}`)
			return
		}
		fmt.Fprint(w, `{"status": "healthy", "service": "personal-site"}`)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "site_session",
		Secure:         cfg.SecureCookies, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     3600,             // Session lifetime in seconds
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	r.Group(func(r chi.Router) {
		r.Use(sessionHandler)
		if cfg.SecretKey != "" {
			r.Use(csrfProtect(cfg))
		}

		// PUBLIC ROUTES
		r.Get("/", ctrl.Pages.Show("home", "Home"))
		r.Get("/about", ctrl.Pages.Show("about", "About"))
		r.Get("/education", ctrl.Pages.Show("education", "Education"))
		r.Get("/projects", ctrl.Pages.Show("projects", "Projects"))
		r.Get("/contact", ctrl.Contact.Show)
		r.Post("/contact", ctrl.Contact.Submit)
		r.Get("/login", ctrl.Auth.Login)
		r.Post("/login", ctrl.Auth.Login)
		r.Get("/logout", ctrl.Auth.Logout)

		// PROTECTED ROUTES
		r.Group(func(r chi.Router) {
			r.Use(sitemiddleware.RequireSession)

			r.Get("/admin/messages", ctrl.Admin.Messages)
		})
	})

	return r, nil
}

// csrfProtect returns gorilla/csrf protection keyed from SECRET_KEY
func csrfProtect(cfg *config.Config) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte(cfg.SecretKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(cfg.SecureCookies),
		csrf.Path("/"),
		csrf.FieldName("csrf_token"),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.SecureCookies {
			return protected
		}
		// Without TLS the Origin/Referer checks must treat requests as plain HTTP
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
