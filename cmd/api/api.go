package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"revtrack/docs" // generated swagger registration
	"revtrack/internal/auth"
	"revtrack/internal/mailer"
	"revtrack/internal/ratelimiter"
	"revtrack/internal/store"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	shortCodes    *store.ShortCodeGenerator
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	// bcrypt hash of the ops password, not the password itself
	passHash string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/users", func(r chi.Router) {
			// Public: the OAuth identity exchange and token refresh.
			r.Post("/google-auth", app.googleAuthHandler)
			r.Post("/refresh", app.refreshTokenHandler)

			r.With(app.AuthTokenMiddleware).Post("/logout", app.logoutHandler)

			// Admin user management.
			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Use(app.RequireAdmin)
				r.Get("/", app.listUsersHandler)
				r.Get("/{userID}", app.getUserHandler)
				r.Patch("/{userID}/status", app.updateUserStatusHandler)
				r.Delete("/{userID}", app.deleteUserHandler)
			})
		})

		r.Route("/business", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.listBusinessesHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.RequireAdmin)
				r.Post("/", app.createBusinessHandler)
				r.Put("/{businessID}", app.updateBusinessHandler)
				r.Patch("/{businessID}/status", app.updateBusinessStatusHandler)
				r.Delete("/{businessID}", app.deleteBusinessHandler)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/", app.createReviewHandler)
			r.Put("/{reviewID}", app.updateReviewHandler)
			r.Delete("/{reviewID}", app.deleteReviewHandler)

			r.Get("/user/{userID}", app.userLedgerHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.RequireAdmin)
				r.Get("/stats/all", app.reviewStatsHandler)
				r.Post("/mark-as-paid/{reviewID}", app.markAsPaidHandler)
				r.Post("/mark-as-paid-custom-date", app.markAsPaidCustomDateHandler)
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
