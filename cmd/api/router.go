package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/comment"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routerDeps is everything newRouter needs to assemble the HTTP surface.
type routerDeps struct {
	Books    *book.HTTPHandler
	Comments *comment.HTTPHandler
	Users    *user.HTTPHandler

	JWTSecret      string
	AllowedOrigins []string
	MaxBodyBytes   int64
	EnableHSTS     bool
	RateLimiter    *httpx.RateLimitMiddleware

	// Ready reports whether backing stores can serve traffic. Nil means
	// always ready.
	Ready func(ctx context.Context) error
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		httpx.RecoveryMiddleware,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.MetricsMiddleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		httpx.SecurityHeadersMiddleware(d.EnableHSTS),
		httpx.RequestSizeLimitMiddleware(d.MaxBodyBytes),
	)
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 500*time.Millisecond)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/users/register", d.Users.Register)
	r.Get("/users/confirm", d.Users.Confirm)
	r.Post("/users/login", d.Users.Login)

	r.Group(func(r chi.Router) {
		r.Use(httpx.AuthMiddleware(d.JWTSecret))

		r.Get("/me", d.Users.Me)
		r.Get("/users/{id}/comments", d.Comments.ListByUser)

		r.Get("/books", d.Books.List)
		r.Get("/books/{id}", d.Books.Get)
		r.Get("/books/{id}/comments", d.Comments.List)
		r.Post("/books/{id}/comments", d.Comments.Create)

		r.Group(func(r chi.Router) {
			r.Use(httpx.RequireRole(user.RoleAdmin))
			r.Post("/books", d.Books.Create)
			r.Delete("/books/{id}/comments/{commentId}", d.Comments.Delete)
		})
	})

	return r
}
