package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/comment"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/mail"
	"bookcatalog/internal/store"
	"bookcatalog/internal/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type repositories struct {
	books    book.Repository
	comments comment.Repository
	users    user.Repository
	ready    func(ctx context.Context) error
	close    func()
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.MustLoad("")
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Service: "bookcatalog-api"})
	log := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("cannot open store")
	}
	defer repos.close()

	sender := mail.NewLogSender(cfg.BaseURL)
	bookService := book.NewService(repos.books, sender)
	userService := user.NewService(repos.users, sender, user.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.AccessTTL,
	})
	policy := comment.NewPolicy(cfg.Moderation.MaxLength, cfg.Moderation.ForbiddenWords, cfg.Moderation.DeleteWindow)
	commentService := comment.NewService(repos.comments, bookService, userService, policy)

	if created, err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("cannot bootstrap admin account")
	} else if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("admin account bootstrapped")
	}

	handler := newRouter(routerDeps{
		Books:          book.NewHTTPHandler(bookService),
		Comments:       comment.NewHTTPHandler(commentService),
		Users:          user.NewHTTPHandler(userService),
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		EnableHSTS:     cfg.HTTP.EnableHSTS,
		RateLimiter:    httpx.NewRateLimitMiddleware(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Ready:          repos.ready,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("store", cfg.Store).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.Store == config.StoreMemory {
		books := store.NewBooks()
		return repositories{
			books:    books,
			comments: store.NewComments(books),
			users:    store.NewUsers(),
			close:    func() {},
		}, nil
	}

	pool, err := openDB(ctx, cfg.DB.DSN)
	if err != nil {
		return repositories{}, err
	}
	timeout := cfg.DB.QueryTimeout
	return repositories{
		books:    book.NewPostgresRepo(pool, timeout),
		comments: comment.NewPostgresRepo(pool, timeout),
		users:    user.NewPostgresRepo(pool, timeout),
		ready:    pool.Ping,
		close:    pool.Close,
	}, nil
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Join(errors.New("cannot ping database ("+redactDSN(dsn)+")"), err)
	}
	logger.Named("main").Info().Msg("database connection OK")
	return pool, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
