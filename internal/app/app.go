package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	jwtauth "github.com/consejoapp/consejo-backend/internal/auth"
	"github.com/consejoapp/consejo-backend/internal/config"

	"github.com/consejoapp/consejo-backend/internal/adapter/postgres"
	commentrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/comment"
	decisionrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/decision"
	tokenrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/token"
	userrepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/user"
	voterepo "github.com/consejoapp/consejo-backend/internal/adapter/postgres/vote"

	authsvc "github.com/consejoapp/consejo-backend/internal/service/auth"
	commentsvc "github.com/consejoapp/consejo-backend/internal/service/comment"
	decisionsvc "github.com/consejoapp/consejo-backend/internal/service/decision"
	reputationsvc "github.com/consejoapp/consejo-backend/internal/service/reputation"
	votesvc "github.com/consejoapp/consejo-backend/internal/service/vote"

	"github.com/consejoapp/consejo-backend/internal/transport/middleware"
	"github.com/consejoapp/consejo-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories into services and services into the
// HTTP transport, then serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	decisions := decisionrepo.New(pool)
	votes := voterepo.New(pool)
	comments := commentrepo.New(pool)
	tokens := tokenrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	reputation := reputationsvc.NewService(logger, users)
	authService := authsvc.NewService(logger, users, tokens, jwtManager, cfg.Auth)
	decisionService := decisionsvc.NewService(logger, decisions, votes, reputation, txManager)
	voteService := votesvc.NewService(logger, votes, decisions, reputation, txManager)
	commentService := commentsvc.NewService(logger, comments, decisions, reputation, txManager)

	mux := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Decision: rest.NewDecisionHandler(decisionService, logger),
		Vote:     rest.NewVoteHandler(voteService, decisionService, logger),
		Comment:  rest.NewCommentHandler(commentService, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authService),
	)(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
