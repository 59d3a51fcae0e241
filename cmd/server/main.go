package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"inkwell/internal/app"
	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/handler/sse"
	"inkwell/internal/middleware"
	"inkwell/internal/realtime"
	"inkwell/internal/realtime/bus"
	"inkwell/internal/upload"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.ValidateAuth(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.IsDev() {
		logLevel = slog.LevelDebug
	}

	logOut, closeLog, err := config.LogOutput(cfg.LogDir, "server")
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.Storage,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Token verification: HS256 for locally issued tokens, JWKS for an external issuer
	var (
		verifiers []auth.TokenVerifier
		issuer    *auth.HMACVerifier
	)
	if cfg.JWTSecret != "" {
		hmacVerifier, err := auth.NewHMACVerifier(cfg.JWTSecret, logger)
		if err != nil {
			return err
		}
		issuer = hmacVerifier
		verifiers = append(verifiers, hmacVerifier)
	}
	if cfg.JWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			return err
		}
		verifiers = append(verifiers, jwksVerifier)
	}
	verifier := auth.NewChainVerifier(verifiers...)
	defer verifier.Close()

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	policy, err := loadUploadPolicy(cfg, logger)
	if err != nil {
		return err
	}

	// Change notification hub, optionally fanned out across instances via Redis
	var relay realtime.Relay
	if cfg.RedisAddr != "" {
		redisBus, err := bus.NewRedisBus(ctx, cfg.RedisAddr, cfg.RedisChannel, logger)
		if err != nil {
			return err
		}
		relay = redisBus
	}
	hub := realtime.NewHub(realtime.DefaultConfig(), relay, logger)
	if err := hub.Start(ctx); err != nil {
		return err
	}
	defer hub.Stop()

	svc := app.NewServices(storage, policy, hub, logger)

	logger.Info("services initialized")

	var pinger handler.Pinger
	if storage.Ping != nil {
		pinger = pingFunc(storage.Ping)
	}

	routes := &handler.Routes{
		Health:      handler.NewHealthHandler(pinger, logger),
		Workspaces:  handler.NewWorkspaceHandler(svc.Workspaces, logger),
		Documents:   handler.NewDocumentHandler(svc.Documents, logger),
		Attachments: handler.NewAttachmentHandler(svc.Attachments, policy.MaxBytes, logger),
		Comments:    handler.NewCommentHandler(svc.Comments, logger),
		Events:      handler.NewSSEHandler(hub, sse.DefaultConfig(), logger),
		WebSocket:   handler.NewWebSocketHandler(hub, cfg.AllowedOrigins(), logger),
	}
	if issuer != nil {
		routes.Auth = handler.NewAuthHandler(svc.Users, issuer, cfg.TokenTTL, logger)
	}

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	routes.Register(mux)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLogger → Auth → Routes
	h = middleware.AuthMiddleware(verifier, svc.Users, logger, handler.PublicPaths...)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE and WebSocket streams
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		// Close observer streams first so Shutdown does not wait on them
		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadUploadPolicy(cfg *config.Config, logger *slog.Logger) (*upload.Policy, error) {
	if cfg.UploadPolicyFile == "" {
		return upload.DefaultPolicy()
	}
	logger.Info("loading upload policy", "path", cfg.UploadPolicyFile)
	return upload.LoadPolicy(cfg.UploadPolicyFile)
}

// pingFunc adapts a function to handler.Pinger
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
