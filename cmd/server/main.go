package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"pagesmith/internal/auth"
	"pagesmith/internal/capabilities"
	"pagesmith/internal/config"
	"pagesmith/internal/database"
	"pagesmith/internal/domain/services"
	openaigw "pagesmith/internal/gateway/openai"
	staticgw "pagesmith/internal/gateway/static"
	"pagesmith/internal/handler"
	"pagesmith/internal/middleware"
	"pagesmith/internal/repository/postgres"
	"pagesmith/internal/service"
	"pagesmith/internal/service/preview"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		f, err := config.SetupLogFile(dir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOutput = io.MultiWriter(os.Stdout, f)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := database.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	logger.Info("database connected")

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)
	convRepo := postgres.NewConversationRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// The configured model must resolve against the registry before anything
	// reaches the gateway.
	registry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load model registry: %v", err)
	}
	model := ""
	if cfg.AIModel != "" {
		model, err = registry.Resolve(cfg.AIModel)
		if err != nil {
			log.Fatalf("Invalid AI_AGENT_MODEL: %v", err)
		}
	}

	var gateway services.Gateway
	switch cfg.AIProvider {
	case "static":
		gateway = staticgw.NewProvider()
		logger.Warn("using static generation provider (dev only)")
	default:
		gateway, err = openaigw.NewClient(cfg.AIAPIKey, cfg.AIBaseURL)
		if err != nil {
			log.Fatalf("Failed to create generation gateway: %v", err)
		}
	}

	userService := service.NewUserService(userRepo, logger)
	projectService := service.NewProjectService(userRepo, projectRepo, versionRepo, convRepo, txManager, gateway, model, logger)
	revisionService := service.NewRevisionService(userRepo, projectRepo, versionRepo, convRepo, txManager, gateway, model, logger)
	rollbackService := service.NewRollbackService(projectRepo, versionRepo, convRepo, txManager, logger)

	sessions := preview.NewManager()

	userHandler := handler.NewUserHandler(userService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	revisionHandler := handler.NewRevisionHandler(revisionService, rollbackService, logger)
	previewHandler := handler.NewPreviewHandler(projectService, sessions, logger)

	logger.Info("services initialized", "model", model, "provider", cfg.AIProvider)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// User routes
	mux.HandleFunc("GET /api/users/me/credits", userHandler.GetCredits)
	mux.HandleFunc("POST /api/users/me/credits/purchase", userHandler.PurchaseCredits)
	mux.HandleFunc("GET /api/users/me/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/users/me/projects", projectHandler.CreateProject)

	// Project routes
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("GET /api/projects/{id}/preview", projectHandler.GetPreview)
	mux.HandleFunc("PUT /api/projects/{id}/code", projectHandler.SaveCode)
	mux.HandleFunc("PATCH /api/projects/{id}/publish", projectHandler.TogglePublish)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Revision and rollback
	mux.HandleFunc("POST /api/projects/{id}/revisions", revisionHandler.RequestRevision)
	mux.HandleFunc("POST /api/projects/{id}/rollback/{versionId}", revisionHandler.Rollback)

	// Preview bridge
	mux.HandleFunc("GET /api/projects/{id}/page", previewHandler.GetPage)
	mux.HandleFunc("POST /api/projects/{id}/editor/messages", previewHandler.PostSandboxMessage)
	mux.HandleFunc("POST /api/projects/{id}/editor/updates", previewHandler.PostUpdate)
	mux.HandleFunc("DELETE /api/projects/{id}/editor", previewHandler.CloseEditor)

	// Public routes
	mux.HandleFunc("GET /api/published", projectHandler.ListPublished)
	mux.HandleFunc("GET /sites/{id}", previewHandler.PublishedSite)

	// Middleware chain: CORS → Recovery → Auth → Routes
	var root http.Handler = mux
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: root,
		// Generation calls run well past typical request budgets; the write
		// timeout has to cover two sequential gateway round-trips.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
