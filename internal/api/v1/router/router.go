package router

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/api/v1/dto"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/api/v1/handler"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/config"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/middleware"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/repository"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the whole application: database pool, repositories, services,
// handlers and middleware. The returned pool must be closed on shutdown.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	// 1. Open DB connection pool
	dsn := cfg.DatabaseURL
	// In a development environment, ensure SSL is disabled for local testing.
	// In production, the connection string should carry its own SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create DB pool")
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		pool.Close()
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 3. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	analysisRepo := repository.NewAnalysisRepo(pool)

	gateway := service.NewGroqClient(
		cfg.GroqBaseURL,
		cfg.GroqAPIKey,
		cfg.GroqModel,
		time.Duration(cfg.GroqTimeoutSec)*time.Second,
	)
	quotaSvc := service.NewQuotaService(userRepo, cfg.FreeDailyLimit, logger)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour, logger)
	analyzeSvc := service.NewAnalyzeService(userRepo, analysisRepo, quotaSvc, gateway, cfg.TextLimit, logger)

	authHandler := handler.NewAuthHandler(authSvc, validate, logger)
	analyzeHandler := handler.NewAnalyzeHandler(analyzeSvc, validate, logger)

	// 4. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	// 5. Create ServeMux router
	mux := http.NewServeMux()

	// Create a subrouter for API v1 with the /v1 prefix
	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux)
	analyzeHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Redirect /api/* to /v1/* for backward compatibility
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	// Liveness endpoint
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.MessageResponseDTO{Message: "AI PDF Analyzer Running"})
	})

	// 6. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), pool, nil
}
